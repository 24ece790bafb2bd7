package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID    = fmt.Errorf("invalid UUID format")
	ErrInvalidTaxYear = fmt.Errorf("invalid tax year")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateTaxYear checks that a tax year is inside the plausible range for
// stored lot data.
func ValidateTaxYear(year int) error {
	if year < 1900 || year > 2200 {
		return fmt.Errorf("%w: %d", ErrInvalidTaxYear, year)
	}
	return nil
}
