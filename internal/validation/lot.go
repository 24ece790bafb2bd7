package validation

import (
	"math"
	"strings"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
)

// ValidateCreateLot validates a lot creation request.
//
// Required fields:
//   - userId: Must be a valid UUID
//   - symbol: Must be non-empty
//   - acquisitionDate: Must be in YYYY-MM-DD format
//   - quantity: Must be positive and finite
//   - acquisitionPrice: Must be non-negative and finite
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateLot(req request.CreateLotRequest) error {
	if err := ValidateUUID(req.UserID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if strings.TrimSpace(req.AcquisitionDate) == "" {
		errors["acquisitionDate"] = "acquisitionDate is required"
	} else if _, err := time.Parse("2006-01-02", req.AcquisitionDate); err != nil {
		errors["acquisitionDate"] = err.Error()
	}

	if req.Quantity <= 0 || !isFinite(req.Quantity) {
		errors["quantity"] = "quantity must be positive"
	}

	if req.AcquisitionPrice < 0 || !isFinite(req.AcquisitionPrice) {
		errors["acquisitionPrice"] = "acquisitionPrice must be non-negative"
	}

	if req.CostBasisOverride != nil && (*req.CostBasisOverride < 0 || !isFinite(*req.CostBasisOverride)) {
		errors["costBasisOverride"] = "costBasisOverride must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateDisposeLot validates a lot disposition request.
func ValidateDisposeLot(req request.DisposeLotRequest) error {
	if err := ValidateUUID(req.UserID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.DispositionDate) == "" {
		errors["dispositionDate"] = "dispositionDate is required"
	} else if _, err := time.Parse("2006-01-02", req.DispositionDate); err != nil {
		errors["dispositionDate"] = err.Error()
	}

	if req.Quantity <= 0 || !isFinite(req.Quantity) {
		errors["quantity"] = "quantity must be positive"
	}

	if req.DispositionPrice < 0 || !isFinite(req.DispositionPrice) {
		errors["dispositionPrice"] = "dispositionPrice must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
