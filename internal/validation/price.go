package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
)

// ValidateUpsertPrices validates a price push request.
func ValidateUpsertPrices(req request.UpsertPricesRequest) error {
	errors := make(map[string]string)

	if len(req.Prices) == 0 {
		errors["prices"] = "at least one price is required"
	}

	for i, entry := range req.Prices {
		field := fmt.Sprintf("prices[%d]", i)
		if strings.TrimSpace(entry.Symbol) == "" {
			errors[field] = "symbol is required"
			continue
		}
		if entry.Price < 0 || !isFinite(entry.Price) {
			errors[field] = "price must be non-negative"
			continue
		}
		if _, err := time.Parse("2006-01-02", entry.AsOf); err != nil {
			errors[field] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
