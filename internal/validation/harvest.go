package validation

import (
	"fmt"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
)

// ValidateFindOpportunities validates a harvesting scan request.
func ValidateFindOpportunities(req request.FindOpportunitiesRequest) error {
	if err := ValidateUUID(req.UserID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if req.ThresholdPercent != nil && (*req.ThresholdPercent < 0 || !isFinite(*req.ThresholdPercent)) {
		errors["thresholdPercent"] = "thresholdPercent must be non-negative"
	}
	if req.MinAmount != nil && (*req.MinAmount < 0 || !isFinite(*req.MinAmount)) {
		errors["minAmount"] = "minAmount must be non-negative"
	}
	for symbol, price := range req.Prices {
		if price < 0 || !isFinite(price) {
			errors["prices"] = fmt.Sprintf("price for %s must be non-negative", symbol)
			break
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
