package validation

import (
	"github.com/duyet/finance-hub-sub002/internal/api/request"
)

// ValidateUpdatePreference validates a preference update request.
// All fields are optional, but if provided, they must meet their constraints.
func ValidateUpdatePreference(req request.UpdatePreferenceRequest) error {
	errors := make(map[string]string)

	if req.DefaultTaxYear != nil {
		if err := ValidateTaxYear(*req.DefaultTaxYear); err != nil {
			errors["defaultTaxYear"] = err.Error()
		}
	}
	if req.ShortTermThresholdDays != nil && *req.ShortTermThresholdDays <= 0 {
		errors["shortTermThresholdDays"] = "shortTermThresholdDays must be positive"
	}
	if req.WashSaleWindowDays != nil && *req.WashSaleWindowDays <= 0 {
		errors["washSaleWindowDays"] = "washSaleWindowDays must be positive"
	}
	if req.HarvestThresholdPercent != nil && (*req.HarvestThresholdPercent < 0 || !isFinite(*req.HarvestThresholdPercent)) {
		errors["harvestThresholdPercent"] = "harvestThresholdPercent must be non-negative"
	}
	if req.MinHarvestAmount != nil && (*req.MinHarvestAmount < 0 || !isFinite(*req.MinHarvestAmount)) {
		errors["minHarvestAmount"] = "minHarvestAmount must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
