package request

// UpdatePreferenceRequest is the payload for updating tax preferences.
// All fields are optional; absent fields keep their current (or default) value.
type UpdatePreferenceRequest struct {
	TaxJurisdiction         *string  `json:"taxJurisdiction,omitempty"`
	DefaultTaxYear          *int     `json:"defaultTaxYear,omitempty"`
	ShortTermThresholdDays  *int     `json:"shortTermThresholdDays,omitempty"`
	EnableWashSaleDetection *bool    `json:"enableWashSaleDetection,omitempty"`
	WashSaleWindowDays      *int     `json:"washSaleWindowDays,omitempty"`
	AutoHarvestLosses       *bool    `json:"autoHarvestLosses,omitempty"`
	HarvestThresholdPercent *float64 `json:"harvestThresholdPercent,omitempty"`
	MinHarvestAmount        *float64 `json:"minHarvestAmount,omitempty"`
}
