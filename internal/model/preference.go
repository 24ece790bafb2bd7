package model

import "time"

// Default tax preference values, applied when a user has no stored row.
const (
	DefaultTaxJurisdiction         = "US"
	DefaultShortTermThresholdDays  = 365
	DefaultWashSaleWindowDays      = 30
	DefaultHarvestThresholdPercent = 5.0
	DefaultMinHarvestAmount        = 1000.0
)

// TaxPreference is the per-user configuration consumed by the disposition
// pipeline, wash-sale detector and harvesting advisor.
type TaxPreference struct {
	UserID                  string    `json:"userId"`
	TaxJurisdiction         string    `json:"taxJurisdiction"`
	DefaultTaxYear          int       `json:"defaultTaxYear"`
	ShortTermThresholdDays  int       `json:"shortTermThresholdDays"`
	EnableWashSaleDetection bool      `json:"enableWashSaleDetection"`
	WashSaleWindowDays      int       `json:"washSaleWindowDays"`
	AutoHarvestLosses       bool      `json:"autoHarvestLosses"`
	HarvestThresholdPercent float64   `json:"harvestThresholdPercent"`
	MinHarvestAmount        float64   `json:"minHarvestAmount"`
	UpdatedAt               time.Time `json:"updatedAt,omitempty"`
}

// DefaultTaxPreference returns the preference set used when a user has never
// saved preferences.
func DefaultTaxPreference(userID string, now time.Time) TaxPreference {
	return TaxPreference{
		UserID:                  userID,
		TaxJurisdiction:         DefaultTaxJurisdiction,
		DefaultTaxYear:          now.UTC().Year(),
		ShortTermThresholdDays:  DefaultShortTermThresholdDays,
		EnableWashSaleDetection: true,
		WashSaleWindowDays:      DefaultWashSaleWindowDays,
		AutoHarvestLosses:       false,
		HarvestThresholdPercent: DefaultHarvestThresholdPercent,
		MinHarvestAmount:        DefaultMinHarvestAmount,
	}
}
