package model

import "time"

// Reasons a losing lot is not harvestable today.
const (
	ReasonBelowMinimumAmount    = "below minimum amount"
	ReasonBelowThresholdPercent = "below threshold percent"
	ReasonWashSaleWindowActive  = "wash sale window active"
	ReasonZeroCostBasis         = "cost basis is zero"
)

// HarvestingOpportunity describes an open lot with an unrealized loss and
// whether realizing that loss today would be deductible. Derived data, never
// persisted.
type HarvestingOpportunity struct {
	LotID                 string    `json:"lotId"`
	Symbol                string    `json:"symbol"`
	Quantity              float64   `json:"quantity"`
	CostBasis             float64   `json:"costBasis"`
	CurrentPrice          float64   `json:"currentPrice"`
	CurrentValue          float64   `json:"currentValue"`
	UnrealizedLoss        float64   `json:"unrealizedLoss"`
	UnrealizedLossPercent float64   `json:"unrealizedLossPercent"`
	HoldingPeriodDays     int       `json:"holdingPeriodDays"`
	IsHarvestable         bool      `json:"isHarvestable"`
	ReasonNotHarvestable  string    `json:"reasonNotHarvestable,omitempty"`
	ExpiresAt             time.Time `json:"expiresAt"` // end of the wash-sale window if harvested today
}
