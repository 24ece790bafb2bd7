package model

import "time"

// CapitalGainsSummary holds realized short/long-term gains for one symbol in
// one tax year. Rows are derived data: the aggregator rebuilds the full
// (user, tax year) set from closed lots on every run.
type CapitalGainsSummary struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	TaxYear           int       `json:"taxYear"`
	Symbol            string    `json:"symbol"`
	ShortTermGainLoss float64   `json:"shortTermGainLoss"`
	LongTermGainLoss  float64   `json:"longTermGainLoss"`
	TotalGainLoss     float64   `json:"totalGainLoss"`
	PositionsClosed   int       `json:"positionsClosed"`
	CalculatedAt      time.Time `json:"calculatedAt,omitempty"`
}
