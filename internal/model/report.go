package model

import "time"

// TaxReport is the composed full-year report: aggregated capital gains plus
// externally supplied dividend/interest/distribution events.
type TaxReport struct {
	UserID                   string                `json:"userId"`
	TaxYear                  int                   `json:"taxYear"`
	ShortTermGains           float64               `json:"shortTermGains"`
	LongTermGains            float64               `json:"longTermGains"`
	TotalGains               float64               `json:"totalGains"`
	Dividends                float64               `json:"dividends"`
	Interest                 float64               `json:"interest"`
	CapitalGainDistributions float64               `json:"capitalGainDistributions"`
	WashSales                float64               `json:"washSales"`
	PositionsClosed          int                   `json:"positionsClosed"`
	Symbols                  []CapitalGainsSummary `json:"symbols"`
	GeneratedAt              time.Time             `json:"generatedAt"`
}
