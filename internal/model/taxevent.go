package model

import "time"

// Tax event types. wash_sale events are written by the disposition pipeline
// when a loss is disallowed; all other types are recorded by the surrounding
// application (dividend feeds, broker imports).
const (
	EventDividend                = "dividend"
	EventInterest                = "interest"
	EventCapitalGainDistribution = "capital_gain_distribution"
	EventStockSplit              = "stock_split"
	EventStockDividend           = "stock_dividend"
	EventReturnOfCapital         = "return_of_capital"
	EventWashSale                = "wash_sale"
	EventOther                   = "other"
)

// TaxEvent is an externally supplied taxable event. Events are immutable once
// recorded.
type TaxEvent struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Symbol       string    `json:"symbol"`
	EventType    string    `json:"eventType"`
	Amount       float64   `json:"amount"`
	EventDate    time.Time `json:"eventDate"`
	RelatedLotID string    `json:"relatedLotId,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}
