package model

import "time"

// SymbolPrice is the latest known market price for a symbol, pushed by the
// market-data collaborator. The engine never fetches prices itself.
type SymbolPrice struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	AsOf      time.Time `json:"asOf"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
