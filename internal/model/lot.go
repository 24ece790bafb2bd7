package model

import "time"

// TaxLot represents a discrete batch of a security acquired at one price and
// date, tracked separately for cost-basis purposes.
//
// A lot is either fully open (no disposition fields) or fully closed. Partial
// dispositions never leave a half-closed row: the ledger rewrites the original
// row as the open remainder and inserts a separate closed row for the disposed
// portion, linked back through ParentLotID.
type TaxLot struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Symbol           string    `json:"symbol"`
	Quantity         float64   `json:"quantity"` // remaining open quantity (or disposed quantity on a closed row)
	AcquisitionDate  time.Time `json:"acquisitionDate"`
	AcquisitionPrice float64   `json:"acquisitionPrice"`
	CostBasis        float64   `json:"costBasis"`

	DispositionDate   *time.Time `json:"dispositionDate,omitempty"`
	DispositionPrice  *float64   `json:"dispositionPrice,omitempty"`
	Proceeds          float64    `json:"proceeds"`
	GainLoss          float64    `json:"gainLoss"`
	HoldingPeriodDays int        `json:"holdingPeriodDays"`
	IsLongTerm        bool       `json:"isLongTerm"`

	IsClosed                 bool   `json:"isClosed"`
	IsWashSale               bool   `json:"isWashSale"`
	WashSaleReplacementLotID string `json:"washSaleReplacementLotId,omitempty"`
	ParentLotID              string `json:"parentLotId,omitempty"`

	Metadata Metadata `json:"metadata,omitempty"`

	Version   int       `json:"-"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// DispositionResult is the outcome of disposing all or part of a lot.
// Remainder is nil for a full disposition.
type DispositionResult struct {
	ClosedPortion TaxLot  `json:"closedPortion"`
	Remainder     *TaxLot `json:"remainder,omitempty"`
}
