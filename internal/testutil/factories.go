package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/model"
)

// LotBuilder provides a fluent interface for creating test tax lots.
//
// Example usage:
//
//	// Simple open lot with defaults
//	lot := testutil.NewLot(userID).Build(t, db)
//
//	// Customized lot
//	lot := testutil.NewLot(userID).
//	    WithSymbol("MSFT").
//	    WithQuantity(50).
//	    AcquiredOn("2024-01-10", 50.00).
//	    Build(t, db)
type LotBuilder struct {
	lot model.TaxLot
}

// NewLot creates a LotBuilder for an open lot with sensible defaults:
// 100 shares of AAPL acquired 2024-01-10 at $50.00.
func NewLot(userID string) *LotBuilder {
	return &LotBuilder{
		lot: model.TaxLot{
			ID:               MakeID(),
			UserID:           userID,
			Symbol:           "AAPL",
			Quantity:         100,
			AcquisitionDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			AcquisitionPrice: 50.00,
			CostBasis:        5000.00,
			Version:          1,
		},
	}
}

// WithID sets a custom ID.
func (b *LotBuilder) WithID(id string) *LotBuilder {
	b.lot.ID = id
	return b
}

// WithSymbol sets a custom symbol.
func (b *LotBuilder) WithSymbol(symbol string) *LotBuilder {
	b.lot.Symbol = symbol
	return b
}

// WithQuantity sets the quantity and recomputes the cost basis from the
// current acquisition price.
func (b *LotBuilder) WithQuantity(quantity float64) *LotBuilder {
	b.lot.Quantity = quantity
	b.lot.CostBasis = quantity * b.lot.AcquisitionPrice
	return b
}

// AcquiredOn sets the acquisition date (YYYY-MM-DD) and per-share price, and
// recomputes the cost basis.
func (b *LotBuilder) AcquiredOn(date string, price float64) *LotBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("invalid acquisition date in test builder: " + date)
	}
	b.lot.AcquisitionDate = parsed.UTC()
	b.lot.AcquisitionPrice = price
	b.lot.CostBasis = b.lot.Quantity * price
	return b
}

// WithCostBasis overrides the computed cost basis.
func (b *LotBuilder) WithCostBasis(basis float64) *LotBuilder {
	b.lot.CostBasis = basis
	return b
}

// WithMetadata attaches metadata to the lot.
func (b *LotBuilder) WithMetadata(md model.Metadata) *LotBuilder {
	b.lot.Metadata = md
	return b
}

// ClosedOn marks the lot as closed with the given disposition date
// (YYYY-MM-DD) and per-share price, deriving proceeds, gain/loss, holding
// period and term the same way the disposition pipeline does.
func (b *LotBuilder) ClosedOn(date string, price float64) *LotBuilder {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("invalid disposition date in test builder: " + date)
	}
	dispDate := parsed.UTC()

	b.lot.IsClosed = true
	b.lot.DispositionDate = &dispDate
	b.lot.DispositionPrice = &price
	b.lot.Proceeds = b.lot.Quantity * price
	b.lot.GainLoss = b.lot.Proceeds - b.lot.CostBasis
	b.lot.HoldingPeriodDays = int(dispDate.Sub(b.lot.AcquisitionDate).Hours() / 24)
	b.lot.IsLongTerm = b.lot.HoldingPeriodDays >= model.DefaultShortTermThresholdDays
	return b
}

// AsWashSale flags the closed lot as a wash sale pointing at a replacement lot.
func (b *LotBuilder) AsWashSale(replacementLotID string) *LotBuilder {
	b.lot.IsWashSale = true
	b.lot.WashSaleReplacementLotID = replacementLotID
	return b
}

// WithParent links the lot to the lot it was split from.
func (b *LotBuilder) WithParent(parentLotID string) *LotBuilder {
	b.lot.ParentLotID = parentLotID
	return b
}

// Build inserts the lot into the database and returns it.
func (b *LotBuilder) Build(t *testing.T, db *sql.DB) model.TaxLot {
	t.Helper()

	metadata := sql.NullString{}
	if len(b.lot.Metadata) > 0 {
		encoded, err := b.lot.Metadata.Encode()
		if err != nil {
			t.Fatalf("Failed to encode test lot metadata: %v", err)
		}
		metadata = sql.NullString{String: encoded, Valid: true}
	}

	var dispDate, washSaleReplacement, parent interface{}
	var dispPrice, proceeds, gainLoss, holdingDays, isLongTerm interface{}
	if b.lot.IsClosed {
		dispDate = b.lot.DispositionDate.Format("2006-01-02")
		dispPrice = *b.lot.DispositionPrice
		proceeds = b.lot.Proceeds
		gainLoss = b.lot.GainLoss
		holdingDays = b.lot.HoldingPeriodDays
		isLongTerm = b.lot.IsLongTerm
	}
	if b.lot.WashSaleReplacementLotID != "" {
		washSaleReplacement = b.lot.WashSaleReplacementLotID
	}
	if b.lot.ParentLotID != "" {
		parent = b.lot.ParentLotID
	}

	query := `
		INSERT INTO tax_lot (
			id, user_id, symbol, quantity, acquisition_date, acquisition_price,
			cost_basis, disposition_date, disposition_price, proceeds, gain_loss,
			holding_period_days, is_long_term, is_closed, is_wash_sale,
			wash_sale_replacement_lot_id, parent_lot_id, metadata, version
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.lot.ID, b.lot.UserID, b.lot.Symbol, b.lot.Quantity,
		b.lot.AcquisitionDate.Format("2006-01-02"), b.lot.AcquisitionPrice,
		b.lot.CostBasis, dispDate, dispPrice, proceeds, gainLoss,
		holdingDays, isLongTerm, b.lot.IsClosed, b.lot.IsWashSale,
		washSaleReplacement, parent, metadata, b.lot.Version,
	)
	if err != nil {
		t.Fatalf("Failed to create test lot: %v", err)
	}

	return b.lot
}

// PreferenceBuilder provides a fluent interface for creating test preferences.
type PreferenceBuilder struct {
	pref model.TaxPreference
}

// NewPreference creates a PreferenceBuilder seeded with the defaults.
func NewPreference(userID string) *PreferenceBuilder {
	return &PreferenceBuilder{
		pref: model.DefaultTaxPreference(userID, time.Now()),
	}
}

// WithWashSaleDetection toggles wash-sale detection.
func (b *PreferenceBuilder) WithWashSaleDetection(enabled bool) *PreferenceBuilder {
	b.pref.EnableWashSaleDetection = enabled
	return b
}

// WithWashSaleWindow sets the wash-sale window in days.
func (b *PreferenceBuilder) WithWashSaleWindow(days int) *PreferenceBuilder {
	b.pref.WashSaleWindowDays = days
	return b
}

// WithShortTermThreshold sets the short/long-term boundary in days.
func (b *PreferenceBuilder) WithShortTermThreshold(days int) *PreferenceBuilder {
	b.pref.ShortTermThresholdDays = days
	return b
}

// WithHarvestThresholds sets the harvesting qualification thresholds.
func (b *PreferenceBuilder) WithHarvestThresholds(percent, minAmount float64) *PreferenceBuilder {
	b.pref.HarvestThresholdPercent = percent
	b.pref.MinHarvestAmount = minAmount
	return b
}

// Build inserts the preference row into the database and returns it.
func (b *PreferenceBuilder) Build(t *testing.T, db *sql.DB) model.TaxPreference {
	t.Helper()

	query := `
		INSERT INTO tax_preference (
			user_id, tax_jurisdiction, default_tax_year, short_term_threshold_days,
			enable_wash_sale_detection, wash_sale_window_days, auto_harvest_losses,
			harvest_threshold_percent, min_harvest_amount
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.pref.UserID, b.pref.TaxJurisdiction, b.pref.DefaultTaxYear,
		b.pref.ShortTermThresholdDays, b.pref.EnableWashSaleDetection,
		b.pref.WashSaleWindowDays, b.pref.AutoHarvestLosses,
		b.pref.HarvestThresholdPercent, b.pref.MinHarvestAmount,
	)
	if err != nil {
		t.Fatalf("Failed to create test preference: %v", err)
	}

	return b.pref
}

// Convenience functions

// CreateOpenLot creates an open lot for the user with the given symbol,
// quantity, acquisition date (YYYY-MM-DD) and per-share price.
func CreateOpenLot(t *testing.T, db *sql.DB, userID, symbol string, quantity float64, date string, price float64) model.TaxLot {
	t.Helper()
	return NewLot(userID).WithSymbol(symbol).WithQuantity(quantity).AcquiredOn(date, price).Build(t, db)
}

// CreateClosedLot creates a closed lot for the user, acquired and disposed on
// the given dates (YYYY-MM-DD) at the given per-share prices.
func CreateClosedLot(t *testing.T, db *sql.DB, userID, symbol string, quantity float64, acquired string, acqPrice float64, disposed string, dispPrice float64) model.TaxLot {
	t.Helper()
	return NewLot(userID).
		WithSymbol(symbol).
		WithQuantity(quantity).
		AcquiredOn(acquired, acqPrice).
		ClosedOn(disposed, dispPrice).
		Build(t, db)
}

// SeedPrice stores a latest price for a symbol.
func SeedPrice(t *testing.T, db *sql.DB, symbol string, price float64) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO symbol_price (symbol, price, as_of) VALUES (?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET price = excluded.price, as_of = excluded.as_of`,
		symbol, price, time.Now().UTC().Format("2006-01-02"),
	)
	if err != nil {
		t.Fatalf("Failed to seed test price: %v", err)
	}
}
