package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duyet/finance-hub-sub002/internal/model"
)

// PriceRepository provides data access methods for the symbol_price table.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// UpsertPrices inserts or replaces the latest price per symbol.
func (r *PriceRepository) UpsertPrices(ctx context.Context, prices []model.SymbolPrice) error {
	query := `
		INSERT INTO symbol_price (symbol, price, as_of, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(symbol) DO UPDATE SET
			price = excluded.price,
			as_of = excluded.as_of,
			updated_at = CURRENT_TIMESTAMP
	`

	for _, p := range prices {
		_, err := r.db.ExecContext(ctx, query, p.Symbol, p.Price, p.AsOf.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("failed to upsert symbol_price: %w", err)
		}
	}

	return nil
}

// GetLatestPrices retrieves stored prices for the given symbols as a
// symbol -> price map. Symbols without a stored price are simply absent.
func (r *PriceRepository) GetLatestPrices(symbols []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(symbols))
	if len(symbols) == 0 {
		return prices, nil
	}

	query := `SELECT price FROM symbol_price WHERE symbol = ?`
	for _, symbol := range symbols {
		var price float64
		err := r.db.QueryRow(query, symbol).Scan(&price)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query symbol_price table: %w", err)
		}
		prices[symbol] = price
	}

	return prices, nil
}
