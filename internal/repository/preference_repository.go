package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duyet/finance-hub-sub002/internal/model"
)

// PreferenceRepository provides data access methods for the tax_preference table.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository with the provided database connection.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreference retrieves a user's stored tax preferences.
// The second return value reports whether a row exists; callers fall back to
// model.DefaultTaxPreference when it does not.
func (r *PreferenceRepository) GetPreference(userID string) (model.TaxPreference, bool, error) {
	query := `
		SELECT user_id, tax_jurisdiction, default_tax_year, short_term_threshold_days,
			enable_wash_sale_detection, wash_sale_window_days, auto_harvest_losses,
			harvest_threshold_percent, min_harvest_amount, updated_at
		FROM tax_preference
		WHERE user_id = ?
	`

	var p model.TaxPreference
	var updatedAtStr string
	err := r.db.QueryRow(query, userID).Scan(
		&p.UserID,
		&p.TaxJurisdiction,
		&p.DefaultTaxYear,
		&p.ShortTermThresholdDays,
		&p.EnableWashSaleDetection,
		&p.WashSaleWindowDays,
		&p.AutoHarvestLosses,
		&p.HarvestThresholdPercent,
		&p.MinHarvestAmount,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.TaxPreference{}, false, nil
	}
	if err != nil {
		return model.TaxPreference{}, false, fmt.Errorf("failed to scan tax_preference table results: %w", err)
	}

	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil || p.UpdatedAt.IsZero() {
		return model.TaxPreference{}, false, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, true, nil
}

// UpsertPreference inserts or fully replaces a user's tax preferences.
func (r *PreferenceRepository) UpsertPreference(ctx context.Context, p *model.TaxPreference) error {
	query := `
		INSERT INTO tax_preference (
			user_id, tax_jurisdiction, default_tax_year, short_term_threshold_days,
			enable_wash_sale_detection, wash_sale_window_days, auto_harvest_losses,
			harvest_threshold_percent, min_harvest_amount, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			tax_jurisdiction = excluded.tax_jurisdiction,
			default_tax_year = excluded.default_tax_year,
			short_term_threshold_days = excluded.short_term_threshold_days,
			enable_wash_sale_detection = excluded.enable_wash_sale_detection,
			wash_sale_window_days = excluded.wash_sale_window_days,
			auto_harvest_losses = excluded.auto_harvest_losses,
			harvest_threshold_percent = excluded.harvest_threshold_percent,
			min_harvest_amount = excluded.min_harvest_amount,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.TaxJurisdiction,
		p.DefaultTaxYear,
		p.ShortTermThresholdDays,
		p.EnableWashSaleDetection,
		p.WashSaleWindowDays,
		p.AutoHarvestLosses,
		p.HarvestThresholdPercent,
		p.MinHarvestAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tax_preference: %w", err)
	}

	return nil
}
