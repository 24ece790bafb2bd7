package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duyet/finance-hub-sub002/internal/model"
)

// SummaryRepository provides data access methods for the capital_gains_summary table.
type SummaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new SummaryRepository with the provided database connection.
func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// ReplaceSummaries atomically replaces all summary rows for one user and tax
// year. Full overwrite, not increment: repeated rebuilds on unchanged lots
// converge to identical rows.
func (r *SummaryRepository) ReplaceSummaries(ctx context.Context, userID string, taxYear int, summaries []model.CapitalGainsSummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM capital_gains_summary WHERE user_id = ? AND tax_year = ?`
	if _, err := tx.ExecContext(ctx, deleteQuery, userID, taxYear); err != nil {
		return fmt.Errorf("failed to delete capital_gains_summary rows: %w", err)
	}

	insertQuery := `
		INSERT INTO capital_gains_summary (
			id, user_id, tax_year, symbol, short_term_gain_loss,
			long_term_gain_loss, total_gain_loss, positions_closed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, s := range summaries {
		_, err := tx.ExecContext(ctx, insertQuery,
			s.ID,
			s.UserID,
			s.TaxYear,
			s.Symbol,
			s.ShortTermGainLoss,
			s.LongTermGainLoss,
			s.TotalGainLoss,
			s.PositionsClosed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert capital_gains_summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit capital_gains_summary rebuild: %w", err)
	}

	return nil
}

// GetSummaries retrieves all summary rows for a user and tax year, ordered by symbol.
func (r *SummaryRepository) GetSummaries(userID string, taxYear int) ([]model.CapitalGainsSummary, error) {
	query := `
		SELECT id, user_id, tax_year, symbol, short_term_gain_loss,
			long_term_gain_loss, total_gain_loss, positions_closed, calculated_at
		FROM capital_gains_summary
		WHERE user_id = ? AND tax_year = ?
		ORDER BY symbol ASC
	`

	rows, err := r.db.Query(query, userID, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query capital_gains_summary table: %w", err)
	}
	defer rows.Close()

	summaries := []model.CapitalGainsSummary{}
	for rows.Next() {
		var s model.CapitalGainsSummary
		var calculatedAtStr string

		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.TaxYear,
			&s.Symbol,
			&s.ShortTermGainLoss,
			&s.LongTermGainLoss,
			&s.TotalGainLoss,
			&s.PositionsClosed,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capital_gains_summary table results: %w", err)
		}

		s.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil || s.CalculatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capital_gains_summary table: %w", err)
	}

	return summaries, nil
}
