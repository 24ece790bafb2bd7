package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/model"
)

// TaxEventRepository provides data access methods for the tax_event table.
// Events are insert-only: there are no update or delete paths.
type TaxEventRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTaxEventRepository creates a new TaxEventRepository with the provided database connection.
func NewTaxEventRepository(db *sql.DB) *TaxEventRepository {
	return &TaxEventRepository{db: db}
}

// WithTx returns a copy of the repository that runs all statements on the
// given transaction.
func (r *TaxEventRepository) WithTx(tx *sql.Tx) *TaxEventRepository {
	return &TaxEventRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TaxEventRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertEvent inserts a new tax event row.
func (r *TaxEventRepository) InsertEvent(ctx context.Context, event *model.TaxEvent) error {
	query := `
		INSERT INTO tax_event (id, user_id, symbol, event_type, amount, event_date, related_lot_id, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Symbol,
		event.EventType,
		event.Amount,
		event.EventDate.Format("2006-01-02"),
		nullableString(event.RelatedLotID),
		nullableString(event.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to insert tax_event: %w", err)
	}

	return nil
}

// EventFilter narrows GetEvents results. Zero values mean "no constraint".
type EventFilter struct {
	EventType string
	StartDate time.Time
	EndDate   time.Time
}

// GetEvents retrieves a user's tax events ordered by event date ascending.
func (r *TaxEventRepository) GetEvents(userID string, filter EventFilter) ([]model.TaxEvent, error) {
	query := `
		SELECT id, user_id, symbol, event_type, amount, event_date, related_lot_id, description, created_at
		FROM tax_event
		WHERE user_id = ?
	`
	args := []any{userID}

	if filter.EventType != "" {
		query += ` AND event_type = ?`
		args = append(args, filter.EventType)
	}
	if !filter.StartDate.IsZero() {
		query += ` AND event_date >= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		query += ` AND event_date <= ?`
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}

	query += ` ORDER BY event_date ASC, created_at ASC`

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax_event table: %w", err)
	}
	defer rows.Close()

	events := []model.TaxEvent{}
	for rows.Next() {
		var e model.TaxEvent
		var eventDateStr, createdAtStr string
		var relatedLotID, description sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Symbol,
			&e.EventType,
			&e.Amount,
			&eventDateStr,
			&relatedLotID,
			&description,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax_event table results: %w", err)
		}

		e.EventDate, err = ParseTime(eventDateStr)
		if err != nil || e.EventDate.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		e.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || e.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if relatedLotID.Valid {
			e.RelatedLotID = relatedLotID.String
		}
		if description.Valid {
			e.Description = description.String
		}

		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax_event table: %w", err)
	}

	return events, nil
}
