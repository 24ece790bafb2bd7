package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/model"
)

// LotRepository provides data access methods for the tax_lot table.
// Lots are append-mostly: rows are inserted on acquisition and on partial
// disposition, updated exactly once when closed, and never deleted.
type LotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewLotRepository creates a new LotRepository with the provided database connection.
func NewLotRepository(db *sql.DB) *LotRepository {
	return &LotRepository{db: db}
}

// WithTx returns a copy of the repository that runs all statements on the
// given transaction.
func (r *LotRepository) WithTx(tx *sql.Tx) *LotRepository {
	return &LotRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *LotRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const lotColumns = `
	id, user_id, symbol, quantity, acquisition_date, acquisition_price, cost_basis,
	disposition_date, disposition_price, proceeds, gain_loss, holding_period_days,
	is_long_term, is_closed, is_wash_sale, wash_sale_replacement_lot_id,
	parent_lot_id, metadata, version, created_at, updated_at`

// LotFilter narrows QueryLots results. Zero values mean "no constraint".
// TaxYear returns lots disposed within that year's calendar bounds OR still
// open: open lots represent present exposure and stay visible regardless of year.
type LotFilter struct {
	Symbol        string
	IncludeClosed bool
	TaxYear       int
}

// InsertLot inserts a new tax lot row.
func (r *LotRepository) InsertLot(ctx context.Context, lot *model.TaxLot) error {
	metadata, err := lot.Metadata.Encode()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tax_lot (
			id, user_id, symbol, quantity, acquisition_date, acquisition_price, cost_basis,
			disposition_date, disposition_price, proceeds, gain_loss, holding_period_days,
			is_long_term, is_closed, is_wash_sale, wash_sale_replacement_lot_id,
			parent_lot_id, metadata, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.getQuerier().ExecContext(ctx, query,
		lot.ID,
		lot.UserID,
		lot.Symbol,
		lot.Quantity,
		lot.AcquisitionDate.Format("2006-01-02"),
		lot.AcquisitionPrice,
		lot.CostBasis,
		nullableDate(lot.DispositionDate),
		nullableFloat(lot.DispositionPrice),
		nullableWhenOpen(lot.IsClosed, lot.Proceeds),
		nullableWhenOpen(lot.IsClosed, lot.GainLoss),
		nullableIntWhenOpen(lot.IsClosed, lot.HoldingPeriodDays),
		lot.IsLongTerm,
		lot.IsClosed,
		lot.IsWashSale,
		nullableString(lot.WashSaleReplacementLotID),
		nullableString(lot.ParentLotID),
		nullableString(metadata),
		lot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tax_lot: %w", err)
	}

	return nil
}

// GetLot retrieves a single lot scoped to the given user.
// Returns apperrors.ErrLotNotFound for unknown ids and for lots belonging to
// another user.
func (r *LotRepository) GetLot(lotID, userID string) (model.TaxLot, error) {
	query := `SELECT ` + lotColumns + ` FROM tax_lot WHERE id = ? AND user_id = ?`

	row := r.getQuerier().QueryRow(query, lotID, userID)
	lot, err := scanLot(row)
	if err == sql.ErrNoRows {
		return model.TaxLot{}, apperrors.ErrLotNotFound
	}
	if err != nil {
		return model.TaxLot{}, fmt.Errorf("failed to scan tax_lot: %w", err)
	}

	return lot, nil
}

// QueryLots retrieves a user's lots ordered by acquisition date descending.
func (r *LotRepository) QueryLots(userID string, filter LotFilter) ([]model.TaxLot, error) {
	query := `SELECT ` + lotColumns + ` FROM tax_lot WHERE user_id = ?`
	args := []any{userID}

	if filter.Symbol != "" {
		query += ` AND symbol = ?`
		args = append(args, filter.Symbol)
	}

	if !filter.IncludeClosed {
		query += ` AND is_closed = FALSE`
	} else if filter.TaxYear != 0 {
		start, end := TaxYearBounds(filter.TaxYear)
		query += ` AND (is_closed = FALSE OR (disposition_date >= ? AND disposition_date <= ?))`
		args = append(args, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	query += ` ORDER BY acquisition_date DESC, created_at DESC`

	return r.queryLotRows(query, args...)
}

// GetOpenLots retrieves all open lots for a user, oldest acquisition first.
func (r *LotRepository) GetOpenLots(userID string) ([]model.TaxLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM tax_lot
		WHERE user_id = ? AND is_closed = FALSE
		ORDER BY acquisition_date ASC`

	return r.queryLotRows(query, userID)
}

// GetClosedLotsInYear retrieves lots disposed within the inclusive date range.
func (r *LotRepository) GetClosedLotsInYear(userID string, start, end time.Time) ([]model.TaxLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM tax_lot
		WHERE user_id = ? AND is_closed = TRUE
		AND disposition_date >= ? AND disposition_date <= ?
		ORDER BY disposition_date ASC`

	return r.queryLotRows(query, userID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// GetAcquisitionsInWindow retrieves a user's lots (open or closed) of one
// symbol acquired within the inclusive date window, ordered earliest first.
// The wash-sale detector excludes the disposed lot and its remainder itself.
func (r *LotRepository) GetAcquisitionsInWindow(userID, symbol string, start, end time.Time) ([]model.TaxLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM tax_lot
		WHERE user_id = ? AND symbol = ?
		AND acquisition_date >= ? AND acquisition_date <= ?
		ORDER BY acquisition_date ASC, created_at ASC`

	return r.queryLotRows(query, userID, symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// UpdateDisposition writes the disposition fields of a closed lot using a
// version check-and-set. Returns apperrors.ErrVersionConflict when a
// concurrent writer got there first.
func (r *LotRepository) UpdateDisposition(ctx context.Context, lot *model.TaxLot) error {
	query := `
		UPDATE tax_lot
		SET quantity = ?, cost_basis = ?, disposition_date = ?, disposition_price = ?,
			proceeds = ?, gain_loss = ?, holding_period_days = ?, is_long_term = ?,
			is_closed = TRUE, is_wash_sale = ?, wash_sale_replacement_lot_id = ?,
			version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		lot.Quantity,
		lot.CostBasis,
		nullableDate(lot.DispositionDate),
		nullableFloat(lot.DispositionPrice),
		lot.Proceeds,
		lot.GainLoss,
		lot.HoldingPeriodDays,
		lot.IsLongTerm,
		lot.IsWashSale,
		nullableString(lot.WashSaleReplacementLotID),
		lot.ID,
		lot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax_lot disposition: %w", err)
	}

	return checkVersioned(result)
}

// UpdateRemainder rewrites an open lot's quantity and cost basis after a
// partial disposition, keeping the original acquisition date and unit price.
func (r *LotRepository) UpdateRemainder(ctx context.Context, lot *model.TaxLot) error {
	query := `
		UPDATE tax_lot
		SET quantity = ?, cost_basis = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ? AND is_closed = FALSE
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		lot.Quantity,
		lot.CostBasis,
		lot.ID,
		lot.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax_lot remainder: %w", err)
	}

	return checkVersioned(result)
}

// AddCostBasisAdjustment increases a lot's cost basis by the given amount.
// Used to defer a disallowed wash-sale loss onto the replacement lot.
func (r *LotRepository) AddCostBasisAdjustment(ctx context.Context, lotID string, amount float64) error {
	query := `
		UPDATE tax_lot
		SET cost_basis = cost_basis + ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, amount, lotID)
	if err != nil {
		return fmt.Errorf("failed to adjust tax_lot cost basis: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrLotNotFound
	}

	return nil
}

// GetUsersWithClosedLotsInYear returns the distinct user ids that disposed
// lots in the given date range. Used by the summary rebuild scheduler.
func (r *LotRepository) GetUsersWithClosedLotsInYear(start, end time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT user_id
		FROM tax_lot
		WHERE is_closed = TRUE AND disposition_date >= ? AND disposition_date <= ?
		ORDER BY user_id ASC
	`

	rows, err := r.getQuerier().Query(query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query tax_lot users: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan tax_lot user: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax_lot users: %w", err)
	}

	return userIDs, nil
}

func (r *LotRepository) queryLotRows(query string, args ...any) ([]model.TaxLot, error) {
	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax_lot table: %w", err)
	}
	defer rows.Close()

	lots := []model.TaxLot{}
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax_lot table results: %w", err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax_lot table: %w", err)
	}

	return lots, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLot(s scanner) (model.TaxLot, error) {
	var lot model.TaxLot
	var acquisitionDateStr, createdAtStr, updatedAtStr string
	var dispositionDateStr, replacementLotID, parentLotID, metadataStr sql.NullString
	var dispositionPrice, proceeds, gainLoss sql.NullFloat64
	var holdingPeriodDays sql.NullInt64
	var isLongTerm sql.NullBool

	err := s.Scan(
		&lot.ID,
		&lot.UserID,
		&lot.Symbol,
		&lot.Quantity,
		&acquisitionDateStr,
		&lot.AcquisitionPrice,
		&lot.CostBasis,
		&dispositionDateStr,
		&dispositionPrice,
		&proceeds,
		&gainLoss,
		&holdingPeriodDays,
		&isLongTerm,
		&lot.IsClosed,
		&lot.IsWashSale,
		&replacementLotID,
		&parentLotID,
		&metadataStr,
		&lot.Version,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return model.TaxLot{}, err
	}

	lot.AcquisitionDate, err = ParseTime(acquisitionDateStr)
	if err != nil || lot.AcquisitionDate.IsZero() {
		return model.TaxLot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	lot.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || lot.CreatedAt.IsZero() {
		return model.TaxLot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	lot.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil || lot.UpdatedAt.IsZero() {
		return model.TaxLot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if dispositionDateStr.Valid {
		dispositionDate, err := ParseTime(dispositionDateStr.String)
		if err != nil {
			return model.TaxLot{}, fmt.Errorf("failed to parse date: %w", err)
		}
		lot.DispositionDate = &dispositionDate
	}
	if dispositionPrice.Valid {
		price := dispositionPrice.Float64
		lot.DispositionPrice = &price
	}
	if proceeds.Valid {
		lot.Proceeds = proceeds.Float64
	}
	if gainLoss.Valid {
		lot.GainLoss = gainLoss.Float64
	}
	if holdingPeriodDays.Valid {
		lot.HoldingPeriodDays = int(holdingPeriodDays.Int64)
	}
	if isLongTerm.Valid {
		lot.IsLongTerm = isLongTerm.Bool
	}
	if replacementLotID.Valid {
		lot.WashSaleReplacementLotID = replacementLotID.String
	}
	if parentLotID.Valid {
		lot.ParentLotID = parentLotID.String
	}
	if metadataStr.Valid {
		lot.Metadata, err = model.ParseMetadata(metadataStr.String)
		if err != nil {
			return model.TaxLot{}, err
		}
	}

	return lot, nil
}

func checkVersioned(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrVersionConflict
	}
	return nil
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableWhenOpen(closed bool, v float64) any {
	if !closed {
		return nil
	}
	return v
}

func nullableIntWhenOpen(closed bool, v int) any {
	if !closed {
		return nil
	}
	return v
}
