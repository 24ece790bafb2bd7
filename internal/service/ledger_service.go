package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// LedgerService owns the set of tax lots for each user: it creates lots on
// acquisition and applies dispositions. A partial disposition is a split, not
// a mutation: the disposed portion becomes a new closed record and the
// original row is rewritten as the open remainder, so no lot is ever left in
// an ambiguous partially-closed state.
type LedgerService struct {
	db                *sql.DB
	lotRepo           *repository.LotRepository
	taxEventRepo      *repository.TaxEventRepository
	preferenceService *PreferenceService
	washSaleDetector  *WashSaleDetector
	symbolLocks       *keyedMutex
}

// NewLedgerService creates a new LedgerService with the provided dependencies.
func NewLedgerService(
	db *sql.DB,
	lotRepo *repository.LotRepository,
	taxEventRepo *repository.TaxEventRepository,
	preferenceService *PreferenceService,
	washSaleDetector *WashSaleDetector,
) *LedgerService {
	return &LedgerService{
		db:                db,
		lotRepo:           lotRepo,
		taxEventRepo:      taxEventRepo,
		preferenceService: preferenceService,
		washSaleDetector:  washSaleDetector,
		symbolLocks:       newKeyedMutex(),
	}
}

// CreateLot records a new acquisition as an open tax lot.
// The cost basis defaults to quantity × acquisitionPrice; CostBasisOverride
// replaces it for corporate-action adjustments.
func (s *LedgerService) CreateLot(ctx context.Context, req request.CreateLotRequest) (*model.TaxLot, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	acquisitionDate, err := time.Parse("2006-01-02", req.AcquisitionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid acquisition date: %w", err)
	}

	costBasis := req.Quantity * req.AcquisitionPrice
	if req.CostBasisOverride != nil {
		costBasis = *req.CostBasisOverride
	}
	if costBasis < 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	lot := &model.TaxLot{
		ID:               uuid.New().String(),
		UserID:           req.UserID,
		Symbol:           req.Symbol,
		Quantity:         req.Quantity,
		AcquisitionDate:  acquisitionDate.UTC(),
		AcquisitionPrice: req.AcquisitionPrice,
		CostBasis:        costBasis,
		Metadata:         model.Metadata(req.Metadata),
		Version:          1,
	}

	if err := s.lotRepo.InsertLot(ctx, lot); err != nil {
		return nil, fmt.Errorf("failed to create lot: %w", err)
	}

	return lot, nil
}

// GetLot retrieves a single lot scoped to the given user.
func (s *LedgerService) GetLot(lotID, userID string) (model.TaxLot, error) {
	return s.lotRepo.GetLot(lotID, userID)
}

// ListLots retrieves a user's lots ordered by acquisition date descending.
// When a tax year is given, closed lots are limited to dispositions within
// that year; open lots stay visible regardless of year since they represent
// present exposure.
func (s *LedgerService) ListLots(userID string, filter repository.LotFilter) ([]model.TaxLot, error) {
	return s.lotRepo.QueryLots(userID, filter)
}

// DisposeLot applies a disposition of quantity units against the lot.
//
// All dispositions for one (user, symbol) are serialized behind a keyed lock,
// with a version check-and-set on the row update as a backstop, so two
// concurrent dispositions can never double-spend the same open quantity.
func (s *LedgerService) DisposeLot(ctx context.Context, lotID string, req request.DisposeLotRequest) (*model.DispositionResult, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	dispositionDate, err := time.Parse("2006-01-02", req.DispositionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid disposition date: %w", err)
	}
	dispositionDate = dispositionDate.UTC()

	// Read once outside the lock to learn the symbol, then re-read inside it.
	lot, err := s.lotRepo.GetLot(lotID, req.UserID)
	if err != nil {
		return nil, err
	}

	unlock := s.symbolLocks.Lock(req.UserID + "|" + lot.Symbol)
	defer unlock()

	result, err := s.disposeLocked(ctx, lotID, req, dispositionDate)
	if errors.Is(err, apperrors.ErrVersionConflict) {
		// A writer outside this process raced us; the re-read picks up its state.
		result, err = s.disposeLocked(ctx, lotID, req, dispositionDate)
	}
	return result, err
}

func (s *LedgerService) disposeLocked(ctx context.Context, lotID string, req request.DisposeLotRequest, dispositionDate time.Time) (*model.DispositionResult, error) {
	lot, err := s.lotRepo.GetLot(lotID, req.UserID)
	if err != nil {
		return nil, err
	}

	if lot.IsClosed {
		return nil, fmt.Errorf("%w: lot %s is closed", apperrors.ErrInsufficientQuantity, lot.ID)
	}
	if req.Quantity > lot.Quantity {
		return nil, fmt.Errorf("%w: requested %v, open %v", apperrors.ErrInsufficientQuantity, req.Quantity, lot.Quantity)
	}
	if dispositionDate.Before(lot.AcquisitionDate) {
		return nil, apperrors.ErrDispositionBeforeAcquisition
	}

	prefs, err := s.preferenceService.GetPreference(req.UserID)
	if err != nil {
		return nil, err
	}

	disp := ComputeDisposition(lot, req.Quantity, dispositionDate, req.DispositionPrice, prefs.ShortTermThresholdDays)

	fullDisposal := req.Quantity == lot.Quantity
	closedPortion := buildClosedPortion(lot, disp, dispositionDate, req.DispositionPrice, fullDisposal)

	var remainder *model.TaxLot
	if !fullDisposal {
		// The remainder keeps the original id, acquisition date and unit
		// price, so open-position references stay valid across the split.
		r := lot
		r.Quantity = lot.Quantity - req.Quantity
		r.CostBasis = lot.CostBasis - disp.CostBasisSold
		remainder = &r
	}

	var replacement *model.TaxLot
	if disp.GainLoss < 0 && prefs.EnableWashSaleDetection {
		// The disposed lot and its remainder share one acquisition and are
		// never their own replacement.
		replacement, err = s.washSaleDetector.FindReplacement(
			req.UserID, lot.Symbol, dispositionDate, prefs.WashSaleWindowDays, lot.ID, closedPortion.ID,
		)
		if err != nil {
			return nil, err
		}
		if replacement != nil {
			closedPortion.IsWashSale = true
			closedPortion.WashSaleReplacementLotID = replacement.ID
		}
	}

	if err := s.persistDisposition(ctx, &closedPortion, remainder, replacement, fullDisposal, dispositionDate); err != nil {
		return nil, err
	}

	if remainder != nil {
		remainder.Version++
	}

	return &model.DispositionResult{
		ClosedPortion: closedPortion,
		Remainder:     remainder,
	}, nil
}

// persistDisposition writes the split, the deferred-loss basis adjustment and
// the wash-sale event in one transaction.
func (s *LedgerService) persistDisposition(ctx context.Context, closedPortion, remainder, replacement *model.TaxLot, fullDisposal bool, dispositionDate time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lotRepo := s.lotRepo.WithTx(tx)

	if fullDisposal {
		if err := lotRepo.UpdateDisposition(ctx, closedPortion); err != nil {
			return err
		}
		closedPortion.Version++
	} else {
		if err := lotRepo.InsertLot(ctx, closedPortion); err != nil {
			return err
		}
		if err := lotRepo.UpdateRemainder(ctx, remainder); err != nil {
			return err
		}
	}

	if replacement != nil {
		disallowed := math.Abs(closedPortion.GainLoss)
		if err := lotRepo.AddCostBasisAdjustment(ctx, replacement.ID, disallowed); err != nil {
			return err
		}

		event := &model.TaxEvent{
			ID:           uuid.New().String(),
			UserID:       closedPortion.UserID,
			Symbol:       closedPortion.Symbol,
			EventType:    model.EventWashSale,
			Amount:       disallowed,
			EventDate:    dispositionDate,
			RelatedLotID: closedPortion.ID,
			Description:  fmt.Sprintf("loss deferred onto replacement lot %s", replacement.ID),
		}
		if err := s.taxEventRepo.WithTx(tx).InsertEvent(ctx, event); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit disposition: %w", err)
	}

	return nil
}

// buildClosedPortion assembles the closed record for the disposed quantity.
// A full disposal closes the original row; a partial disposal produces a new
// record linked back through ParentLotID.
func buildClosedPortion(lot model.TaxLot, disp Disposition, dispositionDate time.Time, dispositionPrice float64, fullDisposal bool) model.TaxLot {
	closed := lot
	if !fullDisposal {
		closed.ID = uuid.New().String()
		closed.ParentLotID = lot.ID
		closed.Version = 1
	}

	closed.Quantity = disp.Quantity
	closed.CostBasis = disp.CostBasisSold
	closed.DispositionDate = &dispositionDate
	closed.DispositionPrice = &dispositionPrice
	closed.Proceeds = disp.Proceeds
	closed.GainLoss = disp.GainLoss
	closed.HoldingPeriodDays = disp.HoldingPeriodDays
	closed.IsLongTerm = disp.IsLongTerm
	closed.IsClosed = true

	return closed
}
