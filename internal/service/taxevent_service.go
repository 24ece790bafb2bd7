package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// TaxEventService records and retrieves external taxable events. Events are
// immutable once recorded; the surrounding application owns their lifecycle
// up to the insert.
type TaxEventService struct {
	taxEventRepo *repository.TaxEventRepository
}

// NewTaxEventService creates a new TaxEventService with the provided repository dependency.
func NewTaxEventService(taxEventRepo *repository.TaxEventRepository) *TaxEventService {
	return &TaxEventService{taxEventRepo: taxEventRepo}
}

// RecordEvent records a new tax event.
func (s *TaxEventService) RecordEvent(ctx context.Context, req request.RecordTaxEventRequest) (*model.TaxEvent, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event date: %w", err)
	}

	event := &model.TaxEvent{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Symbol:       req.Symbol,
		EventType:    req.EventType,
		Amount:       req.Amount,
		EventDate:    eventDate.UTC(),
		RelatedLotID: req.RelatedLotID,
		Description:  req.Description,
	}

	if err := s.taxEventRepo.InsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record tax event: %w", err)
	}

	return event, nil
}

// ListEvents retrieves a user's tax events, optionally narrowed to one tax
// year and/or event type.
func (s *TaxEventService) ListEvents(userID string, taxYear int, eventType string) ([]model.TaxEvent, error) {
	filter := repository.EventFilter{EventType: eventType}
	if taxYear != 0 {
		filter.StartDate, filter.EndDate = repository.TaxYearBounds(taxYear)
	}
	return s.taxEventRepo.GetEvents(userID, filter)
}
