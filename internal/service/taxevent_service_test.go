package service_test

import (
	"context"
	"testing"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/testutil"
)

// TestTaxEventService tests recording and listing of external tax events.
//
// WHY: Events carry the non-trading income lines of the annual report.
// Filtering by year and type is what the events endpoint exposes.
func TestTaxEventService(t *testing.T) {
	t.Run("records and retrieves an event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTaxEventService(t, db)
		userID := testutil.MakeID()

		recorded, err := svc.RecordEvent(context.Background(), request.RecordTaxEventRequest{
			UserID:      userID,
			Symbol:      "AAPL",
			EventType:   model.EventDividend,
			Amount:      120.50,
			EventDate:   "2024-03-15",
			Description: "quarterly dividend",
		})
		if err != nil {
			t.Fatalf("RecordEvent() returned unexpected error: %v", err)
		}

		events, err := svc.ListEvents(userID, 0, "")
		if err != nil {
			t.Fatalf("ListEvents() returned unexpected error: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(events))
		}
		if events[0].ID != recorded.ID {
			t.Errorf("Expected event %s, got %s", recorded.ID, events[0].ID)
		}
		if events[0].Amount != 120.50 {
			t.Errorf("Expected amount 120.50, got %v", events[0].Amount)
		}
		if events[0].Description != "quarterly dividend" {
			t.Errorf("Expected description to round-trip, got %q", events[0].Description)
		}
	})

	t.Run("filters by tax year and event type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTaxEventService(t, db)
		userID := testutil.MakeID()

		seed := []request.RecordTaxEventRequest{
			{UserID: userID, Symbol: "AAPL", EventType: model.EventDividend, Amount: 100, EventDate: "2024-03-15"},
			{UserID: userID, Symbol: "BND", EventType: model.EventInterest, Amount: 50, EventDate: "2024-04-01"},
			{UserID: userID, Symbol: "AAPL", EventType: model.EventDividend, Amount: 75, EventDate: "2023-03-15"},
		}
		for _, req := range seed {
			if _, err := svc.RecordEvent(context.Background(), req); err != nil {
				t.Fatalf("RecordEvent() returned unexpected error: %v", err)
			}
		}

		byYear, err := svc.ListEvents(userID, 2024, "")
		if err != nil {
			t.Fatalf("ListEvents() returned unexpected error: %v", err)
		}
		if len(byYear) != 2 {
			t.Errorf("Expected 2 events in 2024, got %d", len(byYear))
		}

		byType, err := svc.ListEvents(userID, 2024, model.EventDividend)
		if err != nil {
			t.Fatalf("ListEvents() returned unexpected error: %v", err)
		}
		if len(byType) != 1 || byType[0].EventType != model.EventDividend {
			t.Errorf("Expected 1 dividend in 2024, got %d", len(byType))
		}
	})

	t.Run("does not leak other users' events", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTaxEventService(t, db)
		userA := testutil.MakeID()
		userB := testutil.MakeID()

		if _, err := svc.RecordEvent(context.Background(), request.RecordTaxEventRequest{
			UserID: userA, Symbol: "AAPL", EventType: model.EventDividend, Amount: 100, EventDate: "2024-03-15",
		}); err != nil {
			t.Fatalf("RecordEvent() returned unexpected error: %v", err)
		}

		events, err := svc.ListEvents(userB, 0, "")
		if err != nil {
			t.Fatalf("ListEvents() returned unexpected error: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("Expected no events for another user, got %d", len(events))
		}
	})
}
