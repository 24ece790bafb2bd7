package service_test

import (
	"context"
	"testing"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/testutil"
)

// TestLedgerService_WashSale tests wash-sale detection and loss deferral on
// dispositions.
//
// WHY: A disallowed loss that still reaches the gains summary would be
// deducted twice — once directly and once through the inflated replacement
// basis. Detection, the basis adjustment and the audit event have to move
// together in one transaction.
func TestLedgerService_WashSale(t *testing.T) {
	dispose := func(t *testing.T, svc *service.LedgerService, userID, lotID string, quantity float64, date string, price float64) *model.DispositionResult {
		t.Helper()
		result, err := svc.DisposeLot(context.Background(), lotID, request.DisposeLotRequest{
			UserID:           userID,
			Quantity:         quantity,
			DispositionDate:  date,
			DispositionPrice: price,
		})
		if err != nil {
			t.Fatalf("DisposeLot() returned unexpected error: %v", err)
		}
		return result
	}

	t.Run("loss with replacement inside the window is a wash sale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		lotB := testutil.CreateOpenLot(t, db, userID, "AAPL", 50, "2024-06-01", 45.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 40.00)

		closed := result.ClosedPortion
		if !closed.IsWashSale {
			t.Fatal("Expected the loss disposition to be flagged as a wash sale")
		}
		if closed.WashSaleReplacementLotID != lotB.ID {
			t.Errorf("Expected replacement %s, got %s", lotB.ID, closed.WashSaleReplacementLotID)
		}

		// The disallowed loss moved onto the replacement lot's basis.
		replacement, err := svc.GetLot(lotB.ID, userID)
		if err != nil {
			t.Fatalf("GetLot() returned unexpected error: %v", err)
		}
		if !approxEqual(replacement.CostBasis, 2250.00+1000.00) {
			t.Errorf("Expected replacement basis 3250, got %v", replacement.CostBasis)
		}

		// An audit event was recorded in the same transaction.
		events, err := testutil.NewTestTaxEventService(t, db).ListEvents(userID, 2024, model.EventWashSale)
		if err != nil {
			t.Fatalf("ListEvents() returned unexpected error: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("Expected 1 wash sale event, got %d", len(events))
		}
		if !approxEqual(events[0].Amount, 1000.00) {
			t.Errorf("Expected deferred amount 1000, got %v", events[0].Amount)
		}
		if events[0].RelatedLotID != closed.ID {
			t.Errorf("Expected event related to lot %s, got %s", closed.ID, events[0].RelatedLotID)
		}
	})

	t.Run("window boundary is inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		// Exactly 30 days after the disposition date.
		testutil.CreateOpenLot(t, db, userID, "AAPL", 10, "2024-07-15", 42.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 40.00)

		if !result.ClosedPortion.IsWashSale {
			t.Error("Expected an acquisition exactly 30 days out to trigger a wash sale")
		}
	})

	t.Run("acquisition outside the window does not trigger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		testutil.CreateOpenLot(t, db, userID, "AAPL", 10, "2024-07-16", 42.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 40.00)

		if result.ClosedPortion.IsWashSale {
			t.Error("Expected an acquisition 31 days out to be outside the window")
		}
	})

	t.Run("different symbol does not trigger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		testutil.CreateOpenLot(t, db, userID, "MSFT", 10, "2024-06-10", 200.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 40.00)

		if result.ClosedPortion.IsWashSale {
			t.Error("Expected a different-symbol acquisition not to trigger a wash sale")
		}
	})

	t.Run("gains are never flagged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		testutil.CreateOpenLot(t, db, userID, "AAPL", 50, "2024-06-01", 45.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 60.00)

		if result.ClosedPortion.IsWashSale {
			t.Error("Expected a gain disposition never to be flagged")
		}
	})

	t.Run("disabled detection records a plain loss", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		testutil.NewPreference(userID).WithWashSaleDetection(false).Build(t, db)
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		lotB := testutil.CreateOpenLot(t, db, userID, "AAPL", 50, "2024-06-01", 45.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 40.00)

		if result.ClosedPortion.IsWashSale {
			t.Error("Expected no wash sale flag with detection disabled")
		}

		replacement, err := svc.GetLot(lotB.ID, userID)
		if err != nil {
			t.Fatalf("GetLot() returned unexpected error: %v", err)
		}
		if !approxEqual(replacement.CostBasis, 2250.00) {
			t.Errorf("Expected untouched replacement basis 2250, got %v", replacement.CostBasis)
		}
	})

	t.Run("a lot's own remainder is not a replacement", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		lot := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)

		// Partial loss disposal: the remainder shares the acquisition date
		// but must not count as a repurchase.
		result := dispose(t, svc, userID, lot.ID, 40, "2024-01-20", 40.00)

		if result.ClosedPortion.IsWashSale {
			t.Error("Expected the remainder of a split not to trigger a wash sale")
		}
	})

	t.Run("custom window width is honored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()
		testutil.NewPreference(userID).WithWashSaleWindow(5).Build(t, db)
		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		testutil.CreateOpenLot(t, db, userID, "AAPL", 10, "2024-06-25", 42.00)

		result := dispose(t, svc, userID, lotA.ID, 100, "2024-06-15", 40.00)

		if result.ClosedPortion.IsWashSale {
			t.Error("Expected a 10-day-out acquisition to be outside a 5-day window")
		}
	})
}
