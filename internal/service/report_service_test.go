package service_test

import (
	"context"
	"testing"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/testutil"
)

// TestReportService_BuildReport tests the annual report composition.
//
// WHY: The report is the user-facing artifact of the whole engine. It must
// combine freshly recomputed gains with the year's events, and keep events
// from other years out.
func TestReportService_BuildReport(t *testing.T) {
	t.Run("composes gains and events for the year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)
		eventSvc := testutil.NewTestTaxEventService(t, db)
		userID := testutil.MakeID()

		testutil.CreateClosedLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00, "2024-06-15", 40.00) // -1000 short
		testutil.CreateClosedLot(t, db, userID, "MSFT", 10, "2022-02-01", 200.00, "2024-08-01", 250.00) // +500 long

		events := []request.RecordTaxEventRequest{
			{UserID: userID, Symbol: "AAPL", EventType: model.EventDividend, Amount: 120.00, EventDate: "2024-03-15"},
			{UserID: userID, Symbol: "BND", EventType: model.EventInterest, Amount: 80.00, EventDate: "2024-04-01"},
			{UserID: userID, Symbol: "VTI", EventType: model.EventCapitalGainDistribution, Amount: 45.00, EventDate: "2024-12-20"},
			// Outside the year: must not count.
			{UserID: userID, Symbol: "AAPL", EventType: model.EventDividend, Amount: 999.00, EventDate: "2023-03-15"},
		}
		for _, req := range events {
			if _, err := eventSvc.RecordEvent(context.Background(), req); err != nil {
				t.Fatalf("RecordEvent() returned unexpected error: %v", err)
			}
		}

		report, err := svc.BuildReport(context.Background(), userID, 2024)
		if err != nil {
			t.Fatalf("BuildReport() returned unexpected error: %v", err)
		}

		if report.TaxYear != 2024 {
			t.Errorf("Expected tax year 2024, got %d", report.TaxYear)
		}
		if !approxEqual(report.ShortTermGains, -1000.00) {
			t.Errorf("Expected short-term -1000, got %v", report.ShortTermGains)
		}
		if !approxEqual(report.LongTermGains, 500.00) {
			t.Errorf("Expected long-term 500, got %v", report.LongTermGains)
		}
		if !approxEqual(report.TotalGains, -500.00) {
			t.Errorf("Expected total -500, got %v", report.TotalGains)
		}
		if !approxEqual(report.Dividends, 120.00) {
			t.Errorf("Expected dividends 120, got %v", report.Dividends)
		}
		if !approxEqual(report.Interest, 80.00) {
			t.Errorf("Expected interest 80, got %v", report.Interest)
		}
		if !approxEqual(report.CapitalGainDistributions, 45.00) {
			t.Errorf("Expected distributions 45, got %v", report.CapitalGainDistributions)
		}
		if report.PositionsClosed != 2 {
			t.Errorf("Expected 2 positions closed, got %d", report.PositionsClosed)
		}
		if len(report.Symbols) != 2 {
			t.Errorf("Expected per-symbol breakdown of 2 symbols, got %d", len(report.Symbols))
		}
	})

	t.Run("wash sale dispositions surface in the wash sales total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)
		ledger := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()

		lotA := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		testutil.CreateOpenLot(t, db, userID, "AAPL", 50, "2024-06-01", 45.00)

		if _, err := ledger.DisposeLot(context.Background(), lotA.ID, request.DisposeLotRequest{
			UserID:           userID,
			Quantity:         100,
			DispositionDate:  "2024-06-15",
			DispositionPrice: 40.00,
		}); err != nil {
			t.Fatalf("DisposeLot() returned unexpected error: %v", err)
		}

		report, err := svc.BuildReport(context.Background(), userID, 2024)
		if err != nil {
			t.Fatalf("BuildReport() returned unexpected error: %v", err)
		}

		if !approxEqual(report.WashSales, 1000.00) {
			t.Errorf("Expected wash sales total 1000, got %v", report.WashSales)
		}
		// The deferred loss is excluded from realized gains.
		if !approxEqual(report.ShortTermGains, 0) {
			t.Errorf("Expected deferred loss excluded from gains, got %v", report.ShortTermGains)
		}
		if report.PositionsClosed != 1 {
			t.Errorf("Expected 1 position closed, got %d", report.PositionsClosed)
		}
	})

	t.Run("building refreshes stale summaries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)
		gains := testutil.NewTestGainsService(t, db)
		ledger := testutil.NewTestLedgerService(t, db)
		userID := testutil.MakeID()

		lot := testutil.CreateOpenLot(t, db, userID, "AAPL", 100, "2024-01-10", 50.00)
		if _, err := gains.RecomputeSummary(context.Background(), userID, 2024); err != nil {
			t.Fatalf("RecomputeSummary() returned unexpected error: %v", err)
		}

		// Close the lot after the summary was computed.
		if _, err := ledger.DisposeLot(context.Background(), lot.ID, request.DisposeLotRequest{
			UserID:           userID,
			Quantity:         100,
			DispositionDate:  "2024-06-15",
			DispositionPrice: 60.00,
		}); err != nil {
			t.Fatalf("DisposeLot() returned unexpected error: %v", err)
		}

		report, err := svc.BuildReport(context.Background(), userID, 2024)
		if err != nil {
			t.Fatalf("BuildReport() returned unexpected error: %v", err)
		}

		if !approxEqual(report.ShortTermGains, 1000.00) {
			t.Errorf("Expected the report to see the fresh disposition, got %v", report.ShortTermGains)
		}
	})
}
