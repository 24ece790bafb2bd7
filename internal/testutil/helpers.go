package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/duyet/finance-hub-sub002/internal/repository"
	"github.com/duyet/finance-hub-sub002/internal/service"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestPreferenceService(t *testing.T, db *sql.DB) *service.PreferenceService {
	t.Helper()

	preferenceRepo := repository.NewPreferenceRepository(db)

	return service.NewPreferenceService(preferenceRepo)
}

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	lotRepo := repository.NewLotRepository(db)
	taxEventRepo := repository.NewTaxEventRepository(db)
	preferenceService := NewTestPreferenceService(t, db)
	washSaleDetector := service.NewWashSaleDetector(lotRepo)

	return service.NewLedgerService(
		db,
		lotRepo,
		taxEventRepo,
		preferenceService,
		washSaleDetector,
	)
}

func NewTestGainsService(t *testing.T, db *sql.DB) *service.GainsService {
	t.Helper()

	lotRepo := repository.NewLotRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	return service.NewGainsService(lotRepo, summaryRepo)
}

func NewTestHarvestService(t *testing.T, db *sql.DB) *service.HarvestService {
	t.Helper()

	lotRepo := repository.NewLotRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	preferenceService := NewTestPreferenceService(t, db)

	return service.NewHarvestService(lotRepo, priceRepo, preferenceService)
}

func NewTestTaxEventService(t *testing.T, db *sql.DB) *service.TaxEventService {
	t.Helper()

	taxEventRepo := repository.NewTaxEventRepository(db)

	return service.NewTaxEventService(taxEventRepo)
}

func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	taxEventRepo := repository.NewTaxEventRepository(db)

	return service.NewReportService(NewTestGainsService(t, db), taxEventRepo)
}

func NewTestMarketDataService(t *testing.T, db *sql.DB, fernetKey string) *service.MarketDataService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	svc, err := service.NewMarketDataService(priceRepo, settingRepo, fernetKey)
	if err != nil {
		t.Fatalf("Failed to create market data service: %v", err)
	}
	return svc
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
