package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/repository"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/testutil"
)

func testFernetKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

// TestMarketDataService_Prices tests price upserts.
//
// WHY: Harvest scans fall back to these stored prices, and a price push must
// overwrite per symbol rather than accumulate rows.
func TestMarketDataService_Prices(t *testing.T) {
	t.Run("stores and overwrites prices per symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMarketDataService(t, db, "")

		updated, err := svc.UpsertPrices(context.Background(), request.UpsertPricesRequest{
			Prices: []request.PriceEntry{
				{Symbol: "AAPL", Price: 45.00, AsOf: "2024-06-14"},
				{Symbol: "MSFT", Price: 250.00, AsOf: "2024-06-14"},
			},
		})
		if err != nil {
			t.Fatalf("UpsertPrices() returned unexpected error: %v", err)
		}
		if updated != 2 {
			t.Errorf("Expected 2 updates, got %d", updated)
		}

		// Same symbol again: one row, new value.
		if _, err := svc.UpsertPrices(context.Background(), request.UpsertPricesRequest{
			Prices: []request.PriceEntry{{Symbol: "AAPL", Price: 47.50, AsOf: "2024-06-15"}},
		}); err != nil {
			t.Fatalf("UpsertPrices() returned unexpected error: %v", err)
		}

		var count int
		var price float64
		if err := db.QueryRow(`SELECT COUNT(*), MAX(price) FROM symbol_price WHERE symbol = 'AAPL'`).Scan(&count, &price); err != nil {
			t.Fatalf("Failed to query symbol_price: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 row per symbol, got %d", count)
		}
		if price != 47.50 {
			t.Errorf("Expected overwritten price 47.50, got %v", price)
		}
	})

	t.Run("rejects a malformed as-of date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMarketDataService(t, db, "")

		_, err := svc.UpsertPrices(context.Background(), request.UpsertPricesRequest{
			Prices: []request.PriceEntry{{Symbol: "AAPL", Price: 45.00, AsOf: "June 14"}},
		})
		if err == nil {
			t.Error("Expected an error for a malformed date")
		}
	})
}

// TestMarketDataService_FeedToken tests encrypted feed-token storage.
//
// WHY: The feed credential is a secret at rest. It must round-trip through
// encryption, and storage must be refused outright when no key is configured
// instead of falling back to plaintext.
func TestMarketDataService_FeedToken(t *testing.T) {
	t.Run("round-trips through encryption", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMarketDataService(t, db, testFernetKey(t))

		if err := svc.SetFeedToken(context.Background(), "super-secret-token"); err != nil {
			t.Fatalf("SetFeedToken() returned unexpected error: %v", err)
		}

		token, err := svc.FeedToken()
		if err != nil {
			t.Fatalf("FeedToken() returned unexpected error: %v", err)
		}
		if token != "super-secret-token" {
			t.Errorf("Expected the token to round-trip, got %q", token)
		}

		// The stored value is not the plaintext.
		var stored string
		if err := db.QueryRow(`SELECT value FROM app_setting WHERE key = 'market_data_feed_token'`).Scan(&stored); err != nil {
			t.Fatalf("Failed to query app_setting: %v", err)
		}
		if stored == "super-secret-token" {
			t.Error("Expected the stored token to be encrypted")
		}
	})

	t.Run("refuses storage without a configured key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMarketDataService(t, db, "")

		err := svc.SetFeedToken(context.Background(), "super-secret-token")
		if !errors.Is(err, service.ErrEncryptionDisabled) {
			t.Errorf("Expected ErrEncryptionDisabled, got %v", err)
		}
	})

	t.Run("rejects an invalid key at construction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		_, err := service.NewMarketDataService(
			repository.NewPriceRepository(db),
			repository.NewSettingRepository(db),
			"not-a-key",
		)
		if err == nil {
			t.Error("Expected an error for an invalid fernet key")
		}
	})
}
