package service_test

import (
	"context"
	"testing"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/model"
	"github.com/duyet/finance-hub-sub002/internal/testutil"
)

// TestPreferenceService_GetPreference tests preference retrieval and defaults.
//
// WHY: Every disposition and harvest scan reads these values. A user that
// never saved preferences must get the documented defaults, not zeros — a
// zero wash-sale window would silently disable detection.
func TestPreferenceService_GetPreference(t *testing.T) {
	t.Run("returns defaults for a user with no stored row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPreferenceService(t, db)

		pref, err := svc.GetPreference(testutil.MakeID())
		if err != nil {
			t.Fatalf("GetPreference() returned unexpected error: %v", err)
		}

		if pref.ShortTermThresholdDays != model.DefaultShortTermThresholdDays {
			t.Errorf("Expected threshold %d, got %d", model.DefaultShortTermThresholdDays, pref.ShortTermThresholdDays)
		}
		if pref.WashSaleWindowDays != model.DefaultWashSaleWindowDays {
			t.Errorf("Expected window %d, got %d", model.DefaultWashSaleWindowDays, pref.WashSaleWindowDays)
		}
		if !pref.EnableWashSaleDetection {
			t.Error("Expected wash-sale detection enabled by default")
		}
		if pref.HarvestThresholdPercent != model.DefaultHarvestThresholdPercent {
			t.Errorf("Expected harvest threshold %v, got %v", model.DefaultHarvestThresholdPercent, pref.HarvestThresholdPercent)
		}
		if pref.MinHarvestAmount != model.DefaultMinHarvestAmount {
			t.Errorf("Expected minimum amount %v, got %v", model.DefaultMinHarvestAmount, pref.MinHarvestAmount)
		}
	})

	t.Run("returns the stored row when present", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPreferenceService(t, db)
		userID := testutil.MakeID()
		testutil.NewPreference(userID).WithWashSaleWindow(61).Build(t, db)

		pref, err := svc.GetPreference(userID)
		if err != nil {
			t.Fatalf("GetPreference() returned unexpected error: %v", err)
		}
		if pref.WashSaleWindowDays != 61 {
			t.Errorf("Expected stored window 61, got %d", pref.WashSaleWindowDays)
		}
	})
}

// TestPreferenceService_UpdatePreference tests partial updates.
//
// WHY: The update endpoint sends only the fields that changed. Absent fields
// must keep their current value instead of being reset.
func TestPreferenceService_UpdatePreference(t *testing.T) {
	t.Run("creates a row from defaults on first update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPreferenceService(t, db)
		userID := testutil.MakeID()

		window := 61
		updated, err := svc.UpdatePreference(context.Background(), userID, request.UpdatePreferenceRequest{
			WashSaleWindowDays: &window,
		})
		if err != nil {
			t.Fatalf("UpdatePreference() returned unexpected error: %v", err)
		}

		if updated.WashSaleWindowDays != 61 {
			t.Errorf("Expected updated window 61, got %d", updated.WashSaleWindowDays)
		}
		// Untouched fields keep the defaults.
		if updated.ShortTermThresholdDays != model.DefaultShortTermThresholdDays {
			t.Errorf("Expected default threshold, got %d", updated.ShortTermThresholdDays)
		}
	})

	t.Run("merges onto the existing row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPreferenceService(t, db)
		userID := testutil.MakeID()
		testutil.NewPreference(userID).WithHarvestThresholds(7.5, 500).Build(t, db)

		enabled := false
		updated, err := svc.UpdatePreference(context.Background(), userID, request.UpdatePreferenceRequest{
			EnableWashSaleDetection: &enabled,
		})
		if err != nil {
			t.Fatalf("UpdatePreference() returned unexpected error: %v", err)
		}

		if updated.EnableWashSaleDetection {
			t.Error("Expected detection to be disabled")
		}
		if updated.HarvestThresholdPercent != 7.5 || updated.MinHarvestAmount != 500 {
			t.Errorf("Expected harvest thresholds to survive, got %v/%v",
				updated.HarvestThresholdPercent, updated.MinHarvestAmount)
		}

		// The merge is persisted.
		stored, err := svc.GetPreference(userID)
		if err != nil {
			t.Fatalf("GetPreference() returned unexpected error: %v", err)
		}
		if stored.EnableWashSaleDetection {
			t.Error("Expected persisted detection flag to be disabled")
		}
	})
}
