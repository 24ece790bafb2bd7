package repository_test

import (
	"testing"
	"time"

	"github.com/duyet/finance-hub-sub002/internal/repository"
)

// TestParseTime tests the storage date formats.
//
// WHY: SQLite hands back plain dates for our columns but the
// CURRENT_TIMESTAMP layout for created_at/updated_at. Both must parse, and
// garbage must fail loudly rather than become a zero time.
func TestParseTime(t *testing.T) {
	t.Run("parses a plain date", func(t *testing.T) {
		parsed, err := repository.ParseTime("2024-06-15")
		if err != nil {
			t.Fatalf("ParseTime() returned unexpected error: %v", err)
		}
		if parsed.Year() != 2024 || parsed.Month() != time.June || parsed.Day() != 15 {
			t.Errorf("Expected 2024-06-15, got %v", parsed)
		}
	})

	t.Run("parses RFC3339", func(t *testing.T) {
		parsed, err := repository.ParseTime("2024-06-15T10:30:00Z")
		if err != nil {
			t.Fatalf("ParseTime() returned unexpected error: %v", err)
		}
		if parsed.Hour() != 10 {
			t.Errorf("Expected hour 10, got %d", parsed.Hour())
		}
	})

	t.Run("parses the CURRENT_TIMESTAMP layout", func(t *testing.T) {
		parsed, err := repository.ParseTime("2024-06-15 10:30:00")
		if err != nil {
			t.Fatalf("ParseTime() returned unexpected error: %v", err)
		}
		if parsed.Minute() != 30 {
			t.Errorf("Expected minute 30, got %d", parsed.Minute())
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := repository.ParseTime("June 15th"); err == nil {
			t.Error("Expected an error for an unparseable date")
		}
	})
}

// TestTaxYearBounds tests the calendar-year window.
//
// WHY: The bounds are inclusive on both ends; a December 31 disposition
// belongs to the closing year.
func TestTaxYearBounds(t *testing.T) {
	start, end := repository.TaxYearBounds(2024)

	if !start.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected Jan 1 start, got %v", start)
	}
	if !end.Equal(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected Dec 31 end, got %v", end)
	}
}
