package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Tax lot table
		CREATE TABLE tax_lot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			quantity FLOAT NOT NULL,
			acquisition_date DATE NOT NULL,
			acquisition_price FLOAT NOT NULL,
			cost_basis FLOAT NOT NULL CHECK (cost_basis >= 0),
			disposition_date DATE,
			disposition_price FLOAT,
			proceeds FLOAT,
			gain_loss FLOAT,
			holding_period_days INTEGER,
			is_long_term BOOLEAN,
			is_closed BOOLEAN NOT NULL DEFAULT FALSE,
			is_wash_sale BOOLEAN NOT NULL DEFAULT FALSE,
			wash_sale_replacement_lot_id VARCHAR(36),
			parent_lot_id VARCHAR(36),
			metadata TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX ix_tax_lot_user_symbol ON tax_lot(user_id, symbol);
		CREATE INDEX ix_tax_lot_user_disposition ON tax_lot(user_id, disposition_date);

		-- Capital gains summary table
		CREATE TABLE capital_gains_summary (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			tax_year INTEGER NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			short_term_gain_loss FLOAT NOT NULL,
			long_term_gain_loss FLOAT NOT NULL,
			total_gain_loss FLOAT NOT NULL,
			positions_closed INTEGER NOT NULL,
			calculated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_user_year_symbol UNIQUE (user_id, tax_year, symbol)
		);

		-- Tax event table
		CREATE TABLE tax_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(10) NOT NULL,
			event_type VARCHAR(25) NOT NULL,
			amount FLOAT NOT NULL,
			event_date DATE NOT NULL,
			related_lot_id VARCHAR(36),
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX ix_tax_event_user_date ON tax_event(user_id, event_date);

		-- Tax preference table
		CREATE TABLE tax_preference (
			user_id VARCHAR(36) NOT NULL PRIMARY KEY,
			tax_jurisdiction VARCHAR(10) NOT NULL,
			default_tax_year INTEGER NOT NULL,
			short_term_threshold_days INTEGER NOT NULL,
			enable_wash_sale_detection BOOLEAN NOT NULL,
			wash_sale_window_days INTEGER NOT NULL,
			auto_harvest_losses BOOLEAN NOT NULL,
			harvest_threshold_percent FLOAT NOT NULL,
			min_harvest_amount FLOAT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Symbol price table
		CREATE TABLE symbol_price (
			symbol VARCHAR(10) NOT NULL PRIMARY KEY,
			price FLOAT NOT NULL,
			as_of DATE NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Application settings table
		CREATE TABLE app_setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}
