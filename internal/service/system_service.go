package service

import (
	"database/sql"

	"github.com/duyet/finance-hub-sub002/internal/database"
	"github.com/duyet/finance-hub-sub002/internal/model"
)

// AppVersion is the application version, overridable at build time via
// -ldflags "-X ...service.AppVersion=v1.2.3".
var AppVersion = "dev"

// SystemService handles health and version reporting.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: AppVersion,
		DbVersion:  dbVersion,
	}, nil
}
