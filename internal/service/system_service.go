package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/database"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	tables   *engine.TableStore
	features map[string]bool
}

// VersionInfo describes the running application and its schema state.
type VersionInfo struct {
	AppVersion       string
	DbVersion        string
	Features         map[string]bool
	MigrationNeeded  bool
	MigrationMessage *string
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, tables *engine.TableStore, features map[string]bool) *SystemService {
	if features == nil {
		features = map[string]bool{}
	}
	return &SystemService{
		db:       db,
		tables:   tables,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// CityCount is the number of cities in the current reference tables.
func (s *SystemService) CityCount() int {
	return s.tables.Load().Len()
}

// CheckVersion reports the application version, the applied schema version
// and whether embedded migrations are pending.
func (s *SystemService) CheckVersion(ctx context.Context) (*VersionInfo, error) {
	current, latest, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToGetVersionInfo, err)
	}

	features := make(map[string]bool, len(s.features))
	for k, v := range s.features {
		features[k] = v
	}

	info := &VersionInfo{
		AppVersion: version.Version,
		DbVersion:  strconv.FormatInt(current, 10),
		Features:   features,
	}
	if current < latest {
		msg := fmt.Sprintf("database schema is at version %d, latest is %d", current, latest)
		info.MigrationNeeded = true
		info.MigrationMessage = &msg
	}
	return info, nil
}
