package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// CityProfileSource loads city market profiles, typically from the database.
type CityProfileSource interface {
	GetCityProfiles(ctx context.Context) ([]model.CityMarketProfile, error)
}

// ReferenceService keeps the engine's reference tables in sync with the
// city_market_profile table.
type ReferenceService struct {
	source CityProfileSource
	tables *engine.TableStore
	logger *slog.Logger

	mu    sync.Mutex
	hooks []func()
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(source CityProfileSource, tables *engine.TableStore, logger *slog.Logger) *ReferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReferenceService{
		source: source,
		tables: tables,
		logger: logger.With("component", "reference_data"),
	}
}

// Reload reads the city profiles and swaps in a new table. On any failure,
// including an empty result, the current table stays in place.
func (s *ReferenceService) Reload(ctx context.Context) error {
	profiles, err := s.source.GetCityProfiles(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "reference data reload failed, keeping current tables", "error", err)
		return fmt.Errorf("failed to load city profiles: %w", err)
	}

	next, err := engine.NewTables(profiles)
	if err != nil {
		s.logger.ErrorContext(ctx, "reference data rejected, keeping current tables", "rows", len(profiles), "error", err)
		return fmt.Errorf("failed to build reference tables: %w", err)
	}

	previous := s.tables.Swap(next)
	s.logger.InfoContext(ctx, "reference data reloaded", "cities", next.Len(), "previous", previous.Len())

	s.mu.Lock()
	hooks := s.hooks
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}

// OnReload registers fn to run after every successful Reload.
func (s *ReferenceService) OnReload(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Cities returns the supported cities sorted by slug.
func (s *ReferenceService) Cities() []model.CityMarketProfile {
	return s.tables.Load().Cities()
}

// City returns the profile for name, normalizing it first.
func (s *ReferenceService) City(name string) (model.CityMarketProfile, bool) {
	return s.tables.Load().LookupCity(name)
}

// DisplayName is the human-readable name of a city. Unknown cities are
// title-cased from their normalized form.
func (s *ReferenceService) DisplayName(name string) string {
	if p, ok := s.City(name); ok {
		return p.DisplayName
	}
	return engine.DisplayName(engine.NormalizeCity(name))
}

// Fees returns the fee schedule of the current tables.
func (s *ReferenceService) Fees() engine.FeeSchedule {
	return s.tables.Load().Fees()
}
