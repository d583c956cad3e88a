package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/market"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/repository"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
)

// TestReportKey is a fixed Fernet key so tokens are reproducible across services in a test.
const TestReportKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestTableStore returns a store holding the compiled-in default tables.
func NewTestTableStore(t *testing.T) *engine.TableStore {
	t.Helper()
	return engine.NewTableStore(engine.DefaultTables())
}

// NewTestSimulationService creates a SimulationService over the default tables.
// provider may be nil.
func NewTestSimulationService(t *testing.T, provider market.Provider) *service.SimulationService {
	t.Helper()
	return service.NewSimulationService(NewTestTableStore(t), provider, NewTestLogger())
}

// NewTestReferenceService creates a ReferenceService backed by the city repository
// and reloads it once.
func NewTestReferenceService(t *testing.T, db *sql.DB, tables *engine.TableStore) *service.ReferenceService {
	t.Helper()

	ref := service.NewReferenceService(repository.NewCityRepository(db), tables, NewTestLogger())
	if err := ref.Reload(context.Background()); err != nil {
		t.Fatalf("Failed to load reference tables: %v", err)
	}
	return ref
}

// NewTestReportService creates a ReportService using TestReportKey.
func NewTestReportService(t *testing.T, db *sql.DB, ttl time.Duration) *service.ReportService {
	t.Helper()

	tables := NewTestTableStore(t)
	ref := NewTestReferenceService(t, db, tables)
	sim := service.NewSimulationService(tables, market.NewEstimator(tables), NewTestLogger())

	reports, err := service.NewReportService(sim, ref, TestReportKey, ttl, NewTestLogger())
	if err != nil {
		t.Fatalf("Failed to create report service: %v", err)
	}
	return reports
}

// NewTestMarketService creates a MarketService over the default-table estimator.
func NewTestMarketService(t *testing.T) *service.MarketService {
	t.Helper()
	return service.NewMarketService(market.NewEstimator(NewTestTableStore(t)))
}

// NewTestLeadService creates a LeadService publishing to publisher.
func NewTestLeadService(t *testing.T, publisher service.LeadPublisher) *service.LeadService {
	t.Helper()
	return service.NewLeadService(publisher, NewTestLogger())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, NewTestTableStore(t), map[string]bool{"pdf_reports": true})
}
