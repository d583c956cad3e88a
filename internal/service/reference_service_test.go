package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/market"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/service"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/testutil"
)

type failingSource struct{ err error }

func (s failingSource) GetCityProfiles(context.Context) ([]model.CityMarketProfile, error) {
	return nil, s.err
}

func TestReferenceService_Reload(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the seeded cities", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ref := testutil.NewTestReferenceService(t, db, testutil.NewTestTableStore(t))

		if got := len(ref.Cities()); got != 33 {
			t.Errorf("Expected 33 cities, got %d", got)
		}
	})

	t.Run("picks up new rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tables := testutil.NewTestTableStore(t)
		ref := testutil.NewTestReferenceService(t, db, tables)

		testutil.InsertCity(t, db, model.CityMarketProfile{Slug: "annecy", DisplayName: "Annecy", RentPerSquareMeter: 17.5, MarketMultiplier: 1.3})
		if err := ref.Reload(ctx); err != nil {
			t.Fatalf("Reload() returned unexpected error: %v", err)
		}

		p, ok := ref.City("Annecy")
		if !ok {
			t.Fatal("Expected Annecy to be known after reload")
		}
		if p.RentPerSquareMeter != 17.5 {
			t.Errorf("Expected rent 17.5, got %v", p.RentPerSquareMeter)
		}
		if tables.Load().Len() != 34 {
			t.Errorf("Expected 34 cities in the store, got %d", tables.Load().Len())
		}
	})

	t.Run("empty table keeps the current tables", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tables := testutil.NewTestTableStore(t)
		ref := testutil.NewTestReferenceService(t, db, tables)
		before := tables.Load()

		testutil.CleanDatabase(t, db)
		err := ref.Reload(ctx)
		if !errors.Is(err, apperrors.ErrReferenceDataEmpty) {
			t.Errorf("Expected ErrReferenceDataEmpty, got %v", err)
		}
		if tables.Load() != before {
			t.Error("Expected tables to be unchanged")
		}
	})

	t.Run("source failure keeps the current tables", func(t *testing.T) {
		tables := testutil.NewTestTableStore(t)
		before := tables.Load()
		ref := service.NewReferenceService(failingSource{err: errors.New("database is locked")}, tables, testutil.NewTestLogger())

		if err := ref.Reload(ctx); err == nil {
			t.Error("Expected error from failing source")
		}
		if tables.Load() != before {
			t.Error("Expected tables to be unchanged")
		}
	})
}

func TestReferenceService_OnReload(t *testing.T) {
	ctx := context.Background()

	t.Run("runs hooks after a successful reload", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ref := testutil.NewTestReferenceService(t, db, testutil.NewTestTableStore(t))

		calls := 0
		ref.OnReload(func() { calls++ })
		if err := ref.Reload(ctx); err != nil {
			t.Fatalf("Reload() returned unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("Expected hook to run once, ran %d times", calls)
		}
	})

	t.Run("skips hooks when the reload fails", func(t *testing.T) {
		ref := service.NewReferenceService(failingSource{err: errors.New("database is locked")}, testutil.NewTestTableStore(t), testutil.NewTestLogger())

		calls := 0
		ref.OnReload(func() { calls++ })
		_ = ref.Reload(ctx)
		if calls != 0 {
			t.Errorf("Expected no hook call, got %d", calls)
		}
	})

	t.Run("stale market estimates are purged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		tables := testutil.NewTestTableStore(t)
		ref := testutil.NewTestReferenceService(t, db, tables)
		provider := market.NewCachedProvider(market.NewEstimator(tables), market.CacheOptions{RentTTL: time.Hour, MaxEntries: 10}, testutil.NewTestLogger())
		ref.OnReload(func() { provider.Purge() })

		q := model.MarketQuery{City: "lyon", UnitType: model.UnitT2, Surface: 50}
		before, err := provider.RentData(ctx, q)
		if err != nil {
			t.Fatalf("RentData() returned unexpected error: %v", err)
		}

		lyon, _ := ref.City("lyon")
		lyon.RentPerSquareMeter *= 2
		testutil.InsertCity(t, db, lyon)
		if err := ref.Reload(ctx); err != nil {
			t.Fatalf("Reload() returned unexpected error: %v", err)
		}

		after, err := provider.RentData(ctx, q)
		if err != nil {
			t.Fatalf("RentData() returned unexpected error: %v", err)
		}
		if after.Data == before.Data {
			t.Errorf("Expected a fresh estimate after reload, still got %+v", after.Data)
		}
	})
}

func TestReferenceService_DisplayName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ref := testutil.NewTestReferenceService(t, db, testutil.NewTestTableStore(t))

	tests := map[string]string{
		"saint etienne": "Saint-Étienne",
		"PARIS":         "Paris",
		"Saint Malo":    "Saint-Malo",
	}
	for in, want := range tests {
		if got := ref.DisplayName(in); got != want {
			t.Errorf("DisplayName(%q): expected %q, got %q", in, want, got)
		}
	}

	if got := ref.DisplayName("Trifouilly"); got == "Paris" {
		t.Errorf("Expected unknown city to keep its own name, got %q", got)
	}
}
