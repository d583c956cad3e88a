package market

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

func parisQuery() model.MarketQuery {
	return model.MarketQuery{City: "paris", UnitType: model.UnitT2, Surface: 50}
}

func TestEstimator_RentData(t *testing.T) {
	est := NewEstimator(engine.NewTableStore(nil))

	t.Run("scales city rent by unit coefficient", func(t *testing.T) {
		got, err := est.RentData(context.Background(), model.MarketQuery{City: "Paris", UnitType: model.UnitStudio, Surface: 20})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Data.RentPerSquareMeter != 48.65 {
			t.Errorf("Expected 48.65 per m², got %v", got.Data.RentPerSquareMeter)
		}
		if got.Data.TotalMonthlyRent != 973 {
			t.Errorf("Expected total 973, got %v", got.Data.TotalMonthlyRent)
		}
		if got.City != "paris" || got.DataSource != SourceEstimate {
			t.Errorf("Unexpected metadata: %+v", got)
		}
	})

	t.Run("unknown city estimates like paris", func(t *testing.T) {
		q := parisQuery()
		q.City = "atlantis"
		got, err := est.RentData(context.Background(), q)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Data.TotalMonthlyRent != 1750 {
			t.Errorf("Expected 1750, got %v", got.Data.TotalMonthlyRent)
		}
	})

	t.Run("rejects empty city and non-positive surface", func(t *testing.T) {
		for _, q := range []model.MarketQuery{
			{City: " ", UnitType: model.UnitT2, Surface: 50},
			{City: "paris", UnitType: model.UnitT2, Surface: 0},
		} {
			if _, err := est.RentData(context.Background(), q); !errors.Is(err, apperrors.ErrInvalidMarketQuery) {
				t.Errorf("%+v: expected ErrInvalidMarketQuery, got %v", q, err)
			}
		}
	})
}

func TestEstimator_ShortTermData(t *testing.T) {
	est := NewEstimator(engine.NewTableStore(nil))

	got, err := est.ShortTermData(context.Background(), parisQuery())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("nightly rate and monthly revenue", func(t *testing.T) {
		if got.Data.NightlyRate != 210 {
			t.Errorf("Expected nightly 210, got %v", got.Data.NightlyRate)
		}
		if got.Data.MonthlyRevenue != 4410 {
			t.Errorf("Expected monthly 4410, got %v", got.Data.MonthlyRevenue)
		}
		if got.Data.OccupancyRate != 70 {
			t.Errorf("Expected occupancy 70, got %v", got.Data.OccupancyRate)
		}
		if got.Multiplier != 3.6 {
			t.Errorf("Expected multiplier 3.6, got %v", got.Multiplier)
		}
	})

	t.Run("platform fees are annualized", func(t *testing.T) {
		if got.Data.Fees == nil {
			t.Fatal("Expected fees")
		}
		if got.Data.Fees.Cleaning != 100 {
			t.Errorf("Expected cleaning 100, got %v", got.Data.Fees.Cleaning)
		}
		if got.Data.Fees.Total != 6600 {
			t.Errorf("Expected annual total 6600, got %v", got.Data.Fees.Total)
		}
		if got.Data.NetMonthlyRevenue != 3860 {
			t.Errorf("Expected net 3860, got %v", got.Data.NetMonthlyRevenue)
		}
	})

	t.Run("twelve seasonal months", func(t *testing.T) {
		if len(got.Data.SeasonalRevenues) != 12 {
			t.Fatalf("Expected 12 months, got %d", len(got.Data.SeasonalRevenues))
		}
		jan, jul := got.Data.SeasonalRevenues[0], got.Data.SeasonalRevenues[6]
		if jan.Month != 1 || jan.Revenue != 3087 || jan.Occupancy != 49 {
			t.Errorf("Unexpected January: %+v", jan)
		}
		if jul.Month != 7 || jul.Revenue != 6615 || jul.Occupancy != 100 {
			t.Errorf("Unexpected July: %+v", jul)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		again, err := est.ShortTermData(context.Background(), parisQuery())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if again.Data.MonthlyRevenue != got.Data.MonthlyRevenue || again.Data.Fees.Total != got.Data.Fees.Total {
			t.Errorf("Expected identical estimates, got %+v and %+v", got.Data, again.Data)
		}
	})
}

func TestCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("entries expire after ttl", func(t *testing.T) {
		c := NewCache[int](10).WithClock(clock)
		c.Set("a", 1, time.Minute)

		if v, ok := c.Get("a"); !ok || v != 1 {
			t.Fatalf("Expected hit with 1, got %v %v", v, ok)
		}

		now = now.Add(time.Minute)
		if _, ok := c.Get("a"); ok {
			t.Error("Expected miss after ttl")
		}
		if c.Len() != 1 {
			t.Errorf("Expected expired entry to remain until sweep, got len %d", c.Len())
		}
	})

	t.Run("sweep removes only expired entries", func(t *testing.T) {
		c := NewCache[int](10).WithClock(clock)
		c.Set("short", 1, time.Second)
		c.Set("long", 2, time.Hour)

		if removed := c.Sweep(now.Add(time.Minute)); removed != 1 {
			t.Errorf("Expected 1 removed, got %d", removed)
		}
		if _, ok := c.Get("long"); !ok {
			t.Error("Expected long entry to survive")
		}
	})

	t.Run("full cache evicts the entry closest to expiry", func(t *testing.T) {
		c := NewCache[int](2).WithClock(clock)
		c.Set("a", 1, time.Minute)
		c.Set("b", 2, time.Hour)
		c.Set("c", 3, time.Hour)

		if c.Len() != 2 {
			t.Errorf("Expected 2 entries, got %d", c.Len())
		}
		if _, ok := c.Get("a"); ok {
			t.Error("Expected a to be evicted")
		}
	})

	t.Run("non-positive ttl is ignored", func(t *testing.T) {
		c := NewCache[int](2)
		c.Set("a", 1, 0)
		if c.Len() != 0 {
			t.Errorf("Expected empty cache, got %d", c.Len())
		}
	})
}

type countingProvider struct {
	rentCalls  atomic.Int32
	shortCalls atomic.Int32
	err        error
	gate       chan struct{}
}

func (p *countingProvider) RentData(_ context.Context, q model.MarketQuery) (model.RentEstimate, error) {
	p.rentCalls.Add(1)
	if p.gate != nil {
		<-p.gate
	}
	if p.err != nil {
		return model.RentEstimate{}, p.err
	}
	return model.RentEstimate{City: q.City, Data: model.LongTermMarketData{TotalMonthlyRent: 1500}}, nil
}

func (p *countingProvider) ShortTermData(_ context.Context, q model.MarketQuery) (model.ShortTermEstimate, error) {
	p.shortCalls.Add(1)
	if p.err != nil {
		return model.ShortTermEstimate{}, p.err
	}
	return model.ShortTermEstimate{City: q.City, Data: model.ShortTermMarketData{MonthlyRevenue: 3000}}, nil
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("second call is served from cache", func(t *testing.T) {
		upstream := &countingProvider{}
		p := NewCachedProvider(upstream, CacheOptions{RentTTL: time.Minute, ShortTermTTL: time.Minute, MaxEntries: 10}, nil)

		for i := 0; i < 3; i++ {
			if _, err := p.RentData(ctx, parisQuery()); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if _, err := p.ShortTermData(ctx, parisQuery()); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		}
		if upstream.rentCalls.Load() != 1 || upstream.shortCalls.Load() != 1 {
			t.Errorf("Expected one upstream call each, got rent=%d short=%d", upstream.rentCalls.Load(), upstream.shortCalls.Load())
		}
	})

	t.Run("equivalent spellings share an entry", func(t *testing.T) {
		upstream := &countingProvider{}
		p := NewCachedProvider(upstream, CacheOptions{RentTTL: time.Minute, MaxEntries: 10}, nil)

		_, _ = p.RentData(ctx, model.MarketQuery{City: "Saint Étienne", UnitType: "T2", Surface: 40})
		_, _ = p.RentData(ctx, model.MarketQuery{City: "saint-etienne", UnitType: "t2", Surface: 40})
		if upstream.rentCalls.Load() != 1 {
			t.Errorf("Expected one upstream call, got %d", upstream.rentCalls.Load())
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		upstream := &countingProvider{err: apperrors.ErrMarketDataUnavailable}
		p := NewCachedProvider(upstream, CacheOptions{RentTTL: time.Minute, MaxEntries: 10}, nil)

		for i := 0; i < 2; i++ {
			if _, err := p.RentData(ctx, parisQuery()); !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
				t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
			}
		}
		if upstream.rentCalls.Load() != 2 {
			t.Errorf("Expected two upstream calls, got %d", upstream.rentCalls.Load())
		}
	})

	t.Run("concurrent misses collapse into one call", func(t *testing.T) {
		upstream := &countingProvider{gate: make(chan struct{})}
		p := NewCachedProvider(upstream, CacheOptions{RentTTL: time.Minute, MaxEntries: 10}, nil)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := p.RentData(ctx, parisQuery()); err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}()
		}
		// let the goroutines join the in-flight call before releasing it
		time.Sleep(50 * time.Millisecond)
		close(upstream.gate)
		wg.Wait()

		if calls := upstream.rentCalls.Load(); calls != 1 {
			t.Errorf("Expected 1 upstream call, got %d", calls)
		}
	})

	t.Run("sweep evicts expired estimates", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		upstream := &countingProvider{}
		p := NewCachedProvider(upstream, CacheOptions{
			RentTTL: 10 * time.Minute, ShortTermTTL: 15 * time.Minute, MaxEntries: 10,
			Clock: func() time.Time { return now },
		}, nil)

		_, _ = p.RentData(ctx, parisQuery())
		_, _ = p.ShortTermData(ctx, parisQuery())

		if removed := p.Sweep(now.Add(12 * time.Minute)); removed != 1 {
			t.Errorf("Expected rent entry swept, removed %d", removed)
		}
		if p.Len() != 1 {
			t.Errorf("Expected short-term entry to remain, got %d", p.Len())
		}
	})

	t.Run("purge drops fresh estimates", func(t *testing.T) {
		upstream := &countingProvider{}
		p := NewCachedProvider(upstream, CacheOptions{RentTTL: time.Hour, ShortTermTTL: time.Hour, MaxEntries: 10}, nil)

		_, _ = p.RentData(ctx, parisQuery())
		_, _ = p.ShortTermData(ctx, parisQuery())

		if removed := p.Purge(); removed != 2 {
			t.Errorf("Expected 2 entries purged, got %d", removed)
		}
		_, _ = p.RentData(ctx, parisQuery())
		if upstream.rentCalls.Load() != 2 {
			t.Errorf("Expected a fresh upstream call after purge, got %d calls", upstream.rentCalls.Load())
		}
	})
}
