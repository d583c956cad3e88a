package market

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

// CachedProvider decorates a Provider with a TTL cache. Concurrent misses for
// the same key share one upstream call. Errors are never cached.
type CachedProvider struct {
	next      Provider
	rent      *Cache[model.RentEstimate]
	shortTerm *Cache[model.ShortTermEstimate]
	rentTTL   time.Duration
	shortTTL  time.Duration
	group     singleflight.Group
	logger    *slog.Logger
}

// CacheOptions configures CachedProvider.
type CacheOptions struct {
	RentTTL      time.Duration
	ShortTermTTL time.Duration
	MaxEntries   int
	Clock        func() time.Time
}

// NewCachedProvider wraps next.
func NewCachedProvider(next Provider, opts CacheOptions, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &CachedProvider{
		next:      next,
		rent:      NewCache[model.RentEstimate](opts.MaxEntries),
		shortTerm: NewCache[model.ShortTermEstimate](opts.MaxEntries),
		rentTTL:   opts.RentTTL,
		shortTTL:  opts.ShortTermTTL,
		logger:    logger.With("component", "market_cache"),
	}
	if opts.Clock != nil {
		p.rent.WithClock(opts.Clock)
		p.shortTerm.WithClock(opts.Clock)
	}
	return p
}

// RentData returns a cached rent estimate or fetches one.
func (p *CachedProvider) RentData(ctx context.Context, q model.MarketQuery) (model.RentEstimate, error) {
	key := CacheKey("rent", q)
	if v, ok := p.rent.Get(key); ok {
		return v, nil
	}

	v, err, shared := p.group.Do(key, func() (interface{}, error) {
		est, err := p.next.RentData(ctx, q)
		if err != nil {
			return nil, err
		}
		p.rent.Set(key, est, p.rentTTL)
		return est, nil
	})
	if err != nil {
		return model.RentEstimate{}, err
	}
	p.logger.Debug("rent estimate fetched", "key", key, "shared", shared)
	return v.(model.RentEstimate), nil
}

// ShortTermData returns a cached short-term estimate or fetches one.
func (p *CachedProvider) ShortTermData(ctx context.Context, q model.MarketQuery) (model.ShortTermEstimate, error) {
	key := CacheKey("short", q)
	if v, ok := p.shortTerm.Get(key); ok {
		return v, nil
	}

	v, err, shared := p.group.Do(key, func() (interface{}, error) {
		est, err := p.next.ShortTermData(ctx, q)
		if err != nil {
			return nil, err
		}
		p.shortTerm.Set(key, est, p.shortTTL)
		return est, nil
	})
	if err != nil {
		return model.ShortTermEstimate{}, err
	}
	p.logger.Debug("short-term estimate fetched", "key", key, "shared", shared)
	return v.(model.ShortTermEstimate), nil
}

// Sweep evicts expired entries from both caches.
func (p *CachedProvider) Sweep(now time.Time) int {
	removed := p.rent.Sweep(now) + p.shortTerm.Sweep(now)
	if removed > 0 {
		p.logger.Debug("market cache swept", "removed", removed)
	}
	return removed
}

// Purge drops every cached estimate. Estimates derive from the reference
// tables, so they are stale once the tables are swapped.
func (p *CachedProvider) Purge() int {
	removed := p.rent.Clear() + p.shortTerm.Clear()
	p.logger.Info("market cache purged", "removed", removed)
	return removed
}

// Len is the total number of cached entries.
func (p *CachedProvider) Len() int {
	return p.rent.Len() + p.shortTerm.Len()
}
