package market

import (
	"sync"
	"time"
)

// Cache is a mutex-guarded map with per-entry TTLs. Expired entries are
// invisible to Get but are only removed by Sweep, which a scheduler calls.
// When full, Set evicts the entry closest to expiry.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry[V]
	maxEntries int
	now        func() time.Time
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewCache creates a cache bounded to maxEntries (unbounded when <= 0).
func NewCache[V any](maxEntries int) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]cacheEntry[V]),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the value stored under key if it has not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl is ignored.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cacheEntry[V]{value: value, expiresAt: now.Add(ttl)}
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Sweep removes every entry expired at now and returns how many were removed.
func (c *Cache[V]) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear removes every entry and returns how many were removed.
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	clear(c.entries)
	return n
}

// Len is the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked drops expired entries, or failing that the one closest to expiry.
func (c *Cache[V]) evictLocked(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = key, e.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}
