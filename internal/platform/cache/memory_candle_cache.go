// Package cache provides short-TTL stores for fetched candle series.
package cache

import (
	"context"
	"sync"
	"time"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/candles/usecase"
)

// MemoryCandleCache is an in-process keyed store with a fixed TTL.
// Expiry is checked on read; there is no background eviction goroutine.
// The map is guarded by an RWMutex because callers commonly request several
// timeframes for one instrument concurrently.
type MemoryCandleCache struct {
	mu  sync.RWMutex
	m   map[string]memoryEntry
	ttl time.Duration
}

type memoryEntry struct {
	candles []entity.Candle
	exp     time.Time
}

var _ usecase.CandleCache = (*MemoryCandleCache)(nil)

// NewMemoryCandleCache creates an in-memory candle cache.
// If ttl is 0 or negative, it defaults to 45 seconds.
func NewMemoryCandleCache(ttl time.Duration) *MemoryCandleCache {
	if ttl <= 0 {
		ttl = 45 * time.Second
	}
	return &MemoryCandleCache{m: make(map[string]memoryEntry), ttl: ttl}
}

// Get returns the cached series for key, dropping the entry if it has expired.
// The returned slice is shared with the store; callers must not mutate it.
func (c *MemoryCandleCache) Get(_ context.Context, key string) ([]entity.Candle, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.candles, true
}

// Set stores a series under key with the fixed TTL. Empty series are not stored.
func (c *MemoryCandleCache) Set(_ context.Context, key string, candles []entity.Candle) {
	if len(candles) == 0 {
		return
	}
	c.mu.Lock()
	c.m[key] = memoryEntry{candles: candles, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear removes all entries. Intended for tests and process shutdown.
func (c *MemoryCandleCache) Clear(_ context.Context) {
	c.mu.Lock()
	c.m = make(map[string]memoryEntry)
	c.mu.Unlock()
}
