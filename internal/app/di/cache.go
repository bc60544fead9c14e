package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"tradeassist_backend/internal/feature/candles/usecase"
	platformcache "tradeassist_backend/internal/platform/cache"
)

// candleCacheTTL is deliberately short: the cache only absorbs bursts of
// repeated requests (e.g., three timeframes fetched together per instrument).
const candleCacheTTL = 45 * time.Second

// NewCandleCache creates a CandleCache implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the in-process store.
func NewCandleCache(rdb *redis.Client) usecase.CandleCache {
	if rdb != nil {
		return platformcache.NewRedisCandleCache(rdb, candleCacheTTL, "candles")
	}
	return platformcache.NewMemoryCandleCache(candleCacheTTL)
}
