package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/candles/usecase"
)

// RedisCandleCache stores candle series in Redis as JSON with a fixed TTL.
// All Redis failures are treated as cache misses; the acquisition layer has
// no durability requirement, so a miss simply triggers a refetch.
type RedisCandleCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CandleCache = (*RedisCandleCache)(nil)

// redisCandle is the cache wire shape. Time is epoch seconds so entries stay
// readable and stable across process restarts.
type redisCandle struct {
	Symbol    string  `json:"symbol"`
	Timeframe string  `json:"timeframe"`
	Time      int64   `json:"time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// NewRedisCandleCache creates a Redis-backed candle cache.
// If ttl is 0 or negative, it defaults to 45 seconds. If namespace is empty,
// it uses "candles".
func NewRedisCandleCache(rdb *redis.Client, ttl time.Duration, namespace string) *RedisCandleCache {
	if ttl <= 0 {
		ttl = 45 * time.Second
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &RedisCandleCache{rdb: rdb, ttl: ttl, namespace: namespace}
}

// Get returns the cached series for key. Corrupted entries are deleted and
// reported as misses.
func (c *RedisCandleCache) Get(ctx context.Context, key string) ([]entity.Candle, bool) {
	b, err := c.rdb.Get(ctx, c.fullKey(key)).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}
	var rows []redisCandle
	if err := json.Unmarshal(b, &rows); err != nil {
		_ = c.rdb.Del(ctx, c.fullKey(key)).Err()
		return nil, false
	}
	out := make([]entity.Candle, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.Candle{
			Symbol:    r.Symbol,
			Timeframe: r.Timeframe,
			Time:      time.Unix(r.Time, 0).UTC(),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}
	return out, true
}

// Set stores a series under key with the fixed TTL (best effort).
func (c *RedisCandleCache) Set(ctx context.Context, key string, candles []entity.Candle) {
	if len(candles) == 0 {
		return
	}
	rows := make([]redisCandle, 0, len(candles))
	for _, cd := range candles {
		rows = append(rows, redisCandle{
			Symbol:    cd.Symbol,
			Timeframe: cd.Timeframe,
			Time:      cd.Time.Unix(),
			Open:      cd.Open,
			High:      cd.High,
			Low:       cd.Low,
			Close:     cd.Close,
			Volume:    cd.Volume,
		})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.fullKey(key), b, c.ttl).Err(); err != nil {
		slog.Warn("candle cache set failed", "key", key, "error", err)
	}
}

// Clear removes all entries in this cache's namespace using SCAN.
func (c *RedisCandleCache) Clear(ctx context.Context) {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, c.namespace+":*", 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.rdb.Del(ctx, keys...).Err()
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}

// fullKey prefixes the namespace and escapes characters that are problematic
// for Redis keys.
func (c *RedisCandleCache) fullKey(key string) string {
	key = strings.ReplaceAll(key, " ", "_")
	return c.namespace + ":" + key
}
