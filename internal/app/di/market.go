// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"tradeassist_backend/internal/feature/candles/adapters/alphavantage"
	"tradeassist_backend/internal/feature/candles/adapters/finnhub"
	"tradeassist_backend/internal/feature/candles/adapters/twelvedata"
	"tradeassist_backend/internal/feature/candles/usecase"
	infrahttp "tradeassist_backend/internal/platform/http"
	"tradeassist_backend/internal/shared/ratelimiter"
)

// NewCandlesUsecase assembles the full acquisition chain: the broad-coverage
// vendor first, then the forex-only fallbacks in priority order.
func NewCandlesUsecase(cache usecase.CandleCache) *usecase.CandlesUsecase {
	tdCfg := twelvedata.LoadConfig()
	fhCfg := finnhub.LoadConfig()
	avCfg := alphavantage.LoadConfig()

	primary := twelvedata.NewSource(tdCfg, infrahttp.NewHTTPClient(tdCfg.Timeout))
	fx := []usecase.MarketSource{
		finnhub.NewSource(fhCfg, infrahttp.NewHTTPClient(fhCfg.Timeout)),
		alphavantage.NewSource(avCfg, infrahttp.NewHTTPClient(avCfg.Timeout),
			// Alpha Vantage free tier: 5 requests per minute
			ratelimiter.NewRateLimiter(5, time.Minute)),
	}

	return usecase.NewCandlesUsecase(primary, fx, cache, usecase.DefaultConfig())
}
