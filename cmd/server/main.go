package main

import (
	"context"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"tradeassist_backend/internal/app/di"
	"tradeassist_backend/internal/app/router"
	candleshandler "tradeassist_backend/internal/feature/candles/transport/handler"
	"tradeassist_backend/internal/feature/plan/adapters/gemini"
	planhandler "tradeassist_backend/internal/feature/plan/transport/handler"
	planusecase "tradeassist_backend/internal/feature/plan/usecase"
	symbollistadapters "tradeassist_backend/internal/feature/symbollist/adapters"
	symbollisthandler "tradeassist_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "tradeassist_backend/internal/feature/symbollist/usecase"
	platformredis "tradeassist_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// Redis（キャッシュ用、任意）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to in-process cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 取得レイヤー（キャッシュ→ベンダーチェーン→合成導出）
	cache := di.NewCandleCache(rdb)
	candlesUC := di.NewCandlesUsecase(cache)

	// 銘柄一覧
	symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository())

	// Handler
	candlesH := candleshandler.NewCandlesHandler(candlesUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)

	// プラン生成はLLMクライアントを構成できた場合のみ有効化
	var planH *planhandler.PlanHandler
	if analyzer, err := gemini.NewGeminiAnalyzer(ctx); err != nil {
		log.Println("[WARN] Gemini unavailable. Running without plan generation:", err)
	} else {
		planH = planhandler.NewPlanHandler(planusecase.NewPlanUsecase(candlesUC, analyzer))
	}

	// ルータ生成
	router := router.NewRouter(candlesH, symbolH, planH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
