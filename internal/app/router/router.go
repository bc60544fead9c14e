package router

import (
	"github.com/gin-gonic/gin"

	candleshandler "tradeassist_backend/internal/feature/candles/transport/handler"
	planhandler "tradeassist_backend/internal/feature/plan/transport/handler"
	symbollisthandler "tradeassist_backend/internal/feature/symbollist/transport/handler"
	"tradeassist_backend/internal/platform/http/handler"
)

// NewRouter はダッシュボードAPIのルーティングを構築します。
// planHandler はLLMクライアントが構成できない環境ではnilになり、
// その場合プラン生成のルートは登録されません。
func NewRouter(candles *candleshandler.CandlesHandler, symbol *symbollisthandler.SymbolHandler,
	plan *planhandler.PlanHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// ロウソク足（単一時間足）
	r.GET("/candles/:code", candles.GetCandlesHandler)
	// 3時間足スナップショット
	r.GET("/market/:code", candles.GetMarketSnapshotHandler)
	// 対応銘柄一覧
	r.GET("/symbols", symbol.List)

	// トレードプラン生成（LLMが構成されている場合のみ）
	if plan != nil {
		r.POST("/plan/:code", plan.GeneratePlan)
	}

	return r
}
