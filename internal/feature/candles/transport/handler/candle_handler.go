// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/candles/transport/http/dto"
)

// CandlesUsecase はロウソク足取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
// GetCandles はエラーを返しません。失敗は空の系列として表現されます。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, code, tf string, count int) []entity.Candle
}

// CandlesHandler はロウソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄コードと時間足を受け取り、ロウソク足をJSONで返します。
// ユースケースが失敗を空の系列として吸収するため、常に200を返します。
//
// エンドポイント例:
// GET /candles/:code?timeframe=fine&count=200
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	code := c.Param("code")
	// 未指定の場合はデフォルト値を使用
	tf := c.DefaultQuery("timeframe", "medium")
	countStr := c.DefaultQuery("count", "200")
	// 文字列を整数に変換（失敗時は0となりusecase側でデフォルトが適用される）
	count, _ := strconv.Atoi(countStr)

	candles := h.uc.GetCandles(c.Request.Context(), code, tf, count)

	c.JSON(http.StatusOK, toResponse(candles))
}

// GetMarketSnapshotHandler は1銘柄の3時間足（fine/medium/coarse）を並行取得して返します。
// ダッシュボードのチャート初期表示が典型的な呼び出し元です。各時間足は独立に
// 成否が決まるため、一部またはすべてが空配列のことがあります。
//
// エンドポイント例:
// GET /market/:code?count=200
func (h *CandlesHandler) GetMarketSnapshotHandler(c *gin.Context) {
	code := c.Param("code")
	countStr := c.DefaultQuery("count", "200")
	count, _ := strconv.Atoi(countStr)

	var fine, medium, coarse []entity.Candle
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error { fine = h.uc.GetCandles(ctx, code, "fine", count); return nil })
	g.Go(func() error { medium = h.uc.GetCandles(ctx, code, "medium", count); return nil })
	g.Go(func() error { coarse = h.uc.GetCandles(ctx, code, "coarse", count); return nil })
	_ = g.Wait() // 各取得はエラーを返さない

	c.JSON(http.StatusOK, dto.MarketSnapshotResponse{
		Code:   code,
		Fine:   toResponse(fine),
		Medium: toResponse(medium),
		Coarse: toResponse(coarse),
	})
}

// toResponse はドメインエンティティをレスポンスDTOへ変換します。
func toResponse(candles []entity.Candle) []dto.CandleResponse {
	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			Time:   x.Time.Unix(),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	return out
}
