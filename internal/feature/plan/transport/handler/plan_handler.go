// Package handler はplanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	candledto "tradeassist_backend/internal/feature/candles/transport/http/dto"
	"tradeassist_backend/internal/feature/plan/domain/entity"
)

// PlanUsecase はトレードプラン生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PlanUsecase interface {
	GeneratePlan(ctx context.Context, code string) (*entity.TradePlan, error)
}

// PlanResponse はトレードプランのレスポンスDTOです。
type PlanResponse struct {
	Code    string `json:"code"`
	Summary string `json:"summary"`
	DataOK  bool   `json:"data_ok"`
}

// PlanHandler はトレードプラン生成のHTTPリクエストを処理します。
type PlanHandler struct {
	uc PlanUsecase
}

// NewPlanHandler はPlanHandlerの新しいインスタンスを生成します。
func NewPlanHandler(uc PlanUsecase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// GeneratePlan は銘柄のトレードプランを生成します。
// データ不足は200で定型文を返し、LLM側の失敗のみ502を返します。
//
// エンドポイント: POST /plan/:code
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	code := c.Param("code")

	plan, err := h.uc.GeneratePlan(c.Request.Context(), code)
	if err != nil {
		slog.Error("plan generation failed", "code", code, "error", err)
		c.JSON(http.StatusBadGateway, candledto.ErrorResponse{Error: "プラン生成に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, PlanResponse{
		Code:    plan.Code,
		Summary: plan.Summary,
		DataOK:  plan.DataOK,
	})
}
