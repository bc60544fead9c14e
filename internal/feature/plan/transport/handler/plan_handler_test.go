package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeassist_backend/internal/feature/plan/domain/entity"
	"tradeassist_backend/internal/feature/plan/transport/handler"
)

// mockPlanUsecase はPlanUsecaseインターフェースのモック実装です。
type mockPlanUsecase struct {
	GeneratePlanFunc func(ctx context.Context, code string) (*entity.TradePlan, error)
}

func (m *mockPlanUsecase) GeneratePlan(ctx context.Context, code string) (*entity.TradePlan, error) {
	return m.GeneratePlanFunc(ctx, code)
}

func setupPlanRouter(uc handler.PlanUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewPlanHandler(uc)
	r := gin.New()
	r.POST("/plan/:code", h.GeneratePlan)
	return r
}

// TestGeneratePlan_Success は生成されたプランがJSONで返ることを検証します。
func TestGeneratePlan_Success(t *testing.T) {
	t.Parallel()

	uc := &mockPlanUsecase{
		GeneratePlanFunc: func(ctx context.Context, code string) (*entity.TradePlan, error) {
			return &entity.TradePlan{Code: code, Summary: "押し目買い", DataOK: true}, nil
		},
	}
	r := setupPlanRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plan/EURUSD", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code": "EURUSD", "summary": "押し目買い", "data_ok": true}`, w.Body.String())
}

// TestGeneratePlan_InsufficientData はデータ不足が200で返ることを検証します。
func TestGeneratePlan_InsufficientData(t *testing.T) {
	t.Parallel()

	uc := &mockPlanUsecase{
		GeneratePlanFunc: func(ctx context.Context, code string) (*entity.TradePlan, error) {
			return &entity.TradePlan{Code: code, Summary: "データ不足", DataOK: false}, nil
		},
	}
	r := setupPlanRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plan/UNKNOWN", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code": "UNKNOWN", "summary": "データ不足", "data_ok": false}`, w.Body.String())
}

// TestGeneratePlan_UsecaseError はLLM側の失敗が502になることを検証します。
func TestGeneratePlan_UsecaseError(t *testing.T) {
	t.Parallel()

	uc := &mockPlanUsecase{
		GeneratePlanFunc: func(ctx context.Context, code string) (*entity.TradePlan, error) {
			return nil, errors.New("llm unavailable")
		},
	}
	r := setupPlanRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plan/EURUSD", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
