// Package usecase はplanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	candleentity "tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/plan/domain/entity"
)

const (
	// snapshotBars はプロンプトに含める1時間足あたりのバー数です。
	snapshotBars = 30
	// InsufficientDataSummary は実データが1本も得られなかったときの定型文です。
	InsufficientDataSummary = "この銘柄・時間足では十分なデータが取得できませんでした。プランは生成されません。"
)

// CandleProvider はロウソク足取得レイヤーの契約です。エラーを返さず、
// 失敗は空の系列として表現されます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleProvider interface {
	GetCandles(ctx context.Context, code, tf string, count int) []candleentity.Candle
}

// PlanAnalyzer はプロンプトからプラン本文を生成するLLMクライアントの契約です。
type PlanAnalyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// planUsecase は3時間足のスナップショットからトレードプランを生成します。
type planUsecase struct {
	candles  CandleProvider
	analyzer PlanAnalyzer
}

// NewPlanUsecase はplanUsecaseの新しいインスタンスを生成します。
func NewPlanUsecase(candles CandleProvider, analyzer PlanAnalyzer) *planUsecase {
	return &planUsecase{candles: candles, analyzer: analyzer}
}

// GeneratePlan は銘柄のトレードプランを生成します。
// 3時間足のうち取得できたものだけをプロンプトに含め、1つも取得できなかった
// 場合はLLMを呼ばずに「データ不足」プランを返します（段階的劣化）。
func (u *planUsecase) GeneratePlan(ctx context.Context, code string) (*entity.TradePlan, error) {
	var sections []string
	for _, tf := range []string{"fine", "medium", "coarse"} {
		cs := u.candles.GetCandles(ctx, code, tf, snapshotBars)
		if len(cs) == 0 {
			continue
		}
		sections = append(sections, renderSeries(tf, cs))
	}

	if len(sections) == 0 {
		return &entity.TradePlan{Code: code, Summary: InsufficientDataSummary, DataOK: false}, nil
	}

	prompt := fmt.Sprintf(
		"あなたは裁量トレーダーのアシスタントです。以下は%sの直近のOHLCデータ（新しい順）です。\n%s\n"+
			"この3時間足（欠けている足は取得失敗）を踏まえ、方向性・エントリー条件・無効化条件を日本語で簡潔にまとめてください。",
		code, strings.Join(sections, "\n"))

	summary, err := u.analyzer.Analyze(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("plan analyzer failed for %q: %w", code, err)
	}
	return &entity.TradePlan{Code: code, Summary: summary, DataOK: true}, nil
}

// renderSeries は1時間足分の系列をプロンプト用テキストに整形します。
func renderSeries(tf string, cs []candleentity.Candle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", tf)
	for _, c := range cs {
		fmt.Fprintf(&b, "%d O=%.5f H=%.5f L=%.5f C=%.5f\n", c.Time.Unix(), c.Open, c.High, c.Low, c.Close)
	}
	return b.String()
}
