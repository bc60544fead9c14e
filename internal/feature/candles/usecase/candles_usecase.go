// Package usecase はロウソク足取得レイヤーのビジネスロジックを実装します。
//
// 中心となるのは GetCandles のフォールバックオーケストレーターで、複数の外部
// ベンダーを優先順に試し、全滅した場合は隣接する時間足から合成系列を導出します。
// 呼び出し側（チャート描画・プラン生成）は段階的な劣化を前提としているため、
// この境界からエラーは一切返しません。すべての失敗は空の系列として表現されます。
package usecase

import (
	"context"
	"log/slog"
	"time"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/shared/symbol"
	"tradeassist_backend/internal/shared/timeframe"
)

const (
	// DefaultOutputSize はデフォルトのロウソク足返却件数です。
	DefaultOutputSize = 200
	// MaxOutputSize はロウソク足の最大返却件数です。
	MaxOutputSize = 5000
	// maxDeriveDepth は合成導出がオーケストレーターへ再帰できる最大深度です。
	// 時間足の隣接テーブルが誤設定されても連鎖が無限に伸びないための上限です。
	maxDeriveDepth = 1
)

// MarketSource は外部ベンダー1社からロウソク足を取得するアダプターの契約です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketSource interface {
	// Name はログ用のベンダー識別子を返します。
	Name() string
	// ForexOnly はこのベンダーが外国為替銘柄専用かどうかを返します。
	ForexOnly() bool
	// FetchSeries は新しい順のロウソク足系列を返します。失敗はerrorで表現し、
	// データなしはエラーなしの空スライスで表現します。
	FetchSeries(ctx context.Context, sym string, tf timeframe.Timeframe, count int) ([]entity.Candle, error)
}

// CandleCache は取得結果を短時間メモ化するキャッシュの契約です。
type CandleCache interface {
	Get(ctx context.Context, key string) ([]entity.Candle, bool)
	Set(ctx context.Context, key string, candles []entity.Candle)
	Clear(ctx context.Context)
}

// Config はオーケストレーターの時間予算を保持します。
type Config struct {
	// VendorTimeout はベンダー1回の呼び出しに与える上限時間です。
	VendorTimeout time.Duration
	// TotalBudget はフォールバックチェーン全体の上限時間です。
	// 超過した時点で残りのステップを打ち切り、得られた結果を返します。
	TotalBudget time.Duration
}

// DefaultConfig は本番向けの既定値を返します。
func DefaultConfig() Config {
	return Config{
		VendorTimeout: 8 * time.Second,
		TotalBudget:   20 * time.Second,
	}
}

// CandlesUsecase はロウソク足取得のフォールバックオーケストレーターです。
type CandlesUsecase struct {
	primary MarketSource   // エイリアスを順に試す最優先ベンダー
	fx      []MarketSource // 為替専用フォールバックベンダー（優先順）
	cache   CandleCache    // nilの場合キャッシュは無効
	cfg     Config
}

// NewCandlesUsecase はCandlesUsecaseの新しいインスタンスを生成します。
// cacheにnilを渡すとキャッシュなしで動作します。
func NewCandlesUsecase(primary MarketSource, fx []MarketSource, cache CandleCache, cfg Config) *CandlesUsecase {
	if cfg.VendorTimeout <= 0 {
		cfg.VendorTimeout = DefaultConfig().VendorTimeout
	}
	if cfg.TotalBudget <= 0 {
		cfg.TotalBudget = DefaultConfig().TotalBudget
	}
	return &CandlesUsecase{primary: primary, fx: fx, cache: cache, cfg: cfg}
}

// GetCandles は指定された銘柄と時間足のロウソク足を新しい順で返します。
//
// この関数はいかなる入力に対してもエラーを返しません。銘柄コードが空の場合は
// デフォルト銘柄にフォールバックし、全ベンダーと合成導出が失敗した場合のみ
// 空の系列を返します。返却件数は要求より少ないことがあります（エラーではない）。
func (cu *CandlesUsecase) GetCandles(ctx context.Context, code, tf string, count int) []entity.Candle {
	if cu.cfg.TotalBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cu.cfg.TotalBudget)
		defer cancel()
	}
	return cu.getCandles(ctx, code, timeframe.Parse(tf), count, 0)
}

// getCandles はキャッシュ確認→直接取得→合成導出→キャッシュ保存を1回分実行します。
// depth は合成導出からの再帰段数です。
func (cu *CandlesUsecase) getCandles(ctx context.Context, code string, tf timeframe.Timeframe, count, depth int) []entity.Candle {
	sym := symbol.Normalize(code)
	if sym == "" {
		sym = symbol.DefaultInstrument
	}
	if count <= 0 || count > MaxOutputSize {
		count = DefaultOutputSize
	}

	key := cacheKey(sym, tf)
	if cu.cache != nil {
		if cs, ok := cu.cache.Get(ctx, key); ok && len(cs) > 0 {
			return trim(cs, count)
		}
	}

	cs := cu.fetchDirect(ctx, sym, tf, count)
	if len(cs) == 0 && depth < maxDeriveDepth {
		cs = cu.derive(ctx, sym, tf, count, depth)
	}

	if len(cs) > 0 && cu.cache != nil {
		cu.cache.Set(ctx, key, cs)
	}
	return trim(cs, count)
}

// fetchDirect はベンダーを優先順に試し、最初の空でない系列を返します。
// 最優先ベンダーにはエイリアスを順に試し、為替銘柄の場合のみ為替専用ベンダーへ
// フォールバックします。個々の失敗はログに残して吸収します。
func (cu *CandlesUsecase) fetchDirect(ctx context.Context, sym string, tf timeframe.Timeframe, count int) []entity.Candle {
	if cu.primary != nil {
		for _, alias := range symbol.Aliases(sym) {
			if ctx.Err() != nil {
				slog.Warn("candle fetch budget exhausted", "symbol", sym, "timeframe", tf)
				return nil
			}
			cs, err := cu.fetchOne(ctx, cu.primary, alias, tf, count)
			if err != nil {
				slog.Debug("vendor fetch failed", "vendor", cu.primary.Name(), "alias", alias, "timeframe", tf, "error", err)
				continue
			}
			if len(cs) > 0 {
				return stamp(cs, sym, tf)
			}
		}
	}

	if !symbol.IsForex(sym) {
		return nil
	}
	for _, src := range cu.fx {
		if ctx.Err() != nil {
			slog.Warn("candle fetch budget exhausted", "symbol", sym, "timeframe", tf)
			return nil
		}
		cs, err := cu.fetchOne(ctx, src, sym, tf, count)
		if err != nil {
			slog.Debug("vendor fetch failed", "vendor", src.Name(), "symbol", sym, "timeframe", tf, "error", err)
			continue
		}
		if len(cs) > 0 {
			return stamp(cs, sym, tf)
		}
	}
	return nil
}

// fetchOne は1ベンダー1回の呼び出しをベンダー別タイムアウトで囲んで実行します。
// ベンダー側のタイムアウトパラメータは信頼できないため、期限はこちらで課します。
func (cu *CandlesUsecase) fetchOne(ctx context.Context, src MarketSource, sym string, tf timeframe.Timeframe, count int) ([]entity.Candle, error) {
	cctx, cancel := context.WithTimeout(ctx, cu.cfg.VendorTimeout)
	defer cancel()
	return src.FetchSeries(cctx, sym, tf, count)
}

// ClearCache はキャッシュを明示的に破棄します。主にテスト用です。
func (cu *CandlesUsecase) ClearCache(ctx context.Context) {
	if cu.cache != nil {
		cu.cache.Clear(ctx)
	}
}

// cacheKey は正規化済みシンボルと時間足からキャッシュキーを生成します。
func cacheKey(sym string, tf timeframe.Timeframe) string {
	return sym + ":" + string(tf)
}

// stamp は系列全体に正規化済みシンボルと時間足を設定します。
// エイリアスで取得した場合もキャッシュと呼び出し側には正規形で見せます。
func stamp(cs []entity.Candle, sym string, tf timeframe.Timeframe) []entity.Candle {
	for i := range cs {
		cs[i].Symbol = sym
		cs[i].Timeframe = string(tf)
	}
	return cs
}

// trim は系列を先頭（最新側）からcount件に切り詰めます。
func trim(cs []entity.Candle, count int) []entity.Candle {
	if count > 0 && len(cs) > count {
		return cs[:count]
	}
	return cs
}
