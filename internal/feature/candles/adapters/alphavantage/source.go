package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/candles/usecase"
	"tradeassist_backend/internal/shared/ratelimiter"
	"tradeassist_backend/internal/shared/timeframe"
)

// ErrNoCredentials is returned when the API key is not configured.
var ErrNoCredentials = errors.New("alphavantage: api key not configured")

// ErrUnsupportedTimeframe is returned for timeframes outside the vendor's
// intraday interval vocabulary (Alpha Vantage has no 4h interval).
var ErrUnsupportedTimeframe = errors.New("alphavantage: unsupported timeframe")

// Source はAlpha VantageのFX_INTRADAYエンドポイントを呼び出すMarketSource実装です。
//
// レスポンスは "Time Series FX (15min)" のようにキー名自体が動的なオブジェクトで、
// 各行の値も "1. open" のような番号付きキーを持つため、構造体デコードではなく
// gjsonで読み取ります。
type Source struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.MarketSource = (*Source)(nil)

// NewSource は指定された設定・HTTPクライアント・レートリミッターで
// Sourceの新しいインスタンスを生成します。
func NewSource(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Source {
	return &Source{cfg: cfg, client: client, limiter: limiter}
}

// Name はベンダー識別子を返します。
func (s *Source) Name() string { return "alphavantage" }

// ForexOnly はtrueを返します。設計上このアダプターは為替銘柄専用です。
func (s *Source) ForexOnly() bool { return true }

// intervalFor は抽象時間足をAlpha Vantageのinterval語彙に対応付けます。
// Coarse（4時間足）は語彙に存在しないため対応しません。その穴は合成導出が埋めます。
func intervalFor(tf timeframe.Timeframe) (string, bool) {
	switch tf {
	case timeframe.Fine:
		return "15min", true
	case timeframe.Medium:
		return "60min", true
	default:
		return "", false
	}
}

// FetchSeries はAlpha VantageからFXロウソク足を取得し、新しい順で返します。
// このベンダーは出来高を提供しません。
func (s *Source) FetchSeries(ctx context.Context, sym string, tf timeframe.Timeframe, count int) ([]entity.Candle, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrNoCredentials
	}
	interval, ok := intervalFor(tf)
	if !ok {
		return nil, ErrUnsupportedTimeframe
	}
	parts := strings.Split(sym, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("alphavantage: not a currency pair: %q", sym)
	}

	if s.limiter != nil {
		s.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	q.Set("function", "FX_INTRADAY")
	q.Set("from_symbol", parts[0])
	q.Set("to_symbol", parts[1])
	q.Set("interval", interval)
	q.Set("outputsize", outputSizeFor(count))
	q.Set("apikey", s.cfg.APIKey)

	u := fmt.Sprintf("%s/query?%s", s.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("alphavantage: invalid json")
	}
	payload := gjson.ParseBytes(body)

	// エラー・レート超過はHTTP 200のままJSON本文で通知される
	if msg := payload.Get("Error Message"); msg.Exists() {
		return nil, fmt.Errorf("alphavantage: %s", msg.String())
	}
	if note := payload.Get("Note"); note.Exists() {
		return nil, fmt.Errorf("alphavantage: rate limited: %s", note.String())
	}

	series := payload.Get("Time Series FX (" + interval + ")")
	if !series.Exists() {
		return nil, fmt.Errorf("alphavantage: missing time series")
	}

	candles := make([]entity.Candle, 0, count)
	series.ForEach(func(key, row gjson.Result) bool {
		tm, err := time.Parse("2006-01-02 15:04:05", key.String())
		if err != nil {
			slog.Debug("alphavantage: skipping record with bad datetime", "datetime", key.String())
			return true
		}
		cd := entity.Candle{
			Time:  tm,
			Open:  row.Get(`1\. open`).Float(),
			High:  row.Get(`2\. high`).Float(),
			Low:   row.Get(`3\. low`).Float(),
			Close: row.Get(`4\. close`).Float(),
		}
		if !cd.IsFinite() || cd.Close == 0 {
			return true
		}
		candles = append(candles, cd)
		return true
	})

	entity.SortNewestFirst(candles)
	if len(candles) > count {
		candles = candles[:count]
	}
	return candles, nil
}

// outputSizeFor はcompact（直近100本）で足りるかどうかで出力サイズを選びます。
func outputSizeFor(count int) string {
	if count <= 100 {
		return "compact"
	}
	return "full"
}
