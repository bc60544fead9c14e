package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/candles/usecase"
	"tradeassist_backend/internal/shared/timeframe"
)

// ErrNoCredentials is returned when the API key is not configured.
var ErrNoCredentials = errors.New("finnhub: api key not configured")

// Source はFinnhubの為替ロウソク足エンドポイントを呼び出すMarketSource実装です。
// 為替銘柄はOANDAフィードのシンボル形式（OANDA:EUR_USD）に変換して問い合わせます。
type Source struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketSource = (*Source)(nil)

// NewSource は指定された設定とHTTPクライアントでSourceの新しいインスタンスを生成します。
func NewSource(cfg Config, client *http.Client) *Source {
	return &Source{cfg: cfg, client: client}
}

// Name はベンダー識別子を返します。
func (s *Source) Name() string { return "finnhub" }

// ForexOnly はtrueを返します。このアダプターは為替キャンドルAPIのみを使用します。
func (s *Source) ForexOnly() bool { return true }

// candleResponse is Finnhub's parallel-array candle payload, oldest-first.
// s is "ok" or "no_data".
type candleResponse struct {
	Open   []float64 `json:"o"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Close  []float64 `json:"c"`
	Volume []float64 `json:"v"`
	Time   []int64   `json:"t"`
	Status string    `json:"s"`
}

// resolutionFor は抽象時間足をFinnhubのresolution語彙（分数）に対応付けます。
func resolutionFor(tf timeframe.Timeframe) string {
	switch tf {
	case timeframe.Fine:
		return "15"
	case timeframe.Medium:
		return "60"
	default:
		return "240"
	}
}

// vendorSymbol はEUR/USDをOANDA:EUR_USDに変換します。
func vendorSymbol(sym string) string {
	return "OANDA:" + strings.ReplaceAll(sym, "/", "_")
}

// FetchSeries はFinnhubからロウソク足を取得し、新しい順で返します。
// Finnhubは古い順で返すため明示的に順序を反転します。データなし（no_data）は
// エラーではなく空の系列です。
func (s *Source) FetchSeries(ctx context.Context, sym string, tf timeframe.Timeframe, count int) ([]entity.Candle, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrNoCredentials
	}

	now := time.Now()
	// 市場休止で欠けるバーを見込み、必要本数の2倍の期間を要求する
	from := now.Add(-tf.Duration() * time.Duration(count*2))

	q := url.Values{}
	q.Set("symbol", vendorSymbol(sym))
	q.Set("resolution", resolutionFor(tf))
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(now.Unix(), 10))
	q.Set("token", s.cfg.APIKey)

	u := fmt.Sprintf("%s/forex/candle?%s", s.cfg.BaseURL, q.Encode())

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
		return nil, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body candleResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "no_data" {
		return nil, nil
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("finnhub: status %q", body.Status)
	}

	n := len(body.Time)
	if len(body.Open) < n || len(body.High) < n || len(body.Low) < n || len(body.Close) < n {
		return nil, fmt.Errorf("finnhub: mismatched array lengths")
	}

	candles := make([]entity.Candle, 0, n)
	// 古い順の配列を末尾から読み、新しい順で組み立てる
	for i := n - 1; i >= 0; i-- {
		cd := entity.Candle{
			Time:  time.Unix(body.Time[i], 0).UTC(),
			Open:  body.Open[i],
			High:  body.High[i],
			Low:   body.Low[i],
			Close: body.Close[i],
		}
		if i < len(body.Volume) {
			cd.Volume = body.Volume[i]
		}
		if !cd.IsFinite() {
			continue
		}
		candles = append(candles, cd)
		if len(candles) >= count {
			break
		}
	}
	return candles, nil
}
