package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tradeassist_backend/internal/feature/candles/adapters/twelvedata/dto"
	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/feature/candles/usecase"
	"tradeassist_backend/internal/shared/timeframe"
)

// ErrNoCredentials is returned when the API key is not configured.
// The orchestrator treats the source as permanently unavailable for this process.
var ErrNoCredentials = errors.New("twelvedata: api key not configured")

// Source はTwelve Data APIからロウソク足を取得するMarketSource実装です。
type Source struct {
	cfg    Config
	client *http.Client
}

// SourceがMarketSourceを実装していることをコンパイル時に検証します。
var _ usecase.MarketSource = (*Source)(nil)

// NewSource は指定された設定とHTTPクライアントでSourceの新しいインスタンスを生成します。
func NewSource(cfg Config, client *http.Client) *Source {
	return &Source{cfg: cfg, client: client}
}

// Name はベンダー識別子を返します。
func (s *Source) Name() string { return "twelvedata" }

// ForexOnly はfalseを返します。Twelve Dataは株式・指数・貴金属・暗号資産も扱います。
func (s *Source) ForexOnly() bool { return false }

// intervalFor は抽象時間足をTwelve Dataのinterval語彙に対応付けます。
func intervalFor(tf timeframe.Timeframe) string {
	switch tf {
	case timeframe.Fine:
		return "15min"
	case timeframe.Medium:
		return "1h"
	default:
		return "4h"
	}
}

// FetchSeries はTwelve Dataのtime_seriesエンドポイントから時系列を取得し、
// 新しい順のロウソク足として返します。
//
// 数値やタイムスタンプを解釈できないレコードは系列全体を失敗させず、
// そのレコードだけを捨てます。
func (s *Source) FetchSeries(ctx context.Context, sym string, tf timeframe.Timeframe, count int) ([]entity.Candle, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrNoCredentials
	}

	q := url.Values{}
	q.Set("symbol", sym)
	q.Set("interval", intervalFor(tf))
	q.Set("outputsize", strconv.Itoa(count))
	q.Set("apikey", s.cfg.APIKey)

	u := fmt.Sprintf("%s/time_series?%s", s.cfg.BaseURL, q.Encode())

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
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		tm, err := parseDatetime(v.Datetime)
		if err != nil {
			slog.Debug("twelvedata: skipping record with bad datetime", "datetime", v.Datetime)
			continue
		}
		o, err1 := strconv.ParseFloat(v.Open, 64)
		h, err2 := strconv.ParseFloat(v.High, 64)
		l, err3 := strconv.ParseFloat(v.Low, 64)
		c, err4 := strconv.ParseFloat(v.Close, 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			slog.Debug("twelvedata: skipping record with bad price field", "datetime", v.Datetime)
			continue
		}
		// 出来高は為替銘柄では欠けることがある
		vol := 0.0
		if v.Volume != "" {
			vol, _ = strconv.ParseFloat(v.Volume, 64)
		}

		cd := entity.Candle{
			Time:   tm,
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: vol,
		}
		if !cd.IsFinite() {
			continue
		}
		candles = append(candles, cd)
	}

	// Twelve Dataは通常新しい順で返すが、順序は契約上保証されないため正規化する
	entity.SortNewestFirst(candles)
	return candles, nil
}

// parseDatetime は日中足（秒付き）と日足（日付のみ）の両形式を受け付けます。
func parseDatetime(s string) (time.Time, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		tm, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
		}
	}
	return tm, nil
}
