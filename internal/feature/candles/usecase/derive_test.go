package usecase

import (
	"testing"
	"time"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/shared/timeframe"
)

// newestFirst はテスト用の新しい順の系列を生成します。
func newestFirst(n int, tf timeframe.Timeframe, newest time.Time) []entity.Candle {
	out := make([]entity.Candle, 0, n)
	for i := 0; i < n; i++ {
		base := 10.0 * float64(i+1)
		out = append(out, entity.Candle{
			Symbol: "EUR/USD",
			Time:   newest.Add(-tf.Duration() * time.Duration(i)),
			Open:   base,
			High:   base + 5,
			Low:    base - 5,
			Close:  base + 1,
			Volume: 100,
		})
	}
	return out
}

// TestExplode は粗い足からの複製がOHLCを保ち、タイムスタンプを細かい足の
// バー幅で降順に刻むことを検証します。
func TestExplode(t *testing.T) {
	t.Parallel()

	newest := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	coarse := newestFirst(3, timeframe.Medium, newest)
	ratio := timeframe.Ratio(timeframe.Medium, timeframe.Fine)

	got := explode(coarse, timeframe.Fine, ratio, 10)

	if len(got) != 10 {
		t.Fatalf("expected 10 candles (count cap), got %d", len(got))
	}
	step := timeframe.Fine.Duration()
	for i, c := range got {
		p := coarse[i/ratio]
		if c.Open != p.Open || c.High != p.High || c.Low != p.Low || c.Close != p.Close {
			t.Errorf("candle %d: OHLC differs from parent: got %+v, parent %+v", i, c, p)
		}
		wantTime := p.Time.Add(-step * time.Duration(i%ratio))
		if !c.Time.Equal(wantTime) {
			t.Errorf("candle %d: time = %v, want %v", i, c.Time, wantTime)
		}
		if c.Volume != p.Volume/float64(ratio) {
			t.Errorf("candle %d: volume = %v, want %v", i, c.Volume, p.Volume/float64(ratio))
		}
		if c.Timeframe != string(timeframe.Fine) {
			t.Errorf("candle %d: timeframe = %q", i, c.Timeframe)
		}
		if i > 0 && !c.Time.Before(got[i-1].Time) {
			t.Errorf("candle %d: timestamps not strictly descending", i)
		}
	}
}

// TestExplode_FewerThanCount は親バーが足りない場合にratio×本数で止まることを
// 検証します。
func TestExplode_FewerThanCount(t *testing.T) {
	t.Parallel()

	newest := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	coarse := newestFirst(2, timeframe.Coarse, newest)
	ratio := timeframe.Ratio(timeframe.Coarse, timeframe.Medium)

	got := explode(coarse, timeframe.Medium, ratio, 100)

	if want := 2 * ratio; len(got) != want {
		t.Errorf("expected %d candles, got %d", want, len(got))
	}
}

// TestAggregate は細かい足のウィンドウ集約がOHLCVの合成規則に従うことを検証します。
func TestAggregate(t *testing.T) {
	t.Parallel()

	newest := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	fine := newestFirst(8, timeframe.Fine, newest)
	ratio := 4

	got := aggregate(fine, timeframe.Medium, ratio, 10)

	if len(got) != 2 {
		t.Fatalf("expected 2 aggregated candles, got %d", len(got))
	}

	for gi, bar := range got {
		g := fine[gi*ratio : (gi+1)*ratio]
		if !bar.Time.Equal(g[0].Time) {
			t.Errorf("group %d: time = %v, want newest sample's %v", gi, bar.Time, g[0].Time)
		}
		if bar.Close != g[0].Close {
			t.Errorf("group %d: close = %v, want newest sample's %v", gi, bar.Close, g[0].Close)
		}
		if bar.Open != g[len(g)-1].Open {
			t.Errorf("group %d: open = %v, want oldest sample's %v", gi, bar.Open, g[len(g)-1].Open)
		}
		wantHigh, wantLow, wantVol := g[0].High, g[0].Low, 0.0
		for _, c := range g {
			if c.High > wantHigh {
				wantHigh = c.High
			}
			if c.Low < wantLow {
				wantLow = c.Low
			}
			wantVol += c.Volume
		}
		if bar.High != wantHigh || bar.Low != wantLow {
			t.Errorf("group %d: high/low = %v/%v, want %v/%v", gi, bar.High, bar.Low, wantHigh, wantLow)
		}
		if bar.Volume != wantVol {
			t.Errorf("group %d: volume = %v, want %v", gi, bar.Volume, wantVol)
		}
		if bar.Timeframe != string(timeframe.Medium) {
			t.Errorf("group %d: timeframe = %q", gi, bar.Timeframe)
		}
	}
}

// TestAggregate_DropsPartialGroup は端数グループが捨てられることを検証します。
func TestAggregate_DropsPartialGroup(t *testing.T) {
	t.Parallel()

	newest := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	fine := newestFirst(11, timeframe.Fine, newest) // 4本×2グループ + 端数3本

	got := aggregate(fine, timeframe.Medium, 4, 10)

	if len(got) != 2 {
		t.Errorf("expected 2 candles (partial trailing group dropped), got %d", len(got))
	}
}

// TestAggregate_CountCap は要求件数で打ち切られることを検証します。
func TestAggregate_CountCap(t *testing.T) {
	t.Parallel()

	newest := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	fine := newestFirst(16, timeframe.Fine, newest)

	got := aggregate(fine, timeframe.Medium, 4, 2)

	if len(got) != 2 {
		t.Errorf("expected 2 candles (count cap), got %d", len(got))
	}
}
