package usecase

import (
	"context"
	"log/slog"
	"time"

	"tradeassist_backend/internal/feature/candles/domain/entity"
	"tradeassist_backend/internal/shared/timeframe"
)

// derive は要求された時間足を全ベンダーが返せなかったときの最終手段として、
// 隣接する時間足の実データから合成系列を作ります。まず1段階粗い足を取得して
// explodeし、それも失敗すれば1段階細かい足を取得してaggregateします。
// 取得は再帰的にオーケストレーターを通るため、キャッシュもベンダーも再利用されます。
func (cu *CandlesUsecase) derive(ctx context.Context, sym string, tf timeframe.Timeframe, count, depth int) []entity.Candle {
	if coarser, ok := tf.Coarser(); ok {
		ratio := timeframe.Ratio(coarser, tf)
		if ratio > 0 {
			need := (count + ratio - 1) / ratio
			src := cu.getCandles(ctx, sym, coarser, need, depth+1)
			if len(src) > 0 {
				slog.Info("synthesizing candles from coarser timeframe",
					"symbol", sym, "timeframe", tf, "source", coarser, "bars", len(src))
				return explode(src, tf, ratio, count)
			}
		}
	}

	if finer, ok := tf.Finer(); ok {
		ratio := timeframe.Ratio(tf, finer)
		if ratio > 0 {
			src := cu.getCandles(ctx, sym, finer, count*ratio, depth+1)
			if len(src) >= ratio {
				slog.Info("synthesizing candles from finer timeframe",
					"symbol", sym, "timeframe", tf, "source", finer, "bars", len(src))
				return aggregate(src, tf, ratio, count)
			}
		}
	}
	return nil
}

// explode は粗い足1本をratio本の細かい合成バーに複製します。
//
// 各合成バーは親バーのOHLCをそのまま共有し、タイムスタンプは親バーの開始時刻から
// 細かい足のバー幅ずつ降順に並びます。バー内部の実際の値動きは再現しません。
// あくまで粗い近似のプレースホルダーであり、下流はこの系列を過信しないこと。
func explode(coarse []entity.Candle, tf timeframe.Timeframe, ratio, count int) []entity.Candle {
	step := tf.Duration()
	out := make([]entity.Candle, 0, count)
	for _, p := range coarse {
		for i := 0; i < ratio; i++ {
			if len(out) >= count {
				return out
			}
			out = append(out, entity.Candle{
				Symbol:    p.Symbol,
				Timeframe: string(tf),
				Time:      p.Time.Add(-step * time.Duration(i)),
				Open:      p.Open,
				High:      p.High,
				Low:       p.Low,
				Close:     p.Close,
				Volume:    p.Volume / float64(ratio),
			})
		}
	}
	return out
}

// aggregate は細かい足をratio本ずつの連続ウィンドウにまとめ、粗い合成バーを作ります。
//
// 系列は新しい順なのでグループ化も最新側から行います。各グループのバーは
// open=最古サンプルのopen、close=最新サンプルのclose、high/low=グループの最大/最小、
// time=最新サンプルのtimeを取ります。ratioに満たない端数グループは捨てます。
func aggregate(fine []entity.Candle, tf timeframe.Timeframe, ratio, count int) []entity.Candle {
	out := make([]entity.Candle, 0, count)
	for i := 0; i+ratio <= len(fine) && len(out) < count; i += ratio {
		g := fine[i : i+ratio]
		bar := entity.Candle{
			Symbol:    g[0].Symbol,
			Timeframe: string(tf),
			Time:      g[0].Time,
			Open:      g[len(g)-1].Open,
			High:      g[0].High,
			Low:       g[0].Low,
			Close:     g[0].Close,
			Volume:    0,
		}
		for _, c := range g {
			if c.High > bar.High {
				bar.High = c.High
			}
			if c.Low < bar.Low {
				bar.Low = c.Low
			}
			bar.Volume += c.Volume
		}
		out = append(out, bar)
	}
	return out
}
