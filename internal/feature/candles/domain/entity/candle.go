package entity

import (
	"math"
	"sort"
	"time"
)

// Candle は1本のOHLCサンプル（ロウソク足）を表します。
// Time はバーの開始時刻です。系列は常に新しい順（Timeの降順）で扱います。
type Candle struct {
	Symbol    string
	Timeframe string
	Time      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// IsFinite は価格フィールドがすべて有限値（NaN/Inf以外）かどうかを返します。
func (c Candle) IsFinite() bool {
	for _, v := range [...]float64{c.Open, c.High, c.Low, c.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SortNewestFirst は系列を新しい順（Timeの降順）に並べ替えます。
// 古い順で返すベンダーがあるため、アダプターは返却前に必ずこの順序に正規化します。
func SortNewestFirst(cs []Candle) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Time.After(cs[j].Time) })
}
