// Package timeframe はダッシュボードが扱う3段階の時間足を定義します。
package timeframe

import (
	"strings"
	"time"
)

// Timeframe は抽象化された時間足（粒度）です。
type Timeframe string

const (
	// Fine は最も細かい時間足（15分足）です。
	Fine Timeframe = "fine"
	// Medium は中間の時間足（1時間足）です。
	Medium Timeframe = "medium"
	// Coarse は最も粗い時間足（4時間足）です。
	Coarse Timeframe = "coarse"
)

// durations は各時間足のバー幅です。粗い順に隣接関係もここから導出します。
var durations = map[Timeframe]time.Duration{
	Fine:   15 * time.Minute,
	Medium: time.Hour,
	Coarse: 4 * time.Hour,
}

// ordered は細かい順の一覧です。NeighborはこのリストでTimeframeを前後に辿ります。
var ordered = []Timeframe{Fine, Medium, Coarse}

// Parse は文字列を時間足に変換します。
// 定義外の値は呼び出し側の契約違反ですが、安全側に倒してCoarseとして扱います。
func Parse(s string) Timeframe {
	switch Timeframe(strings.ToLower(strings.TrimSpace(s))) {
	case Fine:
		return Fine
	case Medium:
		return Medium
	default:
		return Coarse
	}
}

// Duration は1本のバー幅を返します。
func (tf Timeframe) Duration() time.Duration {
	return durations[tf]
}

// Coarser は1段階粗い時間足を返します。Coarseより粗い足は存在しません。
func (tf Timeframe) Coarser() (Timeframe, bool) {
	for i, t := range ordered {
		if t == tf && i+1 < len(ordered) {
			return ordered[i+1], true
		}
	}
	return "", false
}

// Finer は1段階細かい時間足を返します。Fineより細かい足は存在しません。
func (tf Timeframe) Finer() (Timeframe, bool) {
	for i, t := range ordered {
		if t == tf && i > 0 {
			return ordered[i-1], true
		}
	}
	return "", false
}

// Ratio は粗い足1本あたりに含まれる細かい足の本数を返します。
// 隣接しない組み合わせや不正な組み合わせでは0を返します。
func Ratio(coarse, fine Timeframe) int {
	cd, fd := coarse.Duration(), fine.Duration()
	if cd <= 0 || fd <= 0 || cd <= fd || cd%fd != 0 {
		return 0
	}
	return int(cd / fd)
}
