// Package dto defines data transfer objects for the candles HTTP API.
package dto

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	Time   int64   `json:"time"`   // バー開始時刻（エポック秒）
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume float64 `json:"volume"` // 出来高（ベンダーが提供しない場合は0）
}

// MarketSnapshotResponse は1銘柄の3時間足をまとめたレスポンスDTOです。
// 各時間足は独立に取得されるため、0〜3個の系列だけが埋まることがあります。
type MarketSnapshotResponse struct {
	Code   string           `json:"code"`
	Fine   []CandleResponse `json:"fine"`
	Medium []CandleResponse `json:"medium"`
	Coarse []CandleResponse `json:"coarse"`
}

// ErrorResponse はエラーレスポンスの共通DTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
