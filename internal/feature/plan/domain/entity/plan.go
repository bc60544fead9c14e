// Package entity defines the domain models for the plan feature.
package entity

// TradePlan は1銘柄に対して生成されたトレードプランです。
type TradePlan struct {
	Code    string // 正規化前の銘柄コード（リクエストどおり）
	Summary string // 生成されたプラン本文
	// DataOK は3時間足のうち1つ以上の実データが得られたかどうかです。
	// falseの場合、Summaryは低確度である旨の定型文になります。
	DataOK bool
}
