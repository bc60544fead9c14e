// Package symbol は銘柄コードの正規化とベンダー別エイリアス展開を提供します。
package symbol

import "strings"

// DefaultInstrument は銘柄コードが空のときに使用するデフォルト銘柄です。
const DefaultInstrument = "EUR/USD"

// Normalize は生の銘柄コードを正規化済みのスラッシュ区切り形式に変換します。
//
// ルール:
//   - 前後の空白を除去し大文字化する
//   - 既に区切り文字を含む場合はそのまま返す
//   - ちょうど6文字の英字なら通貨ペアとみなし3文字目の後に "/" を挿入する
//   - それ以外はそのまま返す
//
// 再正規化しても結果は変わりません（冪等）。
func Normalize(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "/-_:") {
		return s
	}
	if len(s) == 6 && isAlpha(s) {
		return s[:3] + "/" + s[3:]
	}
	return s
}

// IsForex は正規化済みシンボルが外国為替ペア（AAA/BBB形式、両側3文字の英字）
// かどうかを判定します。
func IsForex(sym string) bool {
	parts := strings.Split(sym, "/")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) == 3 && len(parts[1]) == 3 && isAlpha(parts[0]) && isAlpha(parts[1])
}

// vendorSynonyms は主要ベンダー（Twelve Data）でカバレッジの弱い銘柄の別表記です。
// ベンダー固有のシンボル差異をここに集約し、アダプター側はシンボルを意識しません。
// 指数はETF/指数ティッカー、貴金属・暗号資産は別名ティッカーで代替します。
var vendorSynonyms = map[string][]string{
	"US500":   {"SPX", "GSPC"},
	"US100":   {"NDX", "IXIC"},
	"US30":    {"DJI"},
	"DE40":    {"DAX", "GDAXI"},
	"JP225":   {"NI225"},
	"XAU/USD": {"GOLD"},
	"XAG/USD": {"SILVER"},
	"BTC/USD": {"BTC/USDT"},
	"ETH/USD": {"ETH/USDT"},
}

// Aliases は1つのベンダーに対して順番に試すシンボル表記のリストを返します。
// 正規形とスラッシュなし形式を先頭に、続いてベンダー別の同義語を重複なしで並べます。
func Aliases(sym string) []string {
	out := make([]string, 0, 4)
	seen := map[string]struct{}{}
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	add(sym)
	add(strings.ReplaceAll(sym, "/", ""))
	for _, alt := range vendorSynonyms[sym] {
		add(alt)
	}
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
