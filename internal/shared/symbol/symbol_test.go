package symbol_test

import (
	"reflect"
	"testing"

	"tradeassist_backend/internal/shared/symbol"
)

// TestNormalize は正規化ルール（6文字ペアへの区切り挿入・冪等性）を検証します。
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"six letters get a separator", "EURUSD", "EUR/USD"},
		{"lowercase is uppercased", "eurusd", "EUR/USD"},
		{"whitespace is trimmed", "  usdjpy ", "USD/JPY"},
		{"existing separator is kept", "EUR/USD", "EUR/USD"},
		{"other separators pass through", "BTC-USD", "BTC-USD"},
		{"short code passes through", "US500", "US500"},
		{"long code passes through", "BITCOIN", "BITCOIN"},
		{"six chars with digit pass through", "7203TX", "7203TX"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := symbol.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// 再正規化しても結果が変わらないこと（冪等性）
			if again := symbol.Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

// TestIsForex はAAA/BBB形式（両側3文字の英字）の判定を検証します。
func TestIsForex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sym  string
		want bool
	}{
		{"EUR/USD", true},
		{"USD/JPY", true},
		{"XAU/USD", true}, // 貴金属も通貨ペア形式ならtrue
		{"US500", false},
		{"EURUSD", false},
		{"EUR/USDT", false},
		{"BTC-USD", false},
		{"E1R/USD", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.sym, func(t *testing.T) {
			t.Parallel()

			if got := symbol.IsForex(tt.sym); got != tt.want {
				t.Errorf("IsForex(%q) = %v, want %v", tt.sym, got, tt.want)
			}
		})
	}
}

// TestAliases は正規形→区切りなし形→ベンダー同義語の順序と重複排除を検証します。
func TestAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sym  string
		want []string
	}{
		{
			name: "forex pair has canonical and no-separator forms",
			sym:  "EUR/USD",
			want: []string{"EUR/USD", "EURUSD"},
		},
		{
			name: "index gets vendor synonyms",
			sym:  "US500",
			want: []string{"US500", "SPX", "GSPC"},
		},
		{
			name: "metal gets vendor synonyms after base forms",
			sym:  "XAU/USD",
			want: []string{"XAU/USD", "XAUUSD", "GOLD"},
		},
		{
			name: "unknown symbol yields only itself",
			sym:  "7203.T",
			want: []string{"7203.T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := symbol.Aliases(tt.sym)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Aliases(%q) = %v, want %v", tt.sym, got, tt.want)
			}
		})
	}
}
