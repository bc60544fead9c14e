package adapters_test

import (
	"context"
	"testing"

	"tradeassist_backend/internal/feature/symbollist/adapters"
	"tradeassist_backend/internal/shared/symbol"
)

// TestListActive はカタログが空でなく、全コードが正規形であることを検証します。
func TestListActive(t *testing.T) {
	t.Parallel()

	repo := adapters.NewSymbolRepository()

	syms, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(syms) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := make(map[string]bool, len(syms))
	for _, s := range syms {
		if s.Code == "" || s.Name == "" || s.Market == "" {
			t.Errorf("incomplete entry: %+v", s)
		}
		// カタログのコードは正規形（Normalizeで変化しない）であること
		if norm := symbol.Normalize(s.Code); norm != s.Code {
			t.Errorf("code %q is not canonical (normalizes to %q)", s.Code, norm)
		}
		if seen[s.Code] {
			t.Errorf("duplicate code %q", s.Code)
		}
		seen[s.Code] = true
	}

	// デフォルト銘柄はカタログに含まれること
	if !seen[symbol.DefaultInstrument] {
		t.Errorf("catalog missing default instrument %q", symbol.DefaultInstrument)
	}
}

// TestListActiveCodes はListActiveと同じ銘柄を同じ順序で返すことを検証します。
func TestListActiveCodes(t *testing.T) {
	t.Parallel()

	repo := adapters.NewSymbolRepository()
	ctx := context.Background()

	syms, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	codes, err := repo.ListActiveCodes(ctx)
	if err != nil {
		t.Fatalf("ListActiveCodes: %v", err)
	}
	if len(codes) != len(syms) {
		t.Fatalf("code count %d != symbol count %d", len(codes), len(syms))
	}
	for i, s := range syms {
		if codes[i] != s.Code {
			t.Errorf("codes[%d] = %q, want %q", i, codes[i], s.Code)
		}
	}
}
