// Package adapters provides repository implementations for the symbollist feature.
package adapters

import (
	"context"

	"tradeassist_backend/internal/feature/symbollist/domain/entity"
	"tradeassist_backend/internal/feature/symbollist/usecase"
)

// symbolStatic serves the fixed instrument catalog the dashboard supports.
// The acquisition layer has no durable storage, so the catalog is compiled in.
type symbolStatic struct{}

var _ usecase.SymbolRepository = (*symbolStatic)(nil)

// NewSymbolRepository creates the static symbol repository.
func NewSymbolRepository() *symbolStatic {
	return &symbolStatic{}
}

// instruments is the dashboard's supported instrument catalog.
// Codes here are canonical; vendor-specific spellings live in shared/symbol.
var instruments = []entity.Symbol{
	{Code: "EUR/USD", Name: "Euro / US Dollar", Market: "forex"},
	{Code: "USD/JPY", Name: "US Dollar / Japanese Yen", Market: "forex"},
	{Code: "GBP/USD", Name: "British Pound / US Dollar", Market: "forex"},
	{Code: "AUD/USD", Name: "Australian Dollar / US Dollar", Market: "forex"},
	{Code: "USD/CHF", Name: "US Dollar / Swiss Franc", Market: "forex"},
	{Code: "USD/CAD", Name: "US Dollar / Canadian Dollar", Market: "forex"},
	{Code: "EUR/JPY", Name: "Euro / Japanese Yen", Market: "forex"},
	{Code: "XAU/USD", Name: "Gold / US Dollar", Market: "metal"},
	{Code: "XAG/USD", Name: "Silver / US Dollar", Market: "metal"},
	{Code: "US500", Name: "S&P 500 Index", Market: "index"},
	{Code: "US100", Name: "Nasdaq 100 Index", Market: "index"},
	{Code: "US30", Name: "Dow Jones Industrial Average", Market: "index"},
	{Code: "JP225", Name: "Nikkei 225 Index", Market: "index"},
	{Code: "BTC/USD", Name: "Bitcoin / US Dollar", Market: "crypto"},
	{Code: "ETH/USD", Name: "Ethereum / US Dollar", Market: "crypto"},
}

// ListActive returns all supported instruments.
func (r *symbolStatic) ListActive(_ context.Context) ([]entity.Symbol, error) {
	out := make([]entity.Symbol, len(instruments))
	copy(out, instruments)
	return out, nil
}

// ListActiveCodes returns the codes of all supported instruments.
func (r *symbolStatic) ListActiveCodes(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(instruments))
	for _, s := range instruments {
		out = append(out, s.Code)
	}
	return out, nil
}
