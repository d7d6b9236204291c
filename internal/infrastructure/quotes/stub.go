package quotes

import (
	"context"
	"hash/fnv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/portfolio"
)

// StubProvider produces deterministic pseudo-prices derived from the symbol.
// It backs development and test environments where no upstream API key is
// available.
type StubProvider struct{}

// NewStubProvider creates a stub quote provider
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Name returns the provider identifier
func (p *StubProvider) Name() string {
	return "stub"
}

// GetQuote returns a stable price in the 10.00-509.99 range for any symbol
func (p *StubProvider) GetQuote(_ context.Context, symbol string) (portfolio.Quote, error) {
	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(symbol)))
	sum := h.Sum32()

	dollars := int64(sum%50000) + 1000
	price := decimal.NewFromInt(dollars).Div(decimal.NewFromInt(100))

	return portfolio.Quote{
		Symbol:   strings.ToUpper(symbol),
		Price:    price,
		Currency: "USD",
		AsOf:     time.Now().UTC(),
		Provider: p.Name(),
	}, nil
}
