package portfolio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Quote is a market price for one symbol at a point in time
type Quote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	AsOf     time.Time       `json:"as_of"`
	Provider string          `json:"provider"`
}

// QuoteProvider fetches a market quote from one upstream source
type QuoteProvider interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (Quote, error)
}

// ErrQuoteUnavailable is returned when every provider in the chain failed
var ErrQuoteUnavailable = shared.NewDomainError("QUOTE_UNAVAILABLE", "No quote provider could supply a price")
