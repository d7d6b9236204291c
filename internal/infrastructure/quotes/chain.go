// Package quotes provides HTTP stock-quote providers and the ordered
// fallback chain that tries them in sequence.
package quotes

import (
	"context"
	"strings"

	"go.uber.org/zap"

	portfolioapp "github.com/fintrack/backend/internal/application/portfolio"
	"github.com/fintrack/backend/internal/domain/portfolio"
	"github.com/fintrack/backend/internal/infrastructure/config"
)

var _ portfolioapp.QuoteSource = (*Chain)(nil)

// Chain tries each provider in order and returns the first successful quote.
// Provider failures are logged and the next provider is tried; when every
// provider fails the caller gets portfolio.ErrQuoteUnavailable.
type Chain struct {
	providers []portfolio.QuoteProvider
	logger    *zap.Logger
}

// NewChain creates a fallback chain over the given providers
func NewChain(providers []portfolio.QuoteProvider, logger *zap.Logger) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// NewChainFromConfig builds the provider chain named in the configuration.
// Unknown provider names are skipped with a warning; an empty result falls
// back to the deterministic stub provider so valuations keep working in
// development.
func NewChainFromConfig(cfg config.QuotesConfig, logger *zap.Logger) *Chain {
	providers := make([]portfolio.QuoteProvider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch strings.ToLower(name) {
		case "alphavantage":
			providers = append(providers, NewAlphaVantageProvider(cfg.APIKeys["alphavantage"], cfg.Timeout))
		case "finnhub":
			providers = append(providers, NewFinnhubProvider(cfg.APIKeys["finnhub"], cfg.Timeout))
		case "stub":
			providers = append(providers, NewStubProvider())
		default:
			logger.Warn("Unknown quote provider in configuration", zap.String("provider", name))
		}
	}
	if len(providers) == 0 {
		providers = append(providers, NewStubProvider())
	}
	return NewChain(providers, logger)
}

// GetQuote resolves a quote through the provider chain
func (c *Chain) GetQuote(ctx context.Context, symbol string) (portfolio.Quote, error) {
	for _, provider := range c.providers {
		quote, err := provider.GetQuote(ctx, symbol)
		if err == nil {
			return quote, nil
		}
		if ctx.Err() != nil {
			return portfolio.Quote{}, ctx.Err()
		}
		c.logger.Warn("Quote provider failed, trying next",
			zap.String("provider", provider.Name()),
			zap.String("symbol", symbol),
			zap.Error(err))
	}
	return portfolio.Quote{}, portfolio.ErrQuoteUnavailable
}
