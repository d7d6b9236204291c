package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/portfolio"
)

const finnhubBaseURL = "https://finnhub.io/api/v1/quote"

// FinnhubProvider fetches quotes from the Finnhub quote endpoint
type FinnhubProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFinnhubProvider creates a Finnhub quote provider
func NewFinnhubProvider(apiKey string, timeout time.Duration) *FinnhubProvider {
	if timeout == 0 {
		timeout = defaultQuoteTimeout
	}
	return &FinnhubProvider{
		apiKey:     apiKey,
		baseURL:    finnhubBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier
func (p *FinnhubProvider) Name() string {
	return "finnhub"
}

// finnhubResponse mirrors the quote payload; c is the current price
type finnhubResponse struct {
	Current float64 `json:"c"`
}

// GetQuote fetches the latest price for a symbol
func (p *FinnhubProvider) GetQuote(ctx context.Context, symbol string) (portfolio.Quote, error) {
	if p.apiKey == "" {
		return portfolio.Quote{}, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("token", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("finnhub: build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("finnhub: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return portfolio.Quote{}, fmt.Errorf("finnhub: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQuoteResponseSize))
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("finnhub: read response: %w", err)
	}

	var payload finnhubResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return portfolio.Quote{}, fmt.Errorf("finnhub: decode response: %w", err)
	}
	// Finnhub returns c=0 for unknown symbols
	if payload.Current <= 0 {
		return portfolio.Quote{}, fmt.Errorf("finnhub: no price for symbol %s", symbol)
	}

	return portfolio.Quote{
		Symbol:   symbol,
		Price:    decimal.NewFromFloat(payload.Current),
		Currency: "USD",
		AsOf:     time.Now().UTC(),
		Provider: p.Name(),
	}, nil
}
