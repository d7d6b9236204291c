package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/portfolio"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co/query"

	// maxQuoteResponseSize caps upstream response bodies (1MB)
	maxQuoteResponseSize = 1 << 20

	defaultQuoteTimeout = 5 * time.Second
)

// ErrMissingAPIKey indicates the provider was configured without credentials
var ErrMissingAPIKey = errors.New("quotes: provider API key is not configured")

// AlphaVantageProvider fetches quotes from the Alpha Vantage GLOBAL_QUOTE
// endpoint
type AlphaVantageProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAlphaVantageProvider creates an Alpha Vantage quote provider
func NewAlphaVantageProvider(apiKey string, timeout time.Duration) *AlphaVantageProvider {
	if timeout == 0 {
		timeout = defaultQuoteTimeout
	}
	return &AlphaVantageProvider{
		apiKey:     apiKey,
		baseURL:    alphaVantageBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier
func (p *AlphaVantageProvider) Name() string {
	return "alphavantage"
}

// alphaVantageResponse mirrors the GLOBAL_QUOTE payload. Field keys carry
// the numeric prefixes of the upstream API.
type alphaVantageResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

// GetQuote fetches the latest price for a symbol
func (p *AlphaVantageProvider) GetQuote(ctx context.Context, symbol string) (portfolio.Quote, error) {
	if p.apiKey == "" {
		return portfolio.Quote{}, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQuoteResponseSize))
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: read response: %w", err)
	}

	var payload alphaVantageResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: decode response: %w", err)
	}
	if payload.ErrorMessage != "" {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: %s", payload.ErrorMessage)
	}
	// A Note field means the rate limit was hit
	if payload.Note != "" {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: rate limited")
	}
	if payload.GlobalQuote.Price == "" {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: no price for symbol %s", symbol)
	}

	price, err := decimal.NewFromString(payload.GlobalQuote.Price)
	if err != nil {
		return portfolio.Quote{}, fmt.Errorf("alphavantage: invalid price %q: %w", payload.GlobalQuote.Price, err)
	}

	return portfolio.Quote{
		Symbol:   symbol,
		Price:    price,
		Currency: "USD",
		AsOf:     time.Now().UTC(),
		Provider: p.Name(),
	}, nil
}
