// Package messaging delivers invoice reminders through HTTP messaging
// providers with ordered fallback.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	invoicingapp "github.com/fintrack/backend/internal/application/invoicing"
	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/infrastructure/config"
)

const defaultSendTimeout = 10 * time.Second

// ErrAllProvidersFailed is returned when no provider accepted the reminder
var ErrAllProvidersFailed = errors.New("messaging: all reminder providers failed")

// ReminderProvider delivers one reminder through a single upstream service
type ReminderProvider interface {
	Name() string
	Send(ctx context.Context, reminder Reminder) error
}

// Reminder is the payload sent to messaging providers
type Reminder struct {
	InvoiceNumber string    `json:"invoice_number"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"client_email"`
	DueDate       time.Time `json:"due_date"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
}

// WebhookProvider posts reminders as JSON to a configured endpoint
type WebhookProvider struct {
	name       string
	endpoint   string
	httpClient *http.Client
}

// NewWebhookProvider creates a webhook reminder provider
func NewWebhookProvider(name, endpoint string, timeout time.Duration) *WebhookProvider {
	if timeout == 0 {
		timeout = defaultSendTimeout
	}
	return &WebhookProvider{
		name:       name,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier
func (p *WebhookProvider) Name() string {
	return p.name
}

// Send posts the reminder payload; any non-2xx status is a failure
func (p *WebhookProvider) Send(ctx context.Context, reminder Reminder) error {
	if p.endpoint == "" {
		return fmt.Errorf("%s: endpoint is not configured", p.name)
	}

	body, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: encode reminder: %w", p.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", p.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", p.name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", p.name, resp.StatusCode)
	}
	return nil
}

var _ invoicingapp.ReminderSender = (*FallbackSender)(nil)

// FallbackSender tries each provider in order until one accepts the
// reminder. Failures are logged and the next provider is tried.
type FallbackSender struct {
	providers []ReminderProvider
	logger    *zap.Logger
}

// NewFallbackSender creates a sender over an ordered provider list
func NewFallbackSender(providers []ReminderProvider, logger *zap.Logger) *FallbackSender {
	return &FallbackSender{providers: providers, logger: logger}
}

// NewFallbackSenderFromConfig builds webhook providers from the configured
// provider order and endpoint map
func NewFallbackSenderFromConfig(cfg config.MessagingConfig, logger *zap.Logger) *FallbackSender {
	providers := make([]ReminderProvider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		providers = append(providers, NewWebhookProvider(name, cfg.Endpoints[name], cfg.Timeout))
	}
	return NewFallbackSender(providers, logger)
}

// SendInvoiceReminder delivers a payment reminder for an open invoice
func (s *FallbackSender) SendInvoiceReminder(ctx context.Context, client *invoicing.Client, invoice *invoicing.Invoice) error {
	if len(s.providers) == 0 {
		return ErrAllProvidersFailed
	}

	reminder := Reminder{
		InvoiceNumber: invoice.Number,
		ClientName:    client.Name,
		ClientEmail:   client.Email,
		DueDate:       invoice.DueDate,
		Total:         invoice.Total.StringFixed(2),
		Currency:      string(invoice.Currency),
	}

	for _, provider := range s.providers {
		err := provider.Send(ctx, reminder)
		if err == nil {
			s.logger.Info("Invoice reminder sent",
				zap.String("provider", provider.Name()),
				zap.String("invoice", invoice.Number))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("Reminder provider failed, trying next",
			zap.String("provider", provider.Name()),
			zap.String("invoice", invoice.Number),
			zap.Error(err))
	}
	return ErrAllProvidersFailed
}
