package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/invoicing"
)

func testInvoiceAndClient(t *testing.T) (*invoicing.Client, *invoicing.Invoice) {
	t.Helper()
	ownerID := uuid.New()

	client, err := invoicing.NewClient(ownerID, "Acme Corp", "billing@acme.test", "", "", "", "")
	require.NoError(t, err)

	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	invoice, err := invoicing.NewInvoice(ownerID, client.ID, "INV-202603-00001", "USD",
		issue, issue.AddDate(0, 0, 14), decimal.NewFromInt(21))
	require.NoError(t, err)
	item, err := invoicing.NewInvoiceItem("Consulting", decimal.NewFromInt(2), decimal.NewFromInt(500))
	require.NoError(t, err)
	require.NoError(t, invoice.ReplaceItems([]invoicing.InvoiceItem{item}))
	return client, invoice
}

func TestFallbackSender_SendInvoiceReminder(t *testing.T) {
	client, invoice := testInvoiceAndClient(t)

	t.Run("first provider succeeds", func(t *testing.T) {
		var got Reminder
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		sender := NewFallbackSender([]ReminderProvider{
			NewWebhookProvider("primary", server.URL, time.Second),
		}, zap.NewNop())

		err := sender.SendInvoiceReminder(context.Background(), client, invoice)

		require.NoError(t, err)
		assert.Equal(t, "INV-202603-00001", got.InvoiceNumber)
		assert.Equal(t, "billing@acme.test", got.ClientEmail)
		assert.Equal(t, "1210.00", got.Total)
	})

	t.Run("falls back when the first provider errors", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer failing.Close()

		var backupHits int
		backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			backupHits++
			w.WriteHeader(http.StatusOK)
		}))
		defer backup.Close()

		sender := NewFallbackSender([]ReminderProvider{
			NewWebhookProvider("primary", failing.URL, time.Second),
			NewWebhookProvider("backup", backup.URL, time.Second),
		}, zap.NewNop())

		err := sender.SendInvoiceReminder(context.Background(), client, invoice)

		require.NoError(t, err)
		assert.Equal(t, 1, backupHits)
	})

	t.Run("all providers failing returns an error", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer failing.Close()

		sender := NewFallbackSender([]ReminderProvider{
			NewWebhookProvider("primary", failing.URL, time.Second),
			NewWebhookProvider("backup", "", time.Second),
		}, zap.NewNop())

		err := sender.SendInvoiceReminder(context.Background(), client, invoice)

		assert.ErrorIs(t, err, ErrAllProvidersFailed)
	})
}
