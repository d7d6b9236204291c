package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared"
)

// fakeInvoiceRepository is an in-memory invoicing.InvoiceRepository
type fakeInvoiceRepository struct {
	invoicing.InvoiceRepository
	byID map[uuid.UUID]*invoicing.Invoice
}

func newFakeInvoiceRepository() *fakeInvoiceRepository {
	return &fakeInvoiceRepository{byID: make(map[uuid.UUID]*invoicing.Invoice)}
}

func (r *fakeInvoiceRepository) Create(_ context.Context, inv *invoicing.Invoice) error {
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepository) Update(_ context.Context, inv *invoicing.Invoice) error {
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepository) Delete(_ context.Context, _, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeInvoiceRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*invoicing.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepository) NextSequence(_ context.Context, ownerID uuid.UUID, issueDate time.Time) (int64, error) {
	prefix := invoicing.FormatNumber(issueDate, 0)[:11]
	var count int64
	for _, inv := range r.byID {
		if inv.OwnerID == ownerID && len(inv.Number) >= 11 && inv.Number[:11] == prefix {
			count++
		}
	}
	return count + 1, nil
}

func (r *fakeInvoiceRepository) ListDueForOverdue(_ context.Context, asOf time.Time) ([]*invoicing.Invoice, error) {
	var due []*invoicing.Invoice
	for _, inv := range r.byID {
		if inv.Status == invoicing.InvoiceStatusSent && inv.DueDate.Before(asOf) {
			due = append(due, inv)
		}
	}
	return due, nil
}

// fakeClientRepository holds clients by ID
type fakeClientRepository struct {
	invoicing.ClientRepository
	byID map[uuid.UUID]*invoicing.Client
}

func newFakeClientRepository() *fakeClientRepository {
	return &fakeClientRepository{byID: make(map[uuid.UUID]*invoicing.Client)}
}

func (r *fakeClientRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*invoicing.Client, error) {
	c, ok := r.byID[id]
	if !ok || c.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

type stubRenderer struct{ rendered int }

func (s *stubRenderer) RenderInvoice(_ context.Context, _ *invoicing.Invoice, _ *invoicing.Client) ([]byte, error) {
	s.rendered++
	return []byte("%PDF-1.7"), nil
}

type stubReminderSender struct{ sent int }

func (s *stubReminderSender) SendInvoiceReminder(_ context.Context, _ *invoicing.Client, _ *invoicing.Invoice) error {
	s.sent++
	return nil
}

func newTestInvoiceService(t *testing.T) (*InvoiceService, *fakeInvoiceRepository, *fakeClientRepository, *stubRenderer, *stubReminderSender) {
	t.Helper()
	invoices := newFakeInvoiceRepository()
	clients := newFakeClientRepository()
	renderer := &stubRenderer{}
	reminders := &stubReminderSender{}
	svc := NewInvoiceService(invoices, clients, renderer, reminders, zap.NewNop())
	return svc, invoices, clients, renderer, reminders
}

func seedClient(t *testing.T, repo *fakeClientRepository, ownerID uuid.UUID) *invoicing.Client {
	t.Helper()
	client, err := invoicing.NewClient(ownerID, "Acme Corp", "billing@acme.test", "", "Acme", "", "")
	require.NoError(t, err)
	repo.byID[client.ID] = client
	return client
}

func draftInput(clientID uuid.UUID) CreateInvoiceInput {
	return CreateInvoiceInput{
		ClientID:  clientID,
		IssueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC),
		VATRate:   decimal.NewFromInt(21),
		Items: []InvoiceItemInput{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("85.50")},
		},
	}
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	ownerID := uuid.New()

	t.Run("assigns sequential numbers within the month", func(t *testing.T) {
		svc, _, clients, _, _ := newTestInvoiceService(t)
		client := seedClient(t, clients, ownerID)

		first, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
		require.NoError(t, err)
		second, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
		require.NoError(t, err)

		assert.Equal(t, "INV-202603-00001", first.Number)
		assert.Equal(t, "INV-202603-00002", second.Number)
		assert.Equal(t, invoicing.InvoiceStatusDraft, first.Status)
		assert.True(t, first.Total.Equal(decimal.RequireFromString("1034.55")))
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		svc, _, _, _, _ := newTestInvoiceService(t)

		_, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(uuid.New()))

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
	})
}

func TestInvoiceService_Lifecycle(t *testing.T) {
	ownerID := uuid.New()

	t.Run("send then pay", func(t *testing.T) {
		svc, _, clients, _, _ := newTestInvoiceService(t)
		client := seedClient(t, clients, ownerID)
		invoice, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
		require.NoError(t, err)

		sent, err := svc.SendInvoice(context.Background(), ownerID, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.InvoiceStatusSent, sent.Status)
		assert.NotNil(t, sent.SentAt)

		paid, err := svc.PayInvoice(context.Background(), ownerID, invoice.ID, PayInvoiceInput{
			Method: "BANK_TRANSFER",
		})
		require.NoError(t, err)
		assert.Equal(t, invoicing.InvoiceStatusPaid, paid.Status)
		assert.NotNil(t, paid.PaidAt)
	})

	t.Run("cannot send an empty invoice", func(t *testing.T) {
		svc, _, clients, _, _ := newTestInvoiceService(t)
		client := seedClient(t, clients, ownerID)
		input := draftInput(client.ID)
		input.Items = nil
		invoice, err := svc.CreateInvoice(context.Background(), ownerID, input)
		require.NoError(t, err)

		_, err = svc.SendInvoice(context.Background(), ownerID, invoice.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("cannot pay a draft", func(t *testing.T) {
		svc, _, clients, _, _ := newTestInvoiceService(t)
		client := seedClient(t, clients, ownerID)
		invoice, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
		require.NoError(t, err)

		_, err = svc.PayInvoice(context.Background(), ownerID, invoice.ID, PayInvoiceInput{
			Method: "CASH",
		})
		require.Error(t, err)
	})

	t.Run("delete only works for drafts", func(t *testing.T) {
		svc, _, clients, _, _ := newTestInvoiceService(t)
		client := seedClient(t, clients, ownerID)
		invoice, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
		require.NoError(t, err)
		_, err = svc.SendInvoice(context.Background(), ownerID, invoice.ID)
		require.NoError(t, err)

		err = svc.DeleteInvoice(context.Background(), ownerID, invoice.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestInvoiceService_SweepOverdue(t *testing.T) {
	ownerID := uuid.New()
	svc, _, clients, _, _ := newTestInvoiceService(t)
	client := seedClient(t, clients, ownerID)

	invoice, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
	require.NoError(t, err)
	_, err = svc.SendInvoice(context.Background(), ownerID, invoice.ID)
	require.NoError(t, err)

	flagged, err := svc.SweepOverdue(context.Background(), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
	swept, err := svc.GetInvoice(context.Background(), ownerID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoicing.InvoiceStatusOverdue, swept.Status)
}

func TestInvoiceService_ReminderAndPDF(t *testing.T) {
	ownerID := uuid.New()
	svc, _, clients, renderer, reminders := newTestInvoiceService(t)
	client := seedClient(t, clients, ownerID)
	invoice, err := svc.CreateInvoice(context.Background(), ownerID, draftInput(client.ID))
	require.NoError(t, err)

	t.Run("reminder requires an open invoice", func(t *testing.T) {
		err := svc.SendReminder(context.Background(), ownerID, invoice.ID)
		require.Error(t, err)
		assert.Equal(t, 0, reminders.sent)
	})

	t.Run("reminder and PDF for a sent invoice", func(t *testing.T) {
		_, err := svc.SendInvoice(context.Background(), ownerID, invoice.ID)
		require.NoError(t, err)

		require.NoError(t, svc.SendReminder(context.Background(), ownerID, invoice.ID))
		assert.Equal(t, 1, reminders.sent)

		pdf, rendered, err := svc.RenderPDF(context.Background(), ownerID, invoice.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, pdf)
		assert.Equal(t, invoice.Number, rendered.Number)
		assert.Equal(t, 1, renderer.rendered)
	})
}
