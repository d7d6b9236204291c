package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// PDFRenderer renders an invoice into a PDF document
type PDFRenderer interface {
	RenderInvoice(ctx context.Context, invoice *invoicing.Invoice, client *invoicing.Client) ([]byte, error)
}

// ReminderSender delivers payment reminders for open invoices
type ReminderSender interface {
	SendInvoiceReminder(ctx context.Context, client *invoicing.Client, invoice *invoicing.Invoice) error
}

// InvoiceService handles invoice use cases
type InvoiceService struct {
	invoiceRepo invoicing.InvoiceRepository
	clientRepo  invoicing.ClientRepository
	renderer    PDFRenderer
	reminders   ReminderSender
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	clientRepo invoicing.ClientRepository,
	renderer PDFRenderer,
	reminders ReminderSender,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		renderer:    renderer,
		reminders:   reminders,
		logger:      logger,
	}
}

// CreateInvoice creates a draft invoice with a sequential number
func (s *InvoiceService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, input CreateInvoiceInput) (*invoicing.Invoice, error) {
	if _, err := s.clientRepo.FindByID(ctx, ownerID, input.ClientID); err != nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client not found")
	}

	seq, err := s.invoiceRepo.NextSequence(ctx, ownerID, input.IssueDate)
	if err != nil {
		s.logger.Error("Failed to allocate invoice number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create invoice")
	}
	number := invoicing.FormatNumber(input.IssueDate, seq)

	invoice, err := invoicing.NewInvoice(ownerID, input.ClientID, number,
		valueobject.Currency(input.Currency), input.IssueDate, input.DueDate, input.VATRate)
	if err != nil {
		return nil, err
	}
	invoice.Notes = input.Notes

	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := invoice.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		s.logger.Error("Failed to create invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create invoice")
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number))
	return invoice, nil
}

// GetInvoice returns one invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*invoicing.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
}

// ListInvoices returns a filtered, paginated page of invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, ownerID uuid.UUID, filter invoicing.InvoiceFilter) (shared.Paginated[*invoicing.Invoice], error) {
	return s.invoiceRepo.List(ctx, ownerID, filter)
}

// UpdateInvoice replaces a draft's header fields and items
func (s *InvoiceService) UpdateInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*invoicing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.UpdateDetails(input.IssueDate, input.DueDate, input.VATRate, input.Notes); err != nil {
		return nil, err
	}
	items, err := buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := invoice.ReplaceItems(items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to update invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update invoice")
	}
	return invoice, nil
}

// DeleteInvoice removes a draft invoice. Non-draft invoices must be cancelled
// so the numbering trail stays intact.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted; cancel instead")
	}
	return s.invoiceRepo.Delete(ctx, ownerID, invoiceID)
}

// SendInvoice transitions a draft to sent
func (s *InvoiceService) SendInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) (*invoicing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to mark invoice sent", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update invoice")
	}

	s.logger.Info("Invoice sent", zap.String("number", invoice.Number))
	return invoice, nil
}

// PayInvoice settles an open invoice
func (s *InvoiceService) PayInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID, input PayInvoiceInput) (*invoicing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(input.PaidAt, invoicing.PaymentMethod(input.Method)); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to mark invoice paid", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update invoice")
	}

	s.logger.Info("Invoice paid", zap.String("number", invoice.Number))
	return invoice, nil
}

// CancelInvoice voids a non-terminal invoice
func (s *InvoiceService) CancelInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID, input CancelInvoiceInput) (*invoicing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(input.Reason); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		s.logger.Error("Failed to cancel invoice", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update invoice")
	}

	s.logger.Info("Invoice cancelled", zap.String("number", invoice.Number))
	return invoice, nil
}

// RenderPDF produces a PDF document for the invoice
func (s *InvoiceService) RenderPDF(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]byte, *invoicing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, ownerID, invoice.ClientID)
	if err != nil {
		return nil, nil, err
	}
	if s.renderer == nil {
		return nil, nil, shared.NewDomainError("RENDER_UNAVAILABLE", "PDF rendering is not configured")
	}

	pdf, err := s.renderer.RenderInvoice(ctx, invoice, client)
	if err != nil {
		s.logger.Error("Failed to render invoice PDF",
			zap.String("number", invoice.Number), zap.Error(err))
		return nil, nil, shared.NewDomainError("RENDER_FAILED", "Failed to render invoice PDF")
	}
	return pdf, invoice, nil
}

// SendReminder delivers a payment reminder for an open invoice
func (s *InvoiceService) SendReminder(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "Reminders can only be sent for open invoices")
	}
	client, err := s.clientRepo.FindByID(ctx, ownerID, invoice.ClientID)
	if err != nil {
		return err
	}

	if err := s.reminders.SendInvoiceReminder(ctx, client, invoice); err != nil {
		s.logger.Error("Failed to send invoice reminder",
			zap.String("number", invoice.Number), zap.Error(err))
		return shared.NewDomainError("DELIVERY_FAILED", "Failed to send reminder")
	}

	s.logger.Info("Reminder sent", zap.String("number", invoice.Number))
	return nil
}

// Outstanding aggregates open invoice totals for the owner
func (s *InvoiceService) Outstanding(ctx context.Context, ownerID uuid.UUID) (invoicing.OutstandingTotals, error) {
	return s.invoiceRepo.Outstanding(ctx, ownerID)
}

// SweepOverdue marks every sent invoice past its due date as overdue and
// returns the number of invoices flagged. Used by the background scheduler.
func (s *InvoiceService) SweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.invoiceRepo.ListDueForOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, invoice := range due {
		if err := invoice.MarkOverdue(asOf); err != nil {
			continue
		}
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			s.logger.Error("Failed to flag overdue invoice",
				zap.String("number", invoice.Number), zap.Error(err))
			continue
		}
		flagged++
	}

	if flagged > 0 {
		s.logger.Info("Overdue sweep complete", zap.Int("flagged", flagged))
	}
	return flagged, nil
}

func buildItems(inputs []InvoiceItemInput) ([]invoicing.InvoiceItem, error) {
	items := make([]invoicing.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := invoicing.NewInvoiceItem(in.Description, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
