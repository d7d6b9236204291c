package invoicing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice is in a terminal state
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// IsOpen returns true while payment is still expected
func (s InvoiceStatus) IsOpen() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusOverdue
}

// PaymentMethod records how an invoice was settled
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCash, PaymentMethodOther:
		return true
	}
	return false
}

// InvoiceItem is a billable line on an invoice
type InvoiceItem struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// NewInvoiceItem creates a line item; the line total is quantity times unit
// price rounded to two decimals.
func NewInvoiceItem(description string, quantity, unitPrice decimal.Decimal) (InvoiceItem, error) {
	if description == "" {
		return InvoiceItem{}, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return InvoiceItem{}, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return InvoiceItem{}, shared.NewDomainError("INVALID_PRICE", "Item unit price cannot be negative")
	}
	return InvoiceItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   quantity.Mul(unitPrice).Round(2),
	}, nil
}

// Invoice is the billing aggregate root. Monetary totals are recomputed from
// the items on every mutation and rounded to two decimals.
type Invoice struct {
	shared.OwnedEntity
	Number      string               `json:"number"`
	ClientID    uuid.UUID            `json:"client_id"`
	Status      InvoiceStatus        `json:"status"`
	Currency    valueobject.Currency `json:"currency"`
	IssueDate   time.Time            `json:"issue_date"`
	DueDate     time.Time            `json:"due_date"`
	Items       []InvoiceItem        `json:"items"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	VATRate     decimal.Decimal      `json:"vat_rate"`
	VATAmount   decimal.Decimal      `json:"vat_amount"`
	Total       decimal.Decimal      `json:"total"`
	Notes       string               `json:"notes"`
	SentAt      *time.Time           `json:"sent_at"`
	PaidAt      *time.Time           `json:"paid_at"`
	PaidMethod  *PaymentMethod       `json:"paid_method"`
	CancelledAt *time.Time           `json:"cancelled_at"`
	CancelNote  string               `json:"cancel_note"`
}

// FormatNumber builds the sequential invoice number for a given issue month
func FormatNumber(issueDate time.Time, sequence int64) string {
	return fmt.Sprintf("INV-%s-%05d", issueDate.Format("200601"), sequence)
}

// NewInvoice creates a draft invoice
func NewInvoice(ownerID, clientID uuid.UUID, number string, currency valueobject.Currency, issueDate, dueDate time.Time, vatRate decimal.Decimal) (*Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if issueDate.IsZero() || dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Issue and due dates are required")
	}
	if dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	inv := &Invoice{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Number:      number,
		ClientID:    clientID,
		Status:      InvoiceStatusDraft,
		Currency:    currency,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		VATRate:     vatRate,
	}
	inv.recalculate()
	return inv, nil
}

// recalculate rebuilds subtotal, VAT amount and total from the items
func (i *Invoice) recalculate() {
	subtotal := decimal.Zero
	for _, item := range i.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	i.Subtotal = subtotal.Round(2)
	i.VATAmount = subtotal.Mul(i.VATRate).Div(decimal.NewFromInt(100)).Round(2)
	i.Total = i.Subtotal.Add(i.VATAmount)
}

// ReplaceItems swaps the full item list (only allowed in draft)
func (i *Invoice) ReplaceItems(items []InvoiceItem) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be edited")
	}
	i.Items = items
	i.recalculate()
	i.Touch()
	return nil
}

// AddItem appends a line item (only allowed in draft)
func (i *Invoice) AddItem(item InvoiceItem) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be edited")
	}
	i.Items = append(i.Items, item)
	i.recalculate()
	i.Touch()
	return nil
}

// UpdateDetails changes header fields (only allowed in draft)
func (i *Invoice) UpdateDetails(issueDate, dueDate time.Time, vatRate decimal.Decimal, notes string) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be edited")
	}
	if issueDate.IsZero() || dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Issue and due dates are required")
	}
	if dueDate.Before(issueDate) {
		return shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}
	i.IssueDate = issueDate
	i.DueDate = dueDate
	i.VATRate = vatRate
	i.Notes = notes
	i.recalculate()
	i.Touch()
	return nil
}

// MarkSent transitions a draft invoice to sent. An invoice without items
// cannot leave draft.
func (i *Invoice) MarkSent() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", i.Status))
	}
	if len(i.Items) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot send an invoice without items")
	}
	now := time.Now()
	i.Status = InvoiceStatusSent
	i.SentAt = &now
	i.UpdatedAt = now
	return nil
}

// MarkPaid settles a sent or overdue invoice
func (i *Invoice) MarkPaid(paidAt time.Time, method PaymentMethod) error {
	if !i.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay invoice in %s status", i.Status))
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	i.Status = InvoiceStatusPaid
	i.PaidAt = &paidAt
	i.PaidMethod = &method
	i.Touch()
	return nil
}

// MarkOverdue flags a sent invoice whose due date has passed
func (i *Invoice) MarkOverdue(now time.Time) error {
	if i.Status != InvoiceStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice overdue in %s status", i.Status))
	}
	if !now.After(i.DueDate) {
		return shared.NewDomainError("INVALID_STATE", "Invoice is not past its due date")
	}
	i.Status = InvoiceStatusOverdue
	i.Touch()
	return nil
}

// Cancel voids a non-terminal invoice
func (i *Invoice) Cancel(reason string) error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", i.Status))
	}
	now := time.Now()
	i.Status = InvoiceStatusCancelled
	i.CancelledAt = &now
	i.CancelNote = reason
	i.UpdatedAt = now
	return nil
}

// IsDraft returns true while the invoice is editable
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

