package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientInput contains client fields for create and update
type ClientInput struct {
	Name      string `json:"name" binding:"required,max=200"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	Company   string `json:"company" binding:"omitempty,max=200"`
	TaxNumber string `json:"tax_number" binding:"omitempty,max=50"`
	Address   string `json:"address"`
}

// InvoiceItemInput is one billable line in a request
type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceInput contains the data for a new draft invoice
type CreateInvoiceInput struct {
	ClientID  uuid.UUID          `json:"client_id" binding:"required"`
	Currency  string             `json:"currency" binding:"omitempty,len=3"`
	IssueDate time.Time          `json:"issue_date" binding:"required"`
	DueDate   time.Time          `json:"due_date" binding:"required"`
	VATRate   decimal.Decimal    `json:"vat_rate"`
	Notes     string             `json:"notes"`
	Items     []InvoiceItemInput `json:"items" binding:"dive"`
}

// UpdateInvoiceInput replaces the draft's header fields and items
type UpdateInvoiceInput struct {
	IssueDate time.Time          `json:"issue_date" binding:"required"`
	DueDate   time.Time          `json:"due_date" binding:"required"`
	VATRate   decimal.Decimal    `json:"vat_rate"`
	Notes     string             `json:"notes"`
	Items     []InvoiceItemInput `json:"items" binding:"dive"`
}

// PayInvoiceInput records how and when the invoice was settled
type PayInvoiceInput struct {
	PaidAt time.Time `json:"paid_at"`
	Method string    `json:"method" binding:"required,oneof=BANK_TRANSFER CARD CASH OTHER"`
}

// CancelInvoiceInput carries the cancellation reason
type CancelInvoiceInput struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
