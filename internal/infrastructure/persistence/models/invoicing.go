package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// ClientModel is the persistence model for invoicing.Client
type ClientModel struct {
	OwnedModel
	Name      string `gorm:"type:varchar(200);not null"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(50)"`
	Company   string `gorm:"type:varchar(200)"`
	TaxNumber string `gorm:"type:varchar(50)"`
	Address   string `gorm:"type:text"`
	Archived  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for ClientModel
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the model to a domain client
func (m *ClientModel) ToDomain() *invoicing.Client {
	return &invoicing.Client{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Company:     m.Company,
		TaxNumber:   m.TaxNumber,
		Address:     m.Address,
		Archived:    m.Archived,
	}
}

// ClientModelFromDomain converts a domain client to the persistence model
func ClientModelFromDomain(c *invoicing.Client) *ClientModel {
	m := &ClientModel{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		TaxNumber: c.TaxNumber,
		Address:   c.Address,
		Archived:  c.Archived,
	}
	m.FromDomainOwned(c.OwnedEntity)
	return m
}

// InvoiceModel is the persistence model for invoicing.Invoice
type InvoiceModel struct {
	OwnedModel
	// Unique per owner; the composite index lives in the SQL migrations
	Number      string             `gorm:"type:varchar(30);not null;index"`
	ClientID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Status      string             `gorm:"type:varchar(12);not null;index"`
	Currency    string             `gorm:"type:varchar(3);not null"`
	IssueDate   time.Time          `gorm:"not null;index"`
	DueDate     time.Time          `gorm:"not null;index"`
	Subtotal    decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	VATRate     decimal.Decimal    `gorm:"type:numeric(5,2);not null"`
	VATAmount   decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	Total       decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	Notes       string             `gorm:"type:text"`
	SentAt      *time.Time         `gorm:""`
	PaidAt      *time.Time         `gorm:"index"`
	PaidMethod  *string            `gorm:"type:varchar(20)"`
	CancelledAt *time.Time         `gorm:""`
	CancelNote  string             `gorm:"type:text"`
	Items       []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for one invoice line
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Position    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for InvoiceItemModel
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the model to a domain invoice
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	items := make([]invoicing.InvoiceItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = invoicing.InvoiceItem{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	var method *invoicing.PaymentMethod
	if m.PaidMethod != nil {
		pm := invoicing.PaymentMethod(*m.PaidMethod)
		method = &pm
	}

	return &invoicing.Invoice{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		Number:      m.Number,
		ClientID:    m.ClientID,
		Status:      invoicing.InvoiceStatus(m.Status),
		Currency:    valueobject.Currency(m.Currency),
		IssueDate:   m.IssueDate,
		DueDate:     m.DueDate,
		Items:       items,
		Subtotal:    m.Subtotal,
		VATRate:     m.VATRate,
		VATAmount:   m.VATAmount,
		Total:       m.Total,
		Notes:       m.Notes,
		SentAt:      m.SentAt,
		PaidAt:      m.PaidAt,
		PaidMethod:  method,
		CancelledAt: m.CancelledAt,
		CancelNote:  m.CancelNote,
	}
}

// InvoiceModelFromDomain converts a domain invoice to the persistence model
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	items := make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemModel{
			ID:          item.ID,
			InvoiceID:   inv.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			Position:    i,
		}
	}

	var method *string
	if inv.PaidMethod != nil {
		s := string(*inv.PaidMethod)
		method = &s
	}

	m := &InvoiceModel{
		Number:      inv.Number,
		ClientID:    inv.ClientID,
		Status:      string(inv.Status),
		Currency:    string(inv.Currency),
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
		Subtotal:    inv.Subtotal,
		VATRate:     inv.VATRate,
		VATAmount:   inv.VATAmount,
		Total:       inv.Total,
		Notes:       inv.Notes,
		SentAt:      inv.SentAt,
		PaidAt:      inv.PaidAt,
		PaidMethod:  method,
		CancelledAt: inv.CancelledAt,
		CancelNote:  inv.CancelNote,
		Items:       items,
	}
	m.FromDomainOwned(inv.OwnedEntity)
	return m
}
