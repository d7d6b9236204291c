package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// InvoiceFilter narrows invoice queries
type InvoiceFilter struct {
	shared.Filter
	ClientID  *uuid.UUID
	Status    *InvoiceStatus
	IssueFrom *time.Time
	IssueTo   *time.Time
}

// OutstandingTotals summarizes open invoice amounts
type OutstandingTotals struct {
	Outstanding  decimal.Decimal
	Overdue      decimal.Decimal
	OpenCount    int64
	OverdueCount int64
}

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Client, error)
	List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[*Client], error)
	HasInvoices(ctx context.Context, ownerID, clientID uuid.UUID) (bool, error)
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, ownerID uuid.UUID, filter InvoiceFilter) (shared.Paginated[*Invoice], error)
	// NextSequence returns the next invoice sequence number for the owner
	// within the issue month
	NextSequence(ctx context.Context, ownerID uuid.UUID, issueDate time.Time) (int64, error)
	// ListDueForOverdue returns SENT invoices past their due date, across all
	// owners, for the background sweep
	ListDueForOverdue(ctx context.Context, asOf time.Time) ([]*Invoice, error)
	Outstanding(ctx context.Context, ownerID uuid.UUID) (OutstandingTotals, error)
}
