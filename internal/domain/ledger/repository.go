package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// TransactionFilter narrows transaction queries
type TransactionFilter struct {
	shared.Filter
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *TransactionType
	DateFrom   *time.Time
	DateTo     *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// MonthlySummary aggregates a single month of ledger activity
type MonthlySummary struct {
	Month   time.Time       `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// AccountRepository defines persistence operations for accounts
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	List(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*Account, error)
	// BalanceDelta returns the signed transaction sum after the account's
	// snapshot date, excluding soft-deleted rows.
	BalanceDelta(ctx context.Context, ownerID, accountID uuid.UUID, after time.Time) (decimal.Decimal, error)
	HasTransactions(ctx context.Context, ownerID, accountID uuid.UUID) (bool, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Category, error)
	List(ctx context.Context, ownerID uuid.UUID, categoryType *CategoryType) ([]*Category, error)
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string, categoryType CategoryType) (bool, error)
	IsInUse(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	// CreatePair persists both legs of a transfer in one database transaction
	CreatePair(ctx context.Context, out, in *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	// SoftDelete marks the transaction (and its transfer counterpart, if any)
	// as deleted
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) (shared.Paginated[*Transaction], error)
	ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*Transaction, error)
	Summarize(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (MonthlySummary, error)
}
