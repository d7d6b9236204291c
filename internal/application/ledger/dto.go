package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/ledger"
)

// CreateAccountInput contains the data for opening an account
type CreateAccountInput struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Type           string          `json:"type" binding:"required"`
	Currency       string          `json:"currency" binding:"omitempty,len=3"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	SnapshotDate   time.Time       `json:"snapshot_date"`
	Institution    string          `json:"institution" binding:"omitempty,max=200"`
}

// UpdateAccountInput contains mutable account fields
type UpdateAccountInput struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Institution *string `json:"institution" binding:"omitempty,max=200"`
}

// ResnapshotInput replaces an account's opening balance snapshot
type ResnapshotInput struct {
	Balance decimal.Decimal `json:"balance"`
	Date    time.Time       `json:"date" binding:"required"`
}

// AccountView is an account with its derived balance
type AccountView struct {
	Account *ledger.Account `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateCategoryInput contains the data for a new category
type CreateCategoryInput struct {
	Name               string     `json:"name" binding:"required,max=100"`
	Type               string     `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	ParentID           *uuid.UUID `json:"parent_id"`
	Color              string     `json:"color" binding:"omitempty,max=20"`
	ExcludeFromReports bool       `json:"exclude_from_reports"`
}

// UpdateCategoryInput contains mutable category fields
type UpdateCategoryInput struct {
	Name               string `json:"name" binding:"required,max=100"`
	Color              string `json:"color" binding:"omitempty,max=20"`
	ExcludeFromReports bool   `json:"exclude_from_reports"`
}

// CreateTransactionInput contains the data for a new ledger entry.
// Amount is unsigned; the sign is derived from the type.
type CreateTransactionInput struct {
	AccountID   uuid.UUID       `json:"account_id" binding:"required"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	Notes       string          `json:"notes"`
}

// UpdateTransactionInput contains mutable transaction fields
type UpdateTransactionInput struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	Notes       string          `json:"notes"`
}

// CreateTransferInput contains the data for a transfer between accounts
type CreateTransferInput struct {
	FromAccountID uuid.UUID       `json:"from_account_id" binding:"required"`
	ToAccountID   uuid.UUID       `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"omitempty,max=500"`
}

// TransferResult returns both created legs
type TransferResult struct {
	Out *ledger.Transaction `json:"out"`
	In  *ledger.Transaction `json:"in"`
}
