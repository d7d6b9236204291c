package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// Transaction is a single ledger entry on an account. Amount is stored
// signed: positive for inflows, negative for outflows, so balances are a
// plain SUM over the column.
type Transaction struct {
	shared.OwnedEntity
	AccountID     uuid.UUID       `json:"account_id"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	AttachmentKey string          `json:"attachment_key"`
	TransferID    *uuid.UUID      `json:"transfer_id"`
	CounterpartID *uuid.UUID      `json:"counterpart_id"`
	DeletedAt     *time.Time      `json:"-"`
}

// NewTransaction creates a transaction. The caller passes a positive amount;
// the sign is derived from the type.
func NewTransaction(ownerID, accountID uuid.UUID, categoryID *uuid.UUID, txType TransactionType, amount decimal.Decimal, date time.Time, description string) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	signed := amount
	if txType == TransactionTypeExpense {
		signed = amount.Neg()
	}

	return &Transaction{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      signed,
		Date:        date,
		Description: description,
	}, nil
}

// NewTransferPair creates the two legs of a transfer between accounts:
// an outflow on the source and an inflow on the target, linked by a shared
// transfer ID. The pair must be persisted atomically.
func NewTransferPair(ownerID, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, date time.Time, description string) (*Transaction, *Transaction, error) {
	if fromAccountID == uuid.Nil || toAccountID == uuid.Nil {
		return nil, nil, shared.NewDomainError("INVALID_ACCOUNT", "Both transfer accounts are required")
	}
	if fromAccountID == toAccountID {
		return nil, nil, shared.NewDomainError("INVALID_TRANSFER", "Cannot transfer to the same account")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return nil, nil, shared.NewDomainError("INVALID_DATE", "Transaction date cannot be empty")
	}

	transferID := uuid.New()

	out := &Transaction{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		AccountID:   fromAccountID,
		Type:        TransactionTypeTransfer,
		Amount:      amount.Neg(),
		Date:        date,
		Description: description,
		TransferID:  &transferID,
	}
	in := &Transaction{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		AccountID:   toAccountID,
		Type:        TransactionTypeTransfer,
		Amount:      amount,
		Date:        date,
		Description: description,
		TransferID:  &transferID,
	}
	out.CounterpartID = &in.ID
	in.CounterpartID = &out.ID

	return out, in, nil
}

// Update changes the mutable fields. Transfer legs cannot be retyped.
func (t *Transaction) Update(categoryID *uuid.UUID, amount decimal.Decimal, date time.Time, description, notes string) error {
	if t.Type == TransactionTypeTransfer {
		return shared.NewDomainError("INVALID_STATE", "Transfer legs cannot be edited; delete and recreate the transfer")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Transaction date cannot be empty")
	}

	signed := amount
	if t.Type == TransactionTypeExpense {
		signed = amount.Neg()
	}
	t.CategoryID = categoryID
	t.Amount = signed
	t.Date = date
	t.Description = description
	t.Notes = notes
	t.Touch()
	return nil
}

// SetAttachment records the object storage key of an uploaded receipt
func (t *Transaction) SetAttachment(key string) {
	t.AttachmentKey = key
	t.Touch()
}

// IsTransfer returns true for either leg of a transfer
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// IsDeleted returns true if the transaction is soft deleted
func (t *Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}

// MagnitudeAmount returns the unsigned amount
func (t *Transaction) MagnitudeAmount() decimal.Decimal {
	return t.Amount.Abs()
}
