package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// AccountType represents the kind of financial account
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeLoan       AccountType = "LOAN"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard,
		AccountTypeCash, AccountTypeInvestment, AccountTypeLoan:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Account is a financial account aggregate root.
// The current balance is never stored: it is the initial snapshot plus
// the signed sum of transactions dated after the snapshot date.
type Account struct {
	shared.OwnedEntity
	Name            string               `json:"name"`
	Type            AccountType          `json:"type"`
	Currency        valueobject.Currency `json:"currency"`
	InitialBalance  decimal.Decimal      `json:"initial_balance"`
	SnapshotDate    time.Time            `json:"snapshot_date"`
	Institution     string               `json:"institution"`
	Archived        bool                 `json:"archived"`
}

// NewAccount creates a new account with an opening balance snapshot
func NewAccount(ownerID uuid.UUID, name string, accountType AccountType, currency valueobject.Currency, initialBalance decimal.Decimal, snapshotDate time.Time) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot exceed 100 characters")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if snapshotDate.IsZero() {
		snapshotDate = time.Now()
	}

	return &Account{
		OwnedEntity:    shared.NewOwnedEntity(ownerID),
		Name:           name,
		Type:           accountType,
		Currency:       currency,
		InitialBalance: initialBalance,
		SnapshotDate:   snapshotDate,
	}, nil
}

// Rename changes the account name
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.Touch()
	return nil
}

// Resnapshot replaces the opening balance snapshot. Transactions dated on or
// before the new snapshot date no longer contribute to the balance.
func (a *Account) Resnapshot(balance decimal.Decimal, date time.Time) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Snapshot date cannot be empty")
	}
	a.InitialBalance = balance
	a.SnapshotDate = date
	a.Touch()
	return nil
}

// Archive hides the account from active listings without deleting history
func (a *Account) Archive() {
	a.Archived = true
	a.Touch()
}

// Unarchive restores an archived account
func (a *Account) Unarchive() {
	a.Archived = false
	a.Touch()
}

// BalanceFrom reconstructs the balance given the transaction delta since the
// snapshot date
func (a *Account) BalanceFrom(delta decimal.Decimal) valueobject.Money {
	m, _ := valueobject.NewMoney(a.InitialBalance.Add(delta), a.Currency)
	return m
}
