package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// AccountModel is the persistence model for ledger.Account
type AccountModel struct {
	OwnedModel
	Name           string          `gorm:"type:varchar(100);not null"`
	Type           string          `gorm:"type:varchar(20);not null;index"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	SnapshotDate   time.Time       `gorm:"not null"`
	Institution    string          `gorm:"type:varchar(200)"`
	Archived       bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for AccountModel
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the model to a domain account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		OwnedEntity:    m.OwnedModel.ToDomainOwned(),
		Name:           m.Name,
		Type:           ledger.AccountType(m.Type),
		Currency:       valueobject.Currency(m.Currency),
		InitialBalance: m.InitialBalance,
		SnapshotDate:   m.SnapshotDate,
		Institution:    m.Institution,
		Archived:       m.Archived,
	}
}

// AccountModelFromDomain converts a domain account to the persistence model
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{
		Name:           a.Name,
		Type:           string(a.Type),
		Currency:       string(a.Currency),
		InitialBalance: a.InitialBalance,
		SnapshotDate:   a.SnapshotDate,
		Institution:    a.Institution,
		Archived:       a.Archived,
	}
	m.FromDomainOwned(a.OwnedEntity)
	return m
}

// CategoryModel is the persistence model for ledger.Category
type CategoryModel struct {
	OwnedModel
	Name               string     `gorm:"type:varchar(100);not null"`
	Type               string     `gorm:"type:varchar(10);not null;index"`
	ParentID           *uuid.UUID `gorm:"type:uuid;index"`
	Color              string     `gorm:"type:varchar(20)"`
	ExcludeFromReports bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for CategoryModel
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain category
func (m *CategoryModel) ToDomain() *ledger.Category {
	return &ledger.Category{
		OwnedEntity:        m.OwnedModel.ToDomainOwned(),
		Name:               m.Name,
		Type:               ledger.CategoryType(m.Type),
		ParentID:           m.ParentID,
		Color:              m.Color,
		ExcludeFromReports: m.ExcludeFromReports,
	}
}

// CategoryModelFromDomain converts a domain category to the persistence model
func CategoryModelFromDomain(c *ledger.Category) *CategoryModel {
	m := &CategoryModel{
		Name:               c.Name,
		Type:               string(c.Type),
		ParentID:           c.ParentID,
		Color:              c.Color,
		ExcludeFromReports: c.ExcludeFromReports,
	}
	m.FromDomainOwned(c.OwnedEntity)
	return m
}

// TransactionModel is the persistence model for ledger.Transaction
type TransactionModel struct {
	OwnedModel
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Description   string          `gorm:"type:varchar(500)"`
	Notes         string          `gorm:"type:text"`
	AttachmentKey string          `gorm:"type:varchar(500)"`
	TransferID    *uuid.UUID      `gorm:"type:uuid;index"`
	CounterpartID *uuid.UUID      `gorm:"type:uuid"`
	DeletedAt     *time.Time      `gorm:"index"`
}

// TableName returns the table name for TransactionModel
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the model to a domain transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		OwnedEntity:   m.OwnedModel.ToDomainOwned(),
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Type:          ledger.TransactionType(m.Type),
		Amount:        m.Amount,
		Date:          m.Date,
		Description:   m.Description,
		Notes:         m.Notes,
		AttachmentKey: m.AttachmentKey,
		TransferID:    m.TransferID,
		CounterpartID: m.CounterpartID,
		DeletedAt:     m.DeletedAt,
	}
}

// TransactionModelFromDomain converts a domain transaction to the persistence model
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Date:          t.Date,
		Description:   t.Description,
		Notes:         t.Notes,
		AttachmentKey: t.AttachmentKey,
		TransferID:    t.TransferID,
		CounterpartID: t.CounterpartID,
		DeletedAt:     t.DeletedAt,
	}
	m.FromDomainOwned(t.OwnedEntity)
	return m
}
