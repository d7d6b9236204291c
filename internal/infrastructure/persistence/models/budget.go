package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/budget"
)

// BudgetModel is the persistence model for budget.Budget
type BudgetModel struct {
	OwnedModel
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Month      time.Time       `gorm:"not null;index"`
	LimitAmt   decimal.Decimal `gorm:"column:limit_amount;type:numeric(18,2);not null"`
}

// TableName returns the table name for BudgetModel
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the model to a domain budget
func (m *BudgetModel) ToDomain() *budget.Budget {
	return &budget.Budget{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		CategoryID:  m.CategoryID,
		Month:       m.Month,
		Limit:       m.LimitAmt,
	}
}

// BudgetModelFromDomain converts a domain budget to the persistence model
func BudgetModelFromDomain(b *budget.Budget) *BudgetModel {
	m := &BudgetModel{
		CategoryID: b.CategoryID,
		Month:      b.Month,
		LimitAmt:   b.Limit,
	}
	m.FromDomainOwned(b.OwnedEntity)
	return m
}
