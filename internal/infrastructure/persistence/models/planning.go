package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/planning"
)

// GoalModel is the persistence model for planning.Goal
type GoalModel struct {
	OwnedModel
	Name         string          `gorm:"type:varchar(200);not null"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TargetDate   *time.Time      `gorm:""`
	AccountID    *uuid.UUID      `gorm:"type:uuid;index"`
	Achieved     bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GoalModel
func (GoalModel) TableName() string {
	return "goals"
}

// ToDomain converts the model to a domain goal
func (m *GoalModel) ToDomain() *planning.Goal {
	return &planning.Goal{
		OwnedEntity:  m.OwnedModel.ToDomainOwned(),
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		TargetDate:   m.TargetDate,
		AccountID:    m.AccountID,
		Achieved:     m.Achieved,
	}
}

// GoalModelFromDomain converts a domain goal to the persistence model
func GoalModelFromDomain(g *planning.Goal) *GoalModel {
	m := &GoalModel{
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		TargetDate:   g.TargetDate,
		AccountID:    g.AccountID,
		Achieved:     g.Achieved,
	}
	m.FromDomainOwned(g.OwnedEntity)
	return m
}

// LoanModel is the persistence model for planning.Loan
type LoanModel struct {
	OwnedModel
	Name       string          `gorm:"type:varchar(200);not null"`
	Principal  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AnnualRate decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	TermMonths int             `gorm:"not null"`
	StartDate  time.Time       `gorm:"not null"`
}

// TableName returns the table name for LoanModel
func (LoanModel) TableName() string {
	return "loans"
}

// ToDomain converts the model to a domain loan
func (m *LoanModel) ToDomain() *planning.Loan {
	return &planning.Loan{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		Name:        m.Name,
		Principal:   m.Principal,
		AnnualRate:  m.AnnualRate,
		TermMonths:  m.TermMonths,
		StartDate:   m.StartDate,
	}
}

// LoanModelFromDomain converts a domain loan to the persistence model
func LoanModelFromDomain(l *planning.Loan) *LoanModel {
	m := &LoanModel{
		Name:       l.Name,
		Principal:  l.Principal,
		AnnualRate: l.AnnualRate,
		TermMonths: l.TermMonths,
		StartDate:  l.StartDate,
	}
	m.FromDomainOwned(l.OwnedEntity)
	return m
}
