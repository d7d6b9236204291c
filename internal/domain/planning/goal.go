package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Goal is a savings target, optionally linked to an account whose balance
// measures progress
type Goal struct {
	shared.OwnedEntity
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   *time.Time      `json:"target_date"`
	AccountID    *uuid.UUID      `json:"account_id"`
	Achieved     bool            `json:"achieved"`
}

// NewGoal creates a new savings goal
func NewGoal(ownerID uuid.UUID, name string, targetAmount decimal.Decimal, targetDate *time.Time, accountID *uuid.UUID) (*Goal, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Goal name cannot be empty")
	}
	if targetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Target amount must be positive")
	}
	return &Goal{
		OwnedEntity:  shared.NewOwnedEntity(ownerID),
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		AccountID:    accountID,
	}, nil
}

// Update changes the mutable goal fields
func (g *Goal) Update(name string, targetAmount decimal.Decimal, targetDate *time.Time, accountID *uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Goal name cannot be empty")
	}
	if targetAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Target amount must be positive")
	}
	g.Name = name
	g.TargetAmount = targetAmount
	g.TargetDate = targetDate
	g.AccountID = accountID
	g.Touch()
	return nil
}

// GoalProgress reports saved amount against the target
type GoalProgress struct {
	Goal       *Goal
	Saved      decimal.Decimal
	Percentage decimal.Decimal
	Achieved   bool
}

// ComputeGoalProgress derives the percentage (rounded to two decimals,
// capped at 100) from the saved amount
func ComputeGoalProgress(g *Goal, saved decimal.Decimal) GoalProgress {
	pct := decimal.Zero
	if g.TargetAmount.IsPositive() {
		pct = saved.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
		if pct.GreaterThan(decimal.NewFromInt(100)) {
			pct = decimal.NewFromInt(100)
		}
		if pct.IsNegative() {
			pct = decimal.Zero
		}
	}
	return GoalProgress{
		Goal:       g,
		Saved:      saved.Round(2),
		Percentage: pct,
		Achieved:   saved.GreaterThanOrEqual(g.TargetAmount),
	}
}
