package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Budget caps expense spending for one category in one calendar month.
// Month is normalized to the first day at midnight UTC; the pair
// (owner, category, month) is unique.
type Budget struct {
	shared.OwnedEntity
	CategoryID uuid.UUID       `json:"category_id"`
	Month      time.Time       `json:"month"`
	Limit      decimal.Decimal `json:"limit"`
}

// NormalizeMonth truncates a date to the first day of its month in UTC
func NormalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NewBudget creates a budget for a category and month
func NewBudget(ownerID, categoryID uuid.UUID, month time.Time, limit decimal.Decimal) (*Budget, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_MONTH", "Budget month cannot be empty")
	}
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_LIMIT", "Budget limit must be positive")
	}

	return &Budget{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		CategoryID:  categoryID,
		Month:       NormalizeMonth(month),
		Limit:       limit,
	}, nil
}

// SetLimit changes the budget cap
func (b *Budget) SetLimit(limit decimal.Decimal) error {
	if limit.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_LIMIT", "Budget limit must be positive")
	}
	b.Limit = limit
	b.Touch()
	return nil
}

// Progress reports spending against a budget
type Progress struct {
	Budget       *Budget
	CategoryName string
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Utilization  decimal.Decimal
	OverBudget   bool
}

// ComputeProgress derives the utilization figures from the spent amount.
// Utilization is a percentage rounded to two decimals.
func ComputeProgress(b *Budget, categoryName string, spent decimal.Decimal) Progress {
	remaining := b.Limit.Sub(spent)
	utilization := decimal.Zero
	if b.Limit.IsPositive() {
		utilization = spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return Progress{
		Budget:       b,
		CategoryName: categoryName,
		Spent:        spent.Round(2),
		Remaining:    remaining.Round(2),
		Utilization:  utilization,
		OverBudget:   spent.GreaterThan(b.Limit),
	}
}

// Repository defines persistence operations for budgets
type Repository interface {
	Create(ctx context.Context, budget *Budget) error
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error)
	FindByCategoryMonth(ctx context.Context, ownerID, categoryID uuid.UUID, month time.Time) (*Budget, error)
	ListByMonth(ctx context.Context, ownerID uuid.UUID, month time.Time) ([]*Budget, error)
	// SpentInMonth sums expense transactions for the category within the month,
	// skipping soft-deleted rows; returns the unsigned spent amount.
	SpentInMonth(ctx context.Context, ownerID, categoryID uuid.UUID, month time.Time) (decimal.Decimal, error)
}
