package budget

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/budget"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
)

// CreateBudgetInput contains the data for a new monthly budget
type CreateBudgetInput struct {
	CategoryID uuid.UUID       `json:"category_id" binding:"required"`
	Month      time.Time       `json:"month" binding:"required"`
	Limit      decimal.Decimal `json:"limit" binding:"required"`
}

// UpdateBudgetInput changes the budget cap
type UpdateBudgetInput struct {
	Limit decimal.Decimal `json:"limit" binding:"required"`
}

// Service handles budget use cases
type Service struct {
	budgetRepo   budget.Repository
	categoryRepo ledger.CategoryRepository
	logger       *zap.Logger
}

// NewService creates a new budget service
func NewService(budgetRepo budget.Repository, categoryRepo ledger.CategoryRepository, logger *zap.Logger) *Service {
	return &Service{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateBudget sets a spending cap for a category and month. Only one budget
// per (category, month) pair is allowed.
func (s *Service) CreateBudget(ctx context.Context, ownerID uuid.UUID, input CreateBudgetInput) (*budget.Budget, error) {
	category, err := s.categoryRepo.FindByID(ctx, ownerID, input.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	}
	if category.Type != ledger.CategoryTypeExpense {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Budgets apply to expense categories only")
	}

	if _, err := s.budgetRepo.FindByCategoryMonth(ctx, ownerID, input.CategoryID, input.Month); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A budget for this category and month already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check budget uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create budget")
	}

	b, err := budget.NewBudget(ownerID, input.CategoryID, input.Month, input.Limit)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Create(ctx, b); err != nil {
		s.logger.Error("Failed to create budget", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create budget")
	}

	s.logger.Info("Budget created",
		zap.String("budget_id", b.ID.String()),
		zap.Time("month", b.Month))
	return b, nil
}

// GetProgress returns a budget with its month-to-date spend
func (s *Service) GetProgress(ctx context.Context, ownerID, budgetID uuid.UUID) (*budget.Progress, error) {
	b, err := s.budgetRepo.FindByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.progressFor(ctx, ownerID, b)
}

// ListProgressByMonth returns every budget for the month with its spend
func (s *Service) ListProgressByMonth(ctx context.Context, ownerID uuid.UUID, month time.Time) ([]*budget.Progress, error) {
	budgets, err := s.budgetRepo.ListByMonth(ctx, ownerID, month)
	if err != nil {
		return nil, err
	}

	progress := make([]*budget.Progress, len(budgets))
	for i, b := range budgets {
		p, err := s.progressFor(ctx, ownerID, b)
		if err != nil {
			return nil, err
		}
		progress[i] = p
	}
	return progress, nil
}

// UpdateBudget changes the budget cap
func (s *Service) UpdateBudget(ctx context.Context, ownerID, budgetID uuid.UUID, input UpdateBudgetInput) (*budget.Budget, error) {
	b, err := s.budgetRepo.FindByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := b.SetLimit(input.Limit); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to update budget", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update budget")
	}
	return b, nil
}

// DeleteBudget removes a budget
func (s *Service) DeleteBudget(ctx context.Context, ownerID, budgetID uuid.UUID) error {
	return s.budgetRepo.Delete(ctx, ownerID, budgetID)
}

func (s *Service) progressFor(ctx context.Context, ownerID uuid.UUID, b *budget.Budget) (*budget.Progress, error) {
	spent, err := s.budgetRepo.SpentInMonth(ctx, ownerID, b.CategoryID, b.Month)
	if err != nil {
		s.logger.Error("Failed to compute budget spend", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute budget progress")
	}

	categoryName := ""
	if category, err := s.categoryRepo.FindByID(ctx, ownerID, b.CategoryID); err == nil {
		categoryName = category.Name
	}

	p := budget.ComputeProgress(b, categoryName, spent)
	return &p, nil
}
