package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/budget"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormBudgetRepository implements budget.Repository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// Create inserts a new budget
func (r *GormBudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	return r.db.WithContext(ctx).Create(models.BudgetModelFromDomain(b)).Error
}

// Update saves budget changes
func (r *GormBudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	return r.db.WithContext(ctx).Save(models.BudgetModelFromDomain(b)).Error
}

// Delete removes a budget
func (r *GormBudgetRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a budget by ID for the owner
func (r *GormBudgetRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategoryMonth finds the budget for a category and month
func (r *GormBudgetRepository) FindByCategoryMonth(ctx context.Context, ownerID, categoryID uuid.UUID, month time.Time) (*budget.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND category_id = ? AND month = ?", ownerID, categoryID, budget.NormalizeMonth(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByMonth returns all of the owner's budgets for the month
func (r *GormBudgetRepository) ListByMonth(ctx context.Context, ownerID uuid.UUID, month time.Time) ([]*budget.Budget, error) {
	var budgetModels []models.BudgetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND month = ?", ownerID, budget.NormalizeMonth(month)).
		Order("created_at ASC").
		Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]*budget.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToDomain()
	}
	return budgets, nil
}

// SpentInMonth sums expense transactions for the category inside the month.
// Expense amounts are stored negative, so the sum is negated to report spend
// as a positive figure.
func (r *GormBudgetRepository) SpentInMonth(ctx context.Context, ownerID, categoryID uuid.UUID, month time.Time) (decimal.Decimal, error) {
	start := budget.NormalizeMonth(month)
	end := start.AddDate(0, 1, 0)

	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(-amount), 0) as total").
		Where("owner_id = ? AND category_id = ? AND type = 'EXPENSE' AND date >= ? AND date < ? AND deleted_at IS NULL",
			ownerID, categoryID, start, end).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ budget.Repository = (*GormBudgetRepository)(nil)
