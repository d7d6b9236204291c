package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/planning"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormGoalRepository implements planning.GoalRepository using GORM
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGormGoalRepository creates a new GormGoalRepository
func NewGormGoalRepository(db *gorm.DB) *GormGoalRepository {
	return &GormGoalRepository{db: db}
}

// Create inserts a new goal
func (r *GormGoalRepository) Create(ctx context.Context, goal *planning.Goal) error {
	return r.db.WithContext(ctx).Create(models.GoalModelFromDomain(goal)).Error
}

// Update saves goal changes
func (r *GormGoalRepository) Update(ctx context.Context, goal *planning.Goal) error {
	return r.db.WithContext(ctx).Save(models.GoalModelFromDomain(goal)).Error
}

// Delete removes a goal
func (r *GormGoalRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GoalModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a goal by ID for the owner
func (r *GormGoalRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*planning.Goal, error) {
	var model models.GoalModel
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

// List returns the owner's goals
func (r *GormGoalRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*planning.Goal, error) {
	var goalModels []models.GoalModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&goalModels).Error; err != nil {
		return nil, err
	}
	goals := make([]*planning.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToDomain()
	}
	return goals, nil
}

var _ planning.GoalRepository = (*GormGoalRepository)(nil)

// GormLoanRepository implements planning.LoanRepository using GORM
type GormLoanRepository struct {
	db *gorm.DB
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// Create inserts a new loan
func (r *GormLoanRepository) Create(ctx context.Context, loan *planning.Loan) error {
	return r.db.WithContext(ctx).Create(models.LoanModelFromDomain(loan)).Error
}

// Update saves loan changes
func (r *GormLoanRepository) Update(ctx context.Context, loan *planning.Loan) error {
	return r.db.WithContext(ctx).Save(models.LoanModelFromDomain(loan)).Error
}

// Delete removes a loan
func (r *GormLoanRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LoanModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a loan by ID for the owner
func (r *GormLoanRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*planning.Loan, error) {
	var model models.LoanModel
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

// List returns the owner's loans
func (r *GormLoanRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*planning.Loan, error) {
	var loanModels []models.LoanModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	loans := make([]*planning.Loan, len(loanModels))
	for i := range loanModels {
		loans[i] = loanModels[i].ToDomain()
	}
	return loans, nil
}

var _ planning.LoanRepository = (*GormLoanRepository)(nil)
