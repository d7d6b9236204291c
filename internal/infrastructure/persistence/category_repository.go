package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormCategoryRepository implements ledger.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create inserts a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *ledger.Category) error {
	return r.db.WithContext(ctx).Create(models.CategoryModelFromDomain(category)).Error
}

// Update saves category changes
func (r *GormCategoryRepository) Update(ctx context.Context, category *ledger.Category) error {
	return r.db.WithContext(ctx).Save(models.CategoryModelFromDomain(category)).Error
}

// Delete removes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a category by ID for the owner
func (r *GormCategoryRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Category, error) {
	var model models.CategoryModel
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

// List returns the owner's categories, optionally filtered by type
func (r *GormCategoryRepository) List(ctx context.Context, ownerID uuid.UUID, categoryType *ledger.CategoryType) ([]*ledger.Category, error) {
	query := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("owner_id = ?", ownerID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categoryModels []models.CategoryModel
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]*ledger.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToDomain()
	}
	return categories, nil
}

// ExistsByName checks if a category with the name and type already exists
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string, categoryType ledger.CategoryType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("owner_id = ? AND name = ? AND type = ?", ownerID, name, categoryType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsInUse reports whether transactions or budgets reference the category
func (r *GormCategoryRepository) IsInUse(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("owner_id = ? AND category_id = ? AND deleted_at IS NULL", ownerID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Where("owner_id = ? AND category_id = ?", ownerID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ ledger.CategoryRepository = (*GormCategoryRepository)(nil)
