package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
)

// CategoryService handles category use cases
type CategoryService struct {
	categoryRepo ledger.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo ledger.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateCategory creates a new category. The (name, type) pair is unique per
// owner.
func (s *CategoryService) CreateCategory(ctx context.Context, ownerID uuid.UUID, input CreateCategoryInput) (*ledger.Category, error) {
	categoryType := ledger.CategoryType(input.Type)

	exists, err := s.categoryRepo.ExistsByName(ctx, ownerID, input.Name, categoryType)
	if err != nil {
		s.logger.Error("Failed to check category uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name and type already exists")
	}

	if input.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, ownerID, *input.ParentID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
		}
		if parent.Type != categoryType {
			return nil, shared.NewDomainError("INVALID_PARENT", "Parent category must have the same type")
		}
		if parent.ParentID != nil {
			return nil, shared.NewDomainError("INVALID_PARENT", "Categories nest at most one level deep")
		}
	}

	category, err := ledger.NewCategory(ownerID, input.Name, categoryType, input.ParentID, input.Color)
	if err != nil {
		return nil, err
	}
	category.ExcludeFromReports = input.ExcludeFromReports

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}
	return category, nil
}

// GetCategory returns one category
func (s *CategoryService) GetCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (*ledger.Category, error) {
	return s.categoryRepo.FindByID(ctx, ownerID, categoryID)
}

// ListCategories returns the owner's categories, optionally filtered by type
func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID, categoryType *ledger.CategoryType) ([]*ledger.Category, error) {
	return s.categoryRepo.List(ctx, ownerID, categoryType)
}

// UpdateCategory changes mutable category fields
func (s *CategoryService) UpdateCategory(ctx context.Context, ownerID, categoryID uuid.UUID, input UpdateCategoryInput) (*ledger.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, ownerID, input.Name, category.Type)
		if err != nil {
			s.logger.Error("Failed to check category uniqueness", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name and type already exists")
		}
	}

	if err := category.Update(input.Name, input.Color, input.ExcludeFromReports); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}
	return category, nil
}

// DeleteCategory removes a category that is not referenced by transactions or
// budgets
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error {
	inUse, err := s.categoryRepo.IsInUse(ctx, ownerID, categoryID)
	if err != nil {
		s.logger.Error("Failed to check category usage", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}
	if inUse {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category is referenced by transactions or budgets")
	}
	return s.categoryRepo.Delete(ctx, ownerID, categoryID)
}
