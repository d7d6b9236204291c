package ledger

import (
	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/shared"
)

// CategoryType splits categories into income and expense sides
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// IsValid checks if the category type is valid
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category classifies transactions for budgets and reports
type Category struct {
	shared.OwnedEntity
	Name               string       `json:"name"`
	Type               CategoryType `json:"type"`
	ParentID           *uuid.UUID   `json:"parent_id"`
	Color              string       `json:"color"`
	ExcludeFromReports bool         `json:"exclude_from_reports"`
}

// NewCategory creates a new category
func NewCategory(ownerID uuid.UUID, name string, categoryType CategoryType, parentID *uuid.UUID, color string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if !categoryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY_TYPE", "Category type is not valid")
	}

	return &Category{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Type:        categoryType,
		ParentID:    parentID,
		Color:       color,
	}, nil
}

// Update changes the mutable category fields
func (c *Category) Update(name, color string, excludeFromReports bool) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Color = color
	c.ExcludeFromReports = excludeFromReports
	c.Touch()
	return nil
}
