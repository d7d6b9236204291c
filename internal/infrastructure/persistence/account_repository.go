package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create inserts a new account
func (r *GormAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	return r.db.WithContext(ctx).Create(models.AccountModelFromDomain(account)).Error
}

// Update saves account changes
func (r *GormAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	return r.db.WithContext(ctx).Save(models.AccountModelFromDomain(account)).Error
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an account by ID for the owner
func (r *GormAccountRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
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

// List returns the owner's accounts, optionally including archived ones
func (r *GormAccountRepository) List(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*ledger.Account, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("owner_id = ?", ownerID)
	if !includeArchived {
		query = query.Where("archived = false")
	}

	var accountModels []models.AccountModel
	if err := query.Order("created_at ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]*ledger.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToDomain()
	}
	return accounts, nil
}

// BalanceDelta sums signed transaction amounts after the snapshot date
func (r *GormAccountRepository) BalanceDelta(ctx context.Context, ownerID, accountID uuid.UUID, after time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("owner_id = ? AND account_id = ? AND date > ? AND deleted_at IS NULL", ownerID, accountID, after).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// HasTransactions reports whether any transaction row references the account.
// Soft-deleted rows count too, since they keep their foreign key and would
// block a hard delete of the account.
func (r *GormAccountRepository) HasTransactions(ctx context.Context, ownerID, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("owner_id = ? AND account_id = ?", ownerID, accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ ledger.AccountRepository = (*GormAccountRepository)(nil)
