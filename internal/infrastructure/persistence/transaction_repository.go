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

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Create inserts a new transaction
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(models.TransactionModelFromDomain(tx)).Error
}

// CreatePair persists both legs of a transfer atomically
func (r *GormTransactionRepository) CreatePair(ctx context.Context, out, in *ledger.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.TransactionModelFromDomain(out)).Error; err != nil {
			return err
		}
		return tx.Create(models.TransactionModelFromDomain(in)).Error
	})
}

// Update saves transaction changes
func (r *GormTransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Save(models.TransactionModelFromDomain(tx)).Error
}

// SoftDelete marks the transaction as deleted. If the transaction is a
// transfer leg, its counterpart is marked in the same database transaction.
func (r *GormTransactionRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.TransactionModel
		if err := tx.Where("owner_id = ? AND id = ? AND deleted_at IS NULL", ownerID, id).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.TransactionModel{}).
			Where("owner_id = ? AND id = ?", ownerID, id).
			Update("deleted_at", now).Error; err != nil {
			return err
		}
		if model.CounterpartID != nil {
			if err := tx.Model(&models.TransactionModel{}).
				Where("owner_id = ? AND id = ?", ownerID, *model.CounterpartID).
				Update("deleted_at", now).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a non-deleted transaction by ID for the owner
func (r *GormTransactionRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ? AND deleted_at IS NULL", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a filtered, paginated page of the owner's transactions
func (r *GormTransactionRepository) List(ctx context.Context, ownerID uuid.UUID, filter ledger.TransactionFilter) (shared.Paginated[*ledger.Transaction], error) {
	var empty shared.Paginated[*ledger.Transaction]

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TransactionModel{}), ownerID, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, err
	}

	sortField := ValidateSortField(filter.OrderBy, TransactionSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var transactionModels []models.TransactionModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&transactionModels).Error; err != nil {
		return empty, err
	}

	transactions := make([]*ledger.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToDomain()
	}
	return shared.NewPaginated(transactions, total, filter.Page, filter.PageSize), nil
}

// ListRecent returns the owner's most recent transactions by date
func (r *GormTransactionRepository) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]*ledger.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}
	transactions := make([]*ledger.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToDomain()
	}
	return transactions, nil
}

// Summarize aggregates income, expense and net for the date range.
// Transfer legs are excluded so moving money between accounts does not
// inflate the totals.
func (r *GormTransactionRepository) Summarize(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (ledger.MonthlySummary, error) {
	var result struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as income, "+
			"COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN -amount ELSE 0 END), 0) as expense").
		Where("owner_id = ? AND date >= ? AND date < ? AND transfer_id IS NULL AND deleted_at IS NULL", ownerID, from, to).
		Scan(&result).Error; err != nil {
		return ledger.MonthlySummary{}, err
	}
	return ledger.MonthlySummary{
		Month:   from,
		Income:  result.Income,
		Expense: result.Expense,
		Net:     result.Income.Sub(result.Expense),
	}, nil
}

func (r *GormTransactionRepository) applyFilter(query *gorm.DB, ownerID uuid.UUID, filter ledger.TransactionFilter) *gorm.DB {
	query = query.Where("owner_id = ? AND deleted_at IS NULL", ownerID)

	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	// Amounts are stored signed; the range filter compares magnitudes so a
	// positive bound matches expenses as well as income.
	if filter.MinAmount != nil {
		query = query.Where("ABS(amount) >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("ABS(amount) <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
