package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements invoicing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts a new invoice with its items
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Create(models.InvoiceModelFromDomain(invoice)).Error
}

// Update saves invoice changes, replacing the item rows so removed lines
// do not linger.
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *invoicing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InvoiceItemModel{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		return tx.Save(model).Error
	})
}

// Delete removes an invoice and its items
func (r *GormInvoiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.InvoiceModel{}, "owner_id = ? AND id = ?", ownerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&models.InvoiceItemModel{}, "invoice_id = ?", id).Error
	})
}

// FindByID finds an invoice with its items by ID for the owner
func (r *GormInvoiceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a filtered, paginated page of the owner's invoices
func (r *GormInvoiceRepository) List(ctx context.Context, ownerID uuid.UUID, filter invoicing.InvoiceFilter) (shared.Paginated[*invoicing.Invoice], error) {
	var empty shared.Paginated[*invoicing.Invoice]

	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ?", ownerID)
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IssueFrom != nil {
		query = query.Where("issue_date >= ?", *filter.IssueFrom)
	}
	if filter.IssueTo != nil {
		query = query.Where("issue_date <= ?", *filter.IssueTo)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, err
	}

	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "issue_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var invoiceModels []models.InvoiceModel
	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&invoiceModels).Error; err != nil {
		return empty, err
	}

	invoices := make([]*invoicing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToDomain()
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// NextSequence returns the next invoice sequence number for the owner within
// the issue month. It advances past the highest suffix ever issued for the
// month prefix, so deleting a draft never frees a number for reuse.
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, ownerID uuid.UUID, issueDate time.Time) (int64, error) {
	prefix := fmt.Sprintf("INV-%s-", issueDate.UTC().Format("200601"))
	var maxSeq int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(MAX(CAST(SUBSTR(number, ?) AS INTEGER)), 0)", len(prefix)+1).
		Where("owner_id = ? AND number LIKE ?", ownerID, prefix+"%").
		Scan(&maxSeq).Error; err != nil {
		return 0, err
	}
	return maxSeq + 1, nil
}

// ListDueForOverdue returns SENT invoices past their due date across all owners
func (r *GormInvoiceRepository) ListDueForOverdue(ctx context.Context, asOf time.Time) ([]*invoicing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", string(invoicing.InvoiceStatusSent), asOf).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]*invoicing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// Outstanding aggregates open invoice totals for the owner
func (r *GormInvoiceRepository) Outstanding(ctx context.Context, ownerID uuid.UUID) (invoicing.OutstandingTotals, error) {
	var result struct {
		Outstanding  decimal.Decimal
		Overdue      decimal.Decimal
		OpenCount    int64
		OverdueCount int64
	}
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total), 0) as outstanding, "+
			"COALESCE(SUM(CASE WHEN status = 'OVERDUE' THEN total ELSE 0 END), 0) as overdue, "+
			"COUNT(*) as open_count, "+
			"COUNT(CASE WHEN status = 'OVERDUE' THEN 1 END) as overdue_count").
		Where("owner_id = ? AND status IN ?", ownerID, []string{
			string(invoicing.InvoiceStatusSent),
			string(invoicing.InvoiceStatusOverdue),
		}).
		Scan(&result).Error; err != nil {
		return invoicing.OutstandingTotals{}, err
	}
	return invoicing.OutstandingTotals{
		Outstanding:  result.Outstanding,
		Overdue:      result.Overdue,
		OpenCount:    result.OpenCount,
		OverdueCount: result.OverdueCount,
	}, nil
}

var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
