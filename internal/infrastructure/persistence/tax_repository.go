package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/tax"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormTaxPeriodRepository implements tax.Repository using GORM
type GormTaxPeriodRepository struct {
	db *gorm.DB
}

// NewGormTaxPeriodRepository creates a new GormTaxPeriodRepository
func NewGormTaxPeriodRepository(db *gorm.DB) *GormTaxPeriodRepository {
	return &GormTaxPeriodRepository{db: db}
}

// Create inserts a new tax period
func (r *GormTaxPeriodRepository) Create(ctx context.Context, period *tax.TaxPeriod) error {
	return r.db.WithContext(ctx).Create(models.TaxPeriodModelFromDomain(period)).Error
}

// Update saves tax period changes
func (r *GormTaxPeriodRepository) Update(ctx context.Context, period *tax.TaxPeriod) error {
	return r.db.WithContext(ctx).Save(models.TaxPeriodModelFromDomain(period)).Error
}

// Delete removes a tax period
func (r *GormTaxPeriodRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TaxPeriodModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a tax period by ID for the owner
func (r *GormTaxPeriodRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*tax.TaxPeriod, error) {
	var model models.TaxPeriodModel
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

// FindByYearQuarter finds the owner's period for a year and quarter
func (r *GormTaxPeriodRepository) FindByYearQuarter(ctx context.Context, ownerID uuid.UUID, year, quarter int) (*tax.TaxPeriod, error) {
	var model models.TaxPeriodModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND year = ? AND quarter = ?", ownerID, year, quarter).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the owner's tax periods, optionally filtered by year
func (r *GormTaxPeriodRepository) List(ctx context.Context, ownerID uuid.UUID, year *int) ([]*tax.TaxPeriod, error) {
	query := r.db.WithContext(ctx).Model(&models.TaxPeriodModel{}).
		Where("owner_id = ?", ownerID)
	if year != nil {
		query = query.Where("year = ?", *year)
	}

	var periodModels []models.TaxPeriodModel
	if err := query.Order("year DESC, quarter ASC").Find(&periodModels).Error; err != nil {
		return nil, err
	}
	periods := make([]*tax.TaxPeriod, len(periodModels))
	for i := range periodModels {
		periods[i] = periodModels[i].ToDomain()
	}
	return periods, nil
}

// Figures aggregates the sums an estimate is built from. Invoice revenue and
// VAT count PAID invoices by payment date; transaction sums exclude transfer
// legs and categories flagged out of reports.
func (r *GormTaxPeriodRepository) Figures(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (tax.PeriodFigures, error) {
	var invoiceSums struct {
		Revenue decimal.Decimal
		VAT     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(subtotal), 0) as revenue, COALESCE(SUM(vat_amount), 0) as vat").
		Where("owner_id = ? AND status = ? AND paid_at >= ? AND paid_at < ?",
			ownerID, string(invoicing.InvoiceStatusPaid), from, to).
		Scan(&invoiceSums).Error; err != nil {
		return tax.PeriodFigures{}, err
	}

	var txSums struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(CASE WHEN transactions.type = 'INCOME' THEN transactions.amount ELSE 0 END), 0) as income, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'EXPENSE' THEN -transactions.amount ELSE 0 END), 0) as expense").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.owner_id = ? AND transactions.date >= ? AND transactions.date < ? "+
			"AND transactions.transfer_id IS NULL AND transactions.deleted_at IS NULL "+
			"AND (categories.id IS NULL OR categories.exclude_from_reports = false)",
			ownerID, from, to).
		Scan(&txSums).Error; err != nil {
		return tax.PeriodFigures{}, err
	}

	return tax.PeriodFigures{
		InvoiceRevenue:    invoiceSums.Revenue,
		InvoiceVAT:        invoiceSums.VAT,
		OtherIncome:       txSums.Income,
		DeductibleExpense: txSums.Expense,
	}, nil
}

var _ tax.Repository = (*GormTaxPeriodRepository)(nil)
