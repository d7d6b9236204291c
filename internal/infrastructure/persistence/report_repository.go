package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// InvoiceRevenue sums totals of invoices paid inside [from, to)
func (r *GormReportRepository) InvoiceRevenue(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total), 0) as total").
		Where("owner_id = ? AND status = ? AND paid_at >= ? AND paid_at < ?",
			ownerID, string(invoicing.InvoiceStatusPaid), from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// IncomeByCategory sums income transactions grouped by category
func (r *GormReportRepository) IncomeByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]report.CategoryAmount, error) {
	return r.byCategory(ctx, ownerID, from, to, "INCOME", "SUM(transactions.amount)")
}

// ExpenseByCategory sums expense transactions grouped by category, unsigned
func (r *GormReportRepository) ExpenseByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]report.CategoryAmount, error) {
	return r.byCategory(ctx, ownerID, from, to, "EXPENSE", "SUM(-transactions.amount)")
}

func (r *GormReportRepository) byCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time, txType, sumExpr string) ([]report.CategoryAmount, error) {
	var rows []struct {
		CategoryID   *uuid.UUID
		CategoryName *string
		Amount       decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("transactions.category_id as category_id, categories.name as category_name, "+sumExpr+" as amount").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.owner_id = ? AND transactions.type = ? "+
			"AND transactions.date >= ? AND transactions.date < ? "+
			"AND transactions.transfer_id IS NULL AND transactions.deleted_at IS NULL "+
			"AND (categories.id IS NULL OR categories.exclude_from_reports = false)",
			ownerID, txType, from, to).
		Group("transactions.category_id, categories.name").
		Order("amount DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	amounts := make([]report.CategoryAmount, len(rows))
	for i, row := range rows {
		entry := report.CategoryAmount{Amount: row.Amount}
		if row.CategoryID != nil {
			entry.CategoryID = row.CategoryID.String()
		}
		if row.CategoryName != nil {
			entry.CategoryName = *row.CategoryName
		} else {
			entry.CategoryName = "Uncategorized"
		}
		amounts[i] = entry
	}
	return amounts, nil
}

// MonthlyFlows groups non-transfer transactions into monthly inflow and
// outflow buckets over [from, to)
func (r *GormReportRepository) MonthlyFlows(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]report.MonthlyFlow, error) {
	var rows []struct {
		Month   time.Time
		Inflow  decimal.Decimal
		Outflow decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("DATE_TRUNC('month', date) as month, "+
			"COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) as inflow, "+
			"COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN -amount ELSE 0 END), 0) as outflow").
		Where("owner_id = ? AND date >= ? AND date < ? AND transfer_id IS NULL AND deleted_at IS NULL",
			ownerID, from, to).
		Group("DATE_TRUNC('month', date)").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	flows := make([]report.MonthlyFlow, len(rows))
	for i, row := range rows {
		flows[i] = report.MonthlyFlow{
			Month:   row.Month,
			Inflow:  row.Inflow,
			Outflow: row.Outflow,
			Net:     row.Inflow.Sub(row.Outflow),
		}
	}
	return flows, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
