package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the SQL aggregate queries reports are built from
type Repository interface {
	// InvoiceRevenue sums totals of invoices paid inside [from, to)
	InvoiceRevenue(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// IncomeByCategory sums income transactions grouped by category,
	// excluding report-excluded categories and soft-deleted rows
	IncomeByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]CategoryAmount, error)
	// ExpenseByCategory sums expense transactions grouped by category,
	// excluding report-excluded categories and soft-deleted rows;
	// amounts are returned unsigned
	ExpenseByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]CategoryAmount, error)
	// MonthlyFlows groups non-transfer transactions into monthly
	// inflow/outflow buckets over [from, to)
	MonthlyFlows(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]MonthlyFlow, error)
}
