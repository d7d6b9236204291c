package tax

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodFigures are the raw sums a tax estimate is built from
type PeriodFigures struct {
	InvoiceRevenue    decimal.Decimal
	InvoiceVAT        decimal.Decimal
	OtherIncome       decimal.Decimal
	DeductibleExpense decimal.Decimal
}

// Repository defines persistence operations for tax periods
type Repository interface {
	Create(ctx context.Context, period *TaxPeriod) error
	Update(ctx context.Context, period *TaxPeriod) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*TaxPeriod, error)
	FindByYearQuarter(ctx context.Context, ownerID uuid.UUID, year, quarter int) (*TaxPeriod, error)
	List(ctx context.Context, ownerID uuid.UUID, year *int) ([]*TaxPeriod, error)
	// Figures aggregates paid invoice revenue and VAT plus income and
	// deductible expense transactions inside [from, to)
	Figures(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (PeriodFigures, error)
}
