package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
)

// fakeReportRepository returns canned aggregates
type fakeReportRepository struct {
	invoiceRevenue decimal.Decimal
	income         []report.CategoryAmount
	expenses       []report.CategoryAmount
	flows          []report.MonthlyFlow
}

func (r *fakeReportRepository) InvoiceRevenue(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return r.invoiceRevenue, nil
}

func (r *fakeReportRepository) IncomeByCategory(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]report.CategoryAmount, error) {
	return r.income, nil
}

func (r *fakeReportRepository) ExpenseByCategory(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]report.CategoryAmount, error) {
	return r.expenses, nil
}

func (r *fakeReportRepository) MonthlyFlows(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]report.MonthlyFlow, error) {
	return r.flows, nil
}

func monthlyFlow(year int, month time.Month, net int64) report.MonthlyFlow {
	return report.MonthlyFlow{
		Month: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Net:   decimal.NewFromInt(net),
	}
}

func TestService_ProfitLoss(t *testing.T) {
	ownerID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("combines invoice revenue with transaction flows", func(t *testing.T) {
		repo := &fakeReportRepository{
			invoiceRevenue: decimal.NewFromInt(5000),
			income: []report.CategoryAmount{
				{CategoryName: "Consulting", Amount: decimal.NewFromInt(3000)},
			},
			expenses: []report.CategoryAmount{
				{CategoryName: "Rent", Amount: decimal.NewFromInt(1500)},
				{CategoryName: "Software", Amount: decimal.NewFromInt(500)},
			},
		}
		svc := NewService(repo, zap.NewNop())

		pl, err := svc.ProfitLoss(context.Background(), ownerID, RangeInput{From: from, To: to})

		require.NoError(t, err)
		assert.True(t, pl.TotalRevenue.Equal(decimal.NewFromInt(8000)))
		assert.True(t, pl.TotalExpenses.Equal(decimal.NewFromInt(2000)))
		assert.True(t, pl.NetProfit.Equal(decimal.NewFromInt(6000)))
		assert.Equal(t, "75", pl.MarginPct.String())
	})

	t.Run("zero revenue leaves the margin at zero", func(t *testing.T) {
		svc := NewService(&fakeReportRepository{}, zap.NewNop())

		pl, err := svc.ProfitLoss(context.Background(), ownerID, RangeInput{From: from, To: to})

		require.NoError(t, err)
		assert.True(t, pl.MarginPct.IsZero())
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		svc := NewService(&fakeReportRepository{}, zap.NewNop())

		_, err := svc.ProfitLoss(context.Background(), ownerID, RangeInput{From: to, To: from})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	})
}

func TestService_CashFlow(t *testing.T) {
	ownerID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeReportRepository{flows: []report.MonthlyFlow{
		monthlyFlow(2026, time.January, 400),
		monthlyFlow(2026, time.February, -150),
		monthlyFlow(2026, time.March, 250),
	}}
	svc := NewService(repo, zap.NewNop())

	cf, err := svc.CashFlow(context.Background(), ownerID, RangeInput{From: from, To: to})

	require.NoError(t, err)
	assert.Len(t, cf.Months, 3)
	assert.True(t, cf.Net.Equal(decimal.NewFromInt(500)))
}

func TestService_Forecast(t *testing.T) {
	ownerID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("projects the fitted trend forward", func(t *testing.T) {
		repo := &fakeReportRepository{flows: []report.MonthlyFlow{
			monthlyFlow(2026, time.January, 100),
			monthlyFlow(2026, time.February, 200),
			monthlyFlow(2026, time.March, 300),
		}}
		svc := NewService(repo, zap.NewNop())

		forecast, err := svc.Forecast(context.Background(), ownerID, ForecastInput{From: from, To: to})

		require.NoError(t, err)
		require.Len(t, forecast.Points, 3)
		assert.Equal(t, "400", forecast.Points[0].Projected.String())
		assert.Equal(t, "500", forecast.Points[1].Projected.String())
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), forecast.Points[0].Month)
	})

	t.Run("requires at least two months of history", func(t *testing.T) {
		repo := &fakeReportRepository{flows: []report.MonthlyFlow{
			monthlyFlow(2026, time.January, 100),
		}}
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Forecast(context.Background(), ownerID, ForecastInput{From: from, To: to})

		assert.ErrorIs(t, err, report.ErrInsufficientData)
	})
}
