package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
)

// RangeInput bounds a report to [From, To)
type RangeInput struct {
	From time.Time `form:"from" binding:"required"`
	To   time.Time `form:"to" binding:"required"`
}

// ForecastInput bounds the history window and sets the projection horizon
type ForecastInput struct {
	From   time.Time `form:"from" binding:"required"`
	To     time.Time `form:"to" binding:"required"`
	Months int       `form:"months" binding:"min=0,max=24"`
}

// Service builds financial reports from ledger and invoicing aggregates
type Service struct {
	reportRepo report.Repository
	logger     *zap.Logger
}

// NewService creates a new report service
func NewService(reportRepo report.Repository, logger *zap.Logger) *Service {
	return &Service{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// ProfitLoss builds the profit-and-loss statement for a date range. Revenue
// is paid invoices plus income transactions; transfers and report-excluded
// categories are left out.
func (s *Service) ProfitLoss(ctx context.Context, ownerID uuid.UUID, input RangeInput) (*report.ProfitLoss, error) {
	if err := validateRange(input.From, input.To); err != nil {
		return nil, err
	}

	invoiceRevenue, err := s.reportRepo.InvoiceRevenue(ctx, ownerID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to sum invoice revenue", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build profit and loss report")
	}
	income, err := s.reportRepo.IncomeByCategory(ctx, ownerID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to group income by category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build profit and loss report")
	}
	expenses, err := s.reportRepo.ExpenseByCategory(ctx, ownerID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to group expenses by category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build profit and loss report")
	}

	transactionIncome := sumCategories(income)
	totalExpenses := sumCategories(expenses)
	totalRevenue := invoiceRevenue.Add(transactionIncome)
	netProfit := totalRevenue.Sub(totalExpenses)

	marginPct := decimal.Zero
	if totalRevenue.IsPositive() {
		marginPct = netProfit.Div(totalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &report.ProfitLoss{
		From:              input.From,
		To:                input.To,
		InvoiceRevenue:    invoiceRevenue,
		TransactionIncome: transactionIncome,
		TotalRevenue:      totalRevenue,
		TotalExpenses:     totalExpenses,
		NetProfit:         netProfit,
		MarginPct:         marginPct,
		IncomeByCategory:  income,
		ExpenseByCategory: expenses,
	}, nil
}

// CashFlow builds the monthly inflow/outflow series for a date range
func (s *Service) CashFlow(ctx context.Context, ownerID uuid.UUID, input RangeInput) (*report.CashFlow, error) {
	if err := validateRange(input.From, input.To); err != nil {
		return nil, err
	}

	months, err := s.reportRepo.MonthlyFlows(ctx, ownerID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to aggregate monthly flows", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build cash flow report")
	}

	net := decimal.Zero
	for _, m := range months {
		net = net.Add(m.Net)
	}

	return &report.CashFlow{
		From:   input.From,
		To:     input.To,
		Months: months,
		Net:    net,
	}, nil
}

// Forecast projects future monthly net cash flow with a least-squares fit
// over the history window. The horizon defaults to three months.
func (s *Service) Forecast(ctx context.Context, ownerID uuid.UUID, input ForecastInput) (*report.Forecast, error) {
	if err := validateRange(input.From, input.To); err != nil {
		return nil, err
	}

	history, err := s.reportRepo.MonthlyFlows(ctx, ownerID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to aggregate forecast history", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build forecast")
	}

	return report.LinearForecast(history, input.Months)
}

func validateRange(from, to time.Time) error {
	if !to.After(from) {
		return shared.NewDomainError("INVALID_RANGE", "The end of the range must be after its start")
	}
	return nil
}

func sumCategories(rows []report.CategoryAmount) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}
