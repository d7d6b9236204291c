package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	budgetapp "github.com/fintrack/backend/internal/application/budget"
	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	planningapp "github.com/fintrack/backend/internal/application/planning"
	portfolioapp "github.com/fintrack/backend/internal/application/portfolio"
	budgetdomain "github.com/fintrack/backend/internal/domain/budget"
	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/planning"
	"github.com/fintrack/backend/internal/domain/portfolio"
	"github.com/fintrack/backend/internal/domain/shared"
)

// fakeAccountRepository serves the listing and balance queries
type fakeAccountRepository struct {
	ledger.AccountRepository
	accounts []*ledger.Account
	deltas   map[uuid.UUID]decimal.Decimal
}

func (r *fakeAccountRepository) List(_ context.Context, _ uuid.UUID, _ bool) ([]*ledger.Account, error) {
	return r.accounts, nil
}

func (r *fakeAccountRepository) FindByID(_ context.Context, _, id uuid.UUID) (*ledger.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeAccountRepository) BalanceDelta(_ context.Context, _, accountID uuid.UUID, _ time.Time) (decimal.Decimal, error) {
	return r.deltas[accountID], nil
}

// fakeTransactionRepository serves the recent list and the month summary
type fakeTransactionRepository struct {
	ledger.TransactionRepository
	recent  []*ledger.Transaction
	summary ledger.MonthlySummary
}

func (r *fakeTransactionRepository) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]*ledger.Transaction, error) {
	if len(r.recent) > limit {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

func (r *fakeTransactionRepository) Summarize(_ context.Context, _ uuid.UUID, _, _ time.Time) (ledger.MonthlySummary, error) {
	return r.summary, nil
}

// fakeInvoiceRepository serves the outstanding totals only
type fakeInvoiceRepository struct {
	invoicing.InvoiceRepository
	totals invoicing.OutstandingTotals
}

func (r *fakeInvoiceRepository) Outstanding(_ context.Context, _ uuid.UUID) (invoicing.OutstandingTotals, error) {
	return r.totals, nil
}

// fakeBudgetRepository serves the month listing with a fixed spend
type fakeBudgetRepository struct {
	budgetdomain.Repository
	budgets []*budgetdomain.Budget
	spent   decimal.Decimal
}

func (r *fakeBudgetRepository) ListByMonth(_ context.Context, _ uuid.UUID, _ time.Time) ([]*budgetdomain.Budget, error) {
	return r.budgets, nil
}

func (r *fakeBudgetRepository) SpentInMonth(_ context.Context, _, _ uuid.UUID, _ time.Time) (decimal.Decimal, error) {
	return r.spent, nil
}

type fakeCategoryRepository struct {
	ledger.CategoryRepository
	byID map[uuid.UUID]*ledger.Category
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, _, id uuid.UUID) (*ledger.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

type fakeGoalRepository struct {
	planning.GoalRepository
	goals []*planning.Goal
}

func (r *fakeGoalRepository) List(_ context.Context, _ uuid.UUID) ([]*planning.Goal, error) {
	return r.goals, nil
}

type fakeLoanRepository struct {
	planning.LoanRepository
}

type fakePortfolioRepository struct {
	portfolio.PortfolioRepository
	portfolios []*portfolio.Portfolio
}

func (r *fakePortfolioRepository) List(_ context.Context, _ uuid.UUID) ([]*portfolio.Portfolio, error) {
	return r.portfolios, nil
}

func (r *fakePortfolioRepository) FindByID(_ context.Context, _, id uuid.UUID) (*portfolio.Portfolio, error) {
	for _, p := range r.portfolios {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeHoldingRepository struct {
	portfolio.HoldingRepository
	holdings []*portfolio.Holding
}

func (r *fakeHoldingRepository) ListByPortfolio(_ context.Context, _, _ uuid.UUID) ([]*portfolio.Holding, error) {
	return r.holdings, nil
}

type stubQuoteSource struct {
	prices map[string]decimal.Decimal
}

func (s *stubQuoteSource) GetQuote(_ context.Context, symbol string) (portfolio.Quote, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return portfolio.Quote{}, portfolio.ErrQuoteUnavailable
	}
	return portfolio.Quote{Symbol: symbol, Price: price, Currency: "USD", Provider: "stub"}, nil
}

func TestService_Overview(t *testing.T) {
	ownerID := uuid.New()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	snapshot := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	checking, err := ledger.NewAccount(ownerID, "Checking", ledger.AccountTypeChecking, "USD",
		decimal.NewFromInt(1000), snapshot)
	require.NoError(t, err)
	savings, err := ledger.NewAccount(ownerID, "Savings", ledger.AccountTypeSavings, "USD",
		decimal.NewFromInt(5000), snapshot)
	require.NoError(t, err)

	accountRepo := &fakeAccountRepository{
		accounts: []*ledger.Account{checking, savings},
		deltas: map[uuid.UUID]decimal.Decimal{
			checking.ID: decimal.NewFromInt(-200),
			savings.ID:  decimal.NewFromInt(300),
		},
	}

	category, err := ledger.NewCategory(ownerID, "Groceries", ledger.CategoryTypeExpense, nil, "")
	require.NoError(t, err)
	b, err := budgetdomain.NewBudget(ownerID, category.ID, now, decimal.NewFromInt(600))
	require.NoError(t, err)

	txRepo := &fakeTransactionRepository{
		summary: ledger.MonthlySummary{
			Income:  decimal.NewFromInt(4000),
			Expense: decimal.NewFromInt(2500),
			Net:     decimal.NewFromInt(1500),
		},
	}
	invoiceRepo := &fakeInvoiceRepository{totals: invoicing.OutstandingTotals{
		Outstanding: decimal.NewFromInt(3200),
		OpenCount:   2,
	}}
	budgetRepo := &fakeBudgetRepository{budgets: []*budgetdomain.Budget{b}, spent: decimal.NewFromInt(450)}
	categoryRepo := &fakeCategoryRepository{byID: map[uuid.UUID]*ledger.Category{category.ID: category}}

	goal, err := planning.NewGoal(ownerID, "Emergency fund", decimal.NewFromInt(10000), nil, &savings.ID)
	require.NoError(t, err)
	goalRepo := &fakeGoalRepository{goals: []*planning.Goal{goal}}

	pf, err := portfolio.NewPortfolio(ownerID, "Growth", "USD")
	require.NoError(t, err)
	holding, err := portfolio.NewHolding(ownerID, pf.ID, "ACME", decimal.NewFromInt(10), decimal.NewFromInt(100))
	require.NoError(t, err)
	portfolioRepo := &fakePortfolioRepository{portfolios: []*portfolio.Portfolio{pf}}
	holdingRepo := &fakeHoldingRepository{holdings: []*portfolio.Holding{holding}}
	quotes := &stubQuoteSource{prices: map[string]decimal.Decimal{"ACME": decimal.NewFromInt(120)}}

	svc := NewService(
		ledgerapp.NewAccountService(accountRepo, zap.NewNop()),
		txRepo,
		invoiceRepo,
		budgetapp.NewService(budgetRepo, categoryRepo, zap.NewNop()),
		planningapp.NewService(goalRepo, &fakeLoanRepository{}, accountRepo, zap.NewNop()),
		portfolioapp.NewService(portfolioRepo, holdingRepo, quotes, zap.NewNop()),
		zap.NewNop(),
	)

	overview, err := svc.Overview(context.Background(), ownerID, now)

	require.NoError(t, err)
	// 1000 - 200 + 5000 + 300 = 6100
	assert.True(t, overview.NetWorth.Equal(decimal.NewFromInt(6100)))
	assert.Len(t, overview.Accounts, 2)
	assert.True(t, overview.MonthSummary.Net.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, int64(2), overview.Invoices.OpenCount)

	require.Len(t, overview.Budgets, 1)
	assert.Equal(t, "Groceries", overview.Budgets[0].CategoryName)
	assert.Equal(t, "75", overview.Budgets[0].Utilization.String())

	require.Len(t, overview.Goals, 1)
	// Savings balance 5300 against a 10000 target
	assert.Equal(t, "53", overview.Goals[0].Percentage.String())

	assert.Equal(t, 1, overview.Portfolio.Portfolios)
	assert.True(t, overview.Portfolio.CostBasis.Equal(decimal.NewFromInt(1000)))
	assert.True(t, overview.Portfolio.MarketValue.Equal(decimal.NewFromInt(1200)))
}
