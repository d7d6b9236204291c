package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	budgetapp "github.com/fintrack/backend/internal/application/budget"
	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	planningapp "github.com/fintrack/backend/internal/application/planning"
	portfolioapp "github.com/fintrack/backend/internal/application/portfolio"
	budgetdomain "github.com/fintrack/backend/internal/domain/budget"
	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/planning"
	"github.com/fintrack/backend/internal/domain/shared"
)

const recentTransactionLimit = 10

// PortfolioSummary sums valuations across all of the owner's portfolios
type PortfolioSummary struct {
	CostBasis   decimal.Decimal `json:"cost_basis"`
	MarketValue decimal.Decimal `json:"market_value"`
	Portfolios  int             `json:"portfolios"`
}

// Overview is the aggregated dashboard payload
type Overview struct {
	AsOf               time.Time                   `json:"as_of"`
	NetWorth           decimal.Decimal             `json:"net_worth"`
	Accounts           []*ledgerapp.AccountView    `json:"accounts"`
	MonthSummary       ledger.MonthlySummary       `json:"month_summary"`
	RecentTransactions []*ledger.Transaction       `json:"recent_transactions"`
	Invoices           invoicing.OutstandingTotals `json:"invoices"`
	Budgets            []*budgetdomain.Progress    `json:"budgets"`
	Goals              []*planning.GoalProgress    `json:"goals"`
	Portfolio          PortfolioSummary            `json:"portfolio"`
}

// Service assembles the dashboard from the other application services
type Service struct {
	accounts    *ledgerapp.AccountService
	txRepo      ledger.TransactionRepository
	invoiceRepo invoicing.InvoiceRepository
	budgets     *budgetapp.Service
	planning    *planningapp.Service
	portfolios  *portfolioapp.Service
	logger      *zap.Logger
}

// NewService creates a new dashboard service
func NewService(
	accounts *ledgerapp.AccountService,
	txRepo ledger.TransactionRepository,
	invoiceRepo invoicing.InvoiceRepository,
	budgets *budgetapp.Service,
	planning *planningapp.Service,
	portfolios *portfolioapp.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		accounts:    accounts,
		txRepo:      txRepo,
		invoiceRepo: invoiceRepo,
		budgets:     budgets,
		planning:    planning,
		portfolios:  portfolios,
		logger:      logger,
	}
}

// Overview gathers every dashboard section concurrently. The sections are
// independent queries, so one slow aggregate does not serialize the rest.
func (s *Service) Overview(ctx context.Context, ownerID uuid.UUID, now time.Time) (*Overview, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	overview := &Overview{AsOf: now}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		views, err := s.accounts.ListAccounts(gctx, ownerID, false)
		if err != nil {
			return err
		}
		net := decimal.Zero
		for _, view := range views {
			net = net.Add(view.Balance)
		}
		overview.Accounts = views
		overview.NetWorth = net.Round(2)
		return nil
	})

	g.Go(func() error {
		summary, err := s.txRepo.Summarize(gctx, ownerID, monthStart, monthEnd)
		if err != nil {
			return err
		}
		overview.MonthSummary = summary
		return nil
	})

	g.Go(func() error {
		recent, err := s.txRepo.ListRecent(gctx, ownerID, recentTransactionLimit)
		if err != nil {
			return err
		}
		overview.RecentTransactions = recent
		return nil
	})

	g.Go(func() error {
		totals, err := s.invoiceRepo.Outstanding(gctx, ownerID)
		if err != nil {
			return err
		}
		overview.Invoices = totals
		return nil
	})

	g.Go(func() error {
		progress, err := s.budgets.ListProgressByMonth(gctx, ownerID, monthStart)
		if err != nil {
			return err
		}
		overview.Budgets = progress
		return nil
	})

	g.Go(func() error {
		goals, err := s.planning.ListGoalProgress(gctx, ownerID)
		if err != nil {
			return err
		}
		overview.Goals = goals
		return nil
	})

	g.Go(func() error {
		list, err := s.portfolios.ListPortfolios(gctx, ownerID)
		if err != nil {
			return err
		}
		summary := PortfolioSummary{
			CostBasis:   decimal.Zero,
			MarketValue: decimal.Zero,
			Portfolios:  len(list),
		}
		for _, p := range list {
			valuation, err := s.portfolios.Valuation(gctx, ownerID, p.ID)
			if err != nil {
				return err
			}
			summary.CostBasis = summary.CostBasis.Add(valuation.CostBasis)
			summary.MarketValue = summary.MarketValue.Add(valuation.MarketValue)
		}
		overview.Portfolio = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to assemble dashboard", zap.Error(err))
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to assemble dashboard")
	}

	return overview, nil
}
