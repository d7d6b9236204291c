package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/portfolio"
	"github.com/fintrack/backend/internal/domain/shared"
)

// fakePortfolioRepository is an in-memory portfolio.PortfolioRepository
type fakePortfolioRepository struct {
	portfolio.PortfolioRepository
	byID map[uuid.UUID]*portfolio.Portfolio
}

func newFakePortfolioRepository() *fakePortfolioRepository {
	return &fakePortfolioRepository{byID: make(map[uuid.UUID]*portfolio.Portfolio)}
}

func (r *fakePortfolioRepository) Create(_ context.Context, p *portfolio.Portfolio) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePortfolioRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*portfolio.Portfolio, error) {
	p, ok := r.byID[id]
	if !ok || p.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

// fakeHoldingRepository is an in-memory portfolio.HoldingRepository
type fakeHoldingRepository struct {
	byID map[uuid.UUID]*portfolio.Holding
}

func newFakeHoldingRepository() *fakeHoldingRepository {
	return &fakeHoldingRepository{byID: make(map[uuid.UUID]*portfolio.Holding)}
}

func (r *fakeHoldingRepository) Create(_ context.Context, h *portfolio.Holding) error {
	r.byID[h.ID] = h
	return nil
}

func (r *fakeHoldingRepository) Update(_ context.Context, h *portfolio.Holding) error {
	r.byID[h.ID] = h
	return nil
}

func (r *fakeHoldingRepository) Delete(_ context.Context, _, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeHoldingRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*portfolio.Holding, error) {
	h, ok := r.byID[id]
	if !ok || h.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return h, nil
}

func (r *fakeHoldingRepository) FindBySymbol(_ context.Context, ownerID, portfolioID uuid.UUID, symbol string) (*portfolio.Holding, error) {
	for _, h := range r.byID {
		if h.OwnerID == ownerID && h.PortfolioID == portfolioID && h.Symbol == symbol {
			return h, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHoldingRepository) ListByPortfolio(_ context.Context, ownerID, portfolioID uuid.UUID) ([]*portfolio.Holding, error) {
	var out []*portfolio.Holding
	for _, h := range r.byID {
		if h.OwnerID == ownerID && h.PortfolioID == portfolioID {
			out = append(out, h)
		}
	}
	return out, nil
}

// stubQuoteSource returns fixed prices per symbol
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

func newTestService(t *testing.T) (*Service, *fakePortfolioRepository, *fakeHoldingRepository, *stubQuoteSource) {
	t.Helper()
	portfolios := newFakePortfolioRepository()
	holdings := newFakeHoldingRepository()
	quotes := &stubQuoteSource{prices: make(map[string]decimal.Decimal)}
	svc := NewService(portfolios, holdings, quotes, zap.NewNop())
	return svc, portfolios, holdings, quotes
}

func TestService_BuyAndSell(t *testing.T) {
	ownerID := uuid.New()

	t.Run("blends average cost across buys", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		p, err := svc.CreatePortfolio(context.Background(), ownerID, CreatePortfolioInput{Name: "Growth"})
		require.NoError(t, err)

		_, err = svc.Buy(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "acme", Units: decimal.NewFromInt(10), Price: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		holding, err := svc.Buy(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "ACME", Units: decimal.NewFromInt(10), Price: decimal.NewFromInt(200),
		})
		require.NoError(t, err)

		// (10*100 + 10*200) / 20 = 150
		assert.Equal(t, "ACME", holding.Symbol)
		assert.True(t, holding.Units.Equal(decimal.NewFromInt(20)))
		assert.True(t, holding.AvgCost.Equal(decimal.NewFromInt(150)))
	})

	t.Run("rejects overselling", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		p, err := svc.CreatePortfolio(context.Background(), ownerID, CreatePortfolioInput{Name: "Growth"})
		require.NoError(t, err)

		_, err = svc.Buy(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "ACME", Units: decimal.NewFromInt(5), Price: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		_, err = svc.Sell(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "ACME", Units: decimal.NewFromInt(6),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientUnits)
	})

	t.Run("selling everything closes the position", func(t *testing.T) {
		svc, _, holdings, _ := newTestService(t)
		p, err := svc.CreatePortfolio(context.Background(), ownerID, CreatePortfolioInput{Name: "Growth"})
		require.NoError(t, err)

		_, err = svc.Buy(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "ACME", Units: decimal.NewFromInt(5), Price: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		_, err = svc.Sell(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "ACME", Units: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
		assert.Empty(t, holdings.byID)
	})
}

func TestService_Valuation(t *testing.T) {
	ownerID := uuid.New()

	t.Run("prices holdings and tolerates missing quotes", func(t *testing.T) {
		svc, _, _, quotes := newTestService(t)
		p, err := svc.CreatePortfolio(context.Background(), ownerID, CreatePortfolioInput{Name: "Growth"})
		require.NoError(t, err)

		_, err = svc.Buy(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "ACME", Units: decimal.NewFromInt(10), Price: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		_, err = svc.Buy(context.Background(), ownerID, p.ID, TradeInput{
			Symbol: "NOQUOTE", Units: decimal.NewFromInt(2), Price: decimal.NewFromInt(50),
		})
		require.NoError(t, err)

		quotes.prices["ACME"] = decimal.NewFromInt(120)

		valuation, err := svc.Valuation(context.Background(), ownerID, p.ID)

		require.NoError(t, err)
		assert.Len(t, valuation.Holdings, 2)
		assert.Equal(t, 1, valuation.PricedHoldings)
		assert.True(t, valuation.CostBasis.Equal(decimal.NewFromInt(1100)))
		assert.True(t, valuation.MarketValue.Equal(decimal.NewFromInt(1200)))

		for _, view := range valuation.Holdings {
			if view.Holding.Symbol == "ACME" {
				require.NotNil(t, view.UnrealizedGain)
				assert.True(t, view.UnrealizedGain.Equal(decimal.NewFromInt(200)))
			} else {
				assert.Nil(t, view.Quote)
			}
		}
	})
}
