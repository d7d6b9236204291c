package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/portfolio"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// CreatePortfolioInput contains the data for a new portfolio
type CreatePortfolioInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// TradeInput is one buy or sell order
type TradeInput struct {
	Symbol string          `json:"symbol" binding:"required,max=12"`
	Units  decimal.Decimal `json:"units" binding:"required"`
	Price  decimal.Decimal `json:"price"`
}

// HoldingView is a holding priced with a market quote. Quote fields are nil
// when no provider could supply a price.
type HoldingView struct {
	Holding        *portfolio.Holding `json:"holding"`
	Quote          *portfolio.Quote   `json:"quote,omitempty"`
	MarketValue    *decimal.Decimal   `json:"market_value,omitempty"`
	UnrealizedGain *decimal.Decimal   `json:"unrealized_gain,omitempty"`
}

// Valuation is a portfolio priced with market quotes
type Valuation struct {
	Portfolio   *portfolio.Portfolio `json:"portfolio"`
	Holdings    []HoldingView        `json:"holdings"`
	CostBasis   decimal.Decimal      `json:"cost_basis"`
	MarketValue decimal.Decimal      `json:"market_value"`
	// PricedHoldings counts holdings a quote was found for; when it is less
	// than the holding count the market value is partial
	PricedHoldings int `json:"priced_holdings"`
}

// QuoteSource resolves market quotes, typically a provider chain behind a
// cache
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (portfolio.Quote, error)
}

// Service handles portfolio use cases
type Service struct {
	portfolioRepo portfolio.PortfolioRepository
	holdingRepo   portfolio.HoldingRepository
	quotes        QuoteSource
	logger        *zap.Logger
}

// NewService creates a new portfolio service
func NewService(
	portfolioRepo portfolio.PortfolioRepository,
	holdingRepo portfolio.HoldingRepository,
	quotes QuoteSource,
	logger *zap.Logger,
) *Service {
	return &Service{
		portfolioRepo: portfolioRepo,
		holdingRepo:   holdingRepo,
		quotes:        quotes,
		logger:        logger,
	}
}

// CreatePortfolio creates a new portfolio
func (s *Service) CreatePortfolio(ctx context.Context, ownerID uuid.UUID, input CreatePortfolioInput) (*portfolio.Portfolio, error) {
	p, err := portfolio.NewPortfolio(ownerID, input.Name, valueobject.Currency(input.Currency))
	if err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create portfolio", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create portfolio")
	}
	return p, nil
}

// ListPortfolios returns the owner's portfolios
func (s *Service) ListPortfolios(ctx context.Context, ownerID uuid.UUID) ([]*portfolio.Portfolio, error) {
	return s.portfolioRepo.List(ctx, ownerID)
}

// DeletePortfolio removes a portfolio and its holdings
func (s *Service) DeletePortfolio(ctx context.Context, ownerID, portfolioID uuid.UUID) error {
	return s.portfolioRepo.Delete(ctx, ownerID, portfolioID)
}

// Buy adds units to a holding, opening the position on first purchase.
// The average cost is blended across buys.
func (s *Service) Buy(ctx context.Context, ownerID, portfolioID uuid.UUID, input TradeInput) (*portfolio.Holding, error) {
	if _, err := s.portfolioRepo.FindByID(ctx, ownerID, portfolioID); err != nil {
		return nil, err
	}

	holding, err := s.holdingRepo.FindBySymbol(ctx, ownerID, portfolioID, input.Symbol)
	if errors.Is(err, shared.ErrNotFound) {
		holding, err = portfolio.NewHolding(ownerID, portfolioID, input.Symbol, input.Units, input.Price)
		if err != nil {
			return nil, err
		}
		if err := s.holdingRepo.Create(ctx, holding); err != nil {
			s.logger.Error("Failed to open holding", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record purchase")
		}
		s.logger.Info("Position opened",
			zap.String("symbol", holding.Symbol),
			zap.String("units", holding.Units.String()))
		return holding, nil
	}
	if err != nil {
		return nil, err
	}

	if err := holding.Buy(input.Units, input.Price); err != nil {
		return nil, err
	}
	if err := s.holdingRepo.Update(ctx, holding); err != nil {
		s.logger.Error("Failed to update holding", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record purchase")
	}
	return holding, nil
}

// Sell removes units from a holding. A fully sold position is deleted.
func (s *Service) Sell(ctx context.Context, ownerID, portfolioID uuid.UUID, input TradeInput) (*portfolio.Holding, error) {
	holding, err := s.holdingRepo.FindBySymbol(ctx, ownerID, portfolioID, input.Symbol)
	if err != nil {
		return nil, err
	}

	if err := holding.Sell(input.Units); err != nil {
		return nil, err
	}

	if holding.IsClosed() {
		if err := s.holdingRepo.Delete(ctx, ownerID, holding.ID); err != nil {
			s.logger.Error("Failed to close holding", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record sale")
		}
		s.logger.Info("Position closed", zap.String("symbol", holding.Symbol))
		return holding, nil
	}

	if err := s.holdingRepo.Update(ctx, holding); err != nil {
		s.logger.Error("Failed to update holding", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record sale")
	}
	return holding, nil
}

// Valuation prices every holding in the portfolio with market quotes.
// Holdings without an available quote are listed unpriced rather than
// failing the whole valuation.
func (s *Service) Valuation(ctx context.Context, ownerID, portfolioID uuid.UUID) (*Valuation, error) {
	p, err := s.portfolioRepo.FindByID(ctx, ownerID, portfolioID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepo.ListByPortfolio(ctx, ownerID, portfolioID)
	if err != nil {
		return nil, err
	}

	valuation := &Valuation{
		Portfolio:   p,
		Holdings:    make([]HoldingView, 0, len(holdings)),
		CostBasis:   decimal.Zero,
		MarketValue: decimal.Zero,
	}

	for _, holding := range holdings {
		view := HoldingView{Holding: holding}
		valuation.CostBasis = valuation.CostBasis.Add(holding.CostBasis())

		quote, err := s.quotes.GetQuote(ctx, holding.Symbol)
		if err != nil {
			s.logger.Warn("No quote for holding",
				zap.String("symbol", holding.Symbol), zap.Error(err))
			valuation.Holdings = append(valuation.Holdings, view)
			continue
		}

		marketValue := holding.Units.Mul(quote.Price).Round(2)
		gain := marketValue.Sub(holding.CostBasis()).Round(2)
		view.Quote = &quote
		view.MarketValue = &marketValue
		view.UnrealizedGain = &gain

		valuation.MarketValue = valuation.MarketValue.Add(marketValue)
		valuation.PricedHoldings++
		valuation.Holdings = append(valuation.Holdings, view)
	}

	valuation.CostBasis = valuation.CostBasis.Round(2)
	return valuation, nil
}
