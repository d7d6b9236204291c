package portfolio

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// Portfolio groups stock holdings under one name and currency
type Portfolio struct {
	shared.OwnedEntity
	Name     string               `json:"name"`
	Currency valueobject.Currency `json:"currency"`
}

// NewPortfolio creates a new portfolio
func NewPortfolio(ownerID uuid.UUID, name string, currency valueobject.Currency) (*Portfolio, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Portfolio name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Portfolio name cannot exceed 100 characters")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Portfolio{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Currency:    currency,
	}, nil
}

// Rename changes the portfolio name
func (p *Portfolio) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Portfolio name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

// Holding is a position in one symbol. AvgCost is the weighted-average
// purchase price per unit.
type Holding struct {
	shared.OwnedEntity
	PortfolioID uuid.UUID       `json:"portfolio_id"`
	Symbol      string          `json:"symbol"`
	Units       decimal.Decimal `json:"units"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
}

// NewHolding opens a position with an initial buy
func NewHolding(ownerID, portfolioID uuid.UUID, symbol string, units, pricePerUnit decimal.Decimal) (*Holding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || len(symbol) > 12 {
		return nil, shared.NewDomainError("INVALID_SYMBOL", "Symbol must be 1 to 12 characters")
	}
	if portfolioID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PORTFOLIO", "Portfolio ID cannot be empty")
	}
	if units.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNITS", "Units must be positive")
	}
	if pricePerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per unit cannot be negative")
	}
	return &Holding{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		PortfolioID: portfolioID,
		Symbol:      symbol,
		Units:       units,
		AvgCost:     pricePerUnit,
	}, nil
}

// Buy adds units at the given price, blending the average cost:
// newAvg = (oldUnits*oldAvg + units*price) / (oldUnits + units)
func (h *Holding) Buy(units, pricePerUnit decimal.Decimal) error {
	if units.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_UNITS", "Units must be positive")
	}
	if pricePerUnit.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price per unit cannot be negative")
	}
	totalCost := h.Units.Mul(h.AvgCost).Add(units.Mul(pricePerUnit))
	h.Units = h.Units.Add(units)
	h.AvgCost = totalCost.Div(h.Units)
	h.Touch()
	return nil
}

// Sell removes units; the average cost of the remainder is unchanged.
// Selling more than held is rejected.
func (h *Holding) Sell(units decimal.Decimal) error {
	if units.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_UNITS", "Units must be positive")
	}
	if units.GreaterThan(h.Units) {
		return shared.ErrInsufficientUnits
	}
	h.Units = h.Units.Sub(units)
	h.Touch()
	return nil
}

// IsClosed returns true once all units are sold
func (h *Holding) IsClosed() bool {
	return h.Units.IsZero()
}

// CostBasis returns units times weighted-average cost
func (h *Holding) CostBasis() decimal.Decimal {
	return h.Units.Mul(h.AvgCost)
}
