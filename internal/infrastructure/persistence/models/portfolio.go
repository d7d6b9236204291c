package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/portfolio"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// PortfolioModel is the persistence model for portfolio.Portfolio
type PortfolioModel struct {
	OwnedModel
	Name     string `gorm:"type:varchar(100);not null"`
	Currency string `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for PortfolioModel
func (PortfolioModel) TableName() string {
	return "portfolios"
}

// ToDomain converts the model to a domain portfolio
func (m *PortfolioModel) ToDomain() *portfolio.Portfolio {
	return &portfolio.Portfolio{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		Name:        m.Name,
		Currency:    valueobject.Currency(m.Currency),
	}
}

// PortfolioModelFromDomain converts a domain portfolio to the persistence model
func PortfolioModelFromDomain(p *portfolio.Portfolio) *PortfolioModel {
	m := &PortfolioModel{
		Name:     p.Name,
		Currency: string(p.Currency),
	}
	m.FromDomainOwned(p.OwnedEntity)
	return m
}

// HoldingModel is the persistence model for portfolio.Holding
type HoldingModel struct {
	OwnedModel
	PortfolioID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Symbol      string          `gorm:"type:varchar(12);not null;index"`
	Units       decimal.Decimal `gorm:"type:numeric(18,6);not null"`
	AvgCost     decimal.Decimal `gorm:"type:numeric(18,6);not null"`
}

// TableName returns the table name for HoldingModel
func (HoldingModel) TableName() string {
	return "holdings"
}

// ToDomain converts the model to a domain holding
func (m *HoldingModel) ToDomain() *portfolio.Holding {
	return &portfolio.Holding{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		PortfolioID: m.PortfolioID,
		Symbol:      m.Symbol,
		Units:       m.Units,
		AvgCost:     m.AvgCost,
	}
}

// HoldingModelFromDomain converts a domain holding to the persistence model
func HoldingModelFromDomain(h *portfolio.Holding) *HoldingModel {
	m := &HoldingModel{
		PortfolioID: h.PortfolioID,
		Symbol:      h.Symbol,
		Units:       h.Units,
		AvgCost:     h.AvgCost,
	}
	m.FromDomainOwned(h.OwnedEntity)
	return m
}
