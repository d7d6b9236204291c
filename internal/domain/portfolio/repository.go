package portfolio

import (
	"context"

	"github.com/google/uuid"
)

// PortfolioRepository defines persistence operations for portfolios
type PortfolioRepository interface {
	Create(ctx context.Context, p *Portfolio) error
	Update(ctx context.Context, p *Portfolio) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Portfolio, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Portfolio, error)
}

// HoldingRepository defines persistence operations for holdings
type HoldingRepository interface {
	Create(ctx context.Context, h *Holding) error
	Update(ctx context.Context, h *Holding) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Holding, error)
	FindBySymbol(ctx context.Context, ownerID, portfolioID uuid.UUID, symbol string) (*Holding, error)
	ListByPortfolio(ctx context.Context, ownerID, portfolioID uuid.UUID) ([]*Holding, error)
}
