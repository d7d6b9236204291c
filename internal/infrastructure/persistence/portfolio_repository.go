package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/portfolio"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormPortfolioRepository implements portfolio.PortfolioRepository using GORM
type GormPortfolioRepository struct {
	db *gorm.DB
}

// NewGormPortfolioRepository creates a new GormPortfolioRepository
func NewGormPortfolioRepository(db *gorm.DB) *GormPortfolioRepository {
	return &GormPortfolioRepository{db: db}
}

// Create inserts a new portfolio
func (r *GormPortfolioRepository) Create(ctx context.Context, p *portfolio.Portfolio) error {
	return r.db.WithContext(ctx).Create(models.PortfolioModelFromDomain(p)).Error
}

// Update saves portfolio changes
func (r *GormPortfolioRepository) Update(ctx context.Context, p *portfolio.Portfolio) error {
	return r.db.WithContext(ctx).Save(models.PortfolioModelFromDomain(p)).Error
}

// Delete removes a portfolio and its holdings
func (r *GormPortfolioRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.PortfolioModel{}, "owner_id = ? AND id = ?", ownerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&models.HoldingModel{}, "owner_id = ? AND portfolio_id = ?", ownerID, id).Error
	})
}

// FindByID finds a portfolio by ID for the owner
func (r *GormPortfolioRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Portfolio, error) {
	var model models.PortfolioModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the owner's portfolios
func (r *GormPortfolioRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*portfolio.Portfolio, error) {
	var portfolioModels []models.PortfolioModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&portfolioModels).Error; err != nil {
		return nil, err
	}
	portfolios := make([]*portfolio.Portfolio, len(portfolioModels))
	for i := range portfolioModels {
		portfolios[i] = portfolioModels[i].ToDomain()
	}
	return portfolios, nil
}

var _ portfolio.PortfolioRepository = (*GormPortfolioRepository)(nil)

// GormHoldingRepository implements portfolio.HoldingRepository using GORM
type GormHoldingRepository struct {
	db *gorm.DB
}

// NewGormHoldingRepository creates a new GormHoldingRepository
func NewGormHoldingRepository(db *gorm.DB) *GormHoldingRepository {
	return &GormHoldingRepository{db: db}
}

// Create inserts a new holding
func (r *GormHoldingRepository) Create(ctx context.Context, h *portfolio.Holding) error {
	return r.db.WithContext(ctx).Create(models.HoldingModelFromDomain(h)).Error
}

// Update saves holding changes
func (r *GormHoldingRepository) Update(ctx context.Context, h *portfolio.Holding) error {
	return r.db.WithContext(ctx).Save(models.HoldingModelFromDomain(h)).Error
}

// Delete removes a holding
func (r *GormHoldingRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HoldingModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a holding by ID for the owner
func (r *GormHoldingRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*portfolio.Holding, error) {
	var model models.HoldingModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySymbol finds the holding for a symbol within a portfolio
func (r *GormHoldingRepository) FindBySymbol(ctx context.Context, ownerID, portfolioID uuid.UUID, symbol string) (*portfolio.Holding, error) {
	var model models.HoldingModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND portfolio_id = ? AND symbol = ?", ownerID, portfolioID, symbol).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByPortfolio returns all holdings in a portfolio
func (r *GormHoldingRepository) ListByPortfolio(ctx context.Context, ownerID, portfolioID uuid.UUID) ([]*portfolio.Holding, error) {
	var holdingModels []models.HoldingModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND portfolio_id = ?", ownerID, portfolioID).
		Order("symbol ASC").
		Find(&holdingModels).Error; err != nil {
		return nil, err
	}
	holdings := make([]*portfolio.Holding, len(holdingModels))
	for i := range holdingModels {
		holdings[i] = holdingModels[i].ToDomain()
	}
	return holdings, nil
}

var _ portfolio.HoldingRepository = (*GormHoldingRepository)(nil)
