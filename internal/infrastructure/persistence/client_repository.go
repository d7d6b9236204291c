package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// GormClientRepository implements invoicing.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create inserts a new client
func (r *GormClientRepository) Create(ctx context.Context, client *invoicing.Client) error {
	return r.db.WithContext(ctx).Create(models.ClientModelFromDomain(client)).Error
}

// Update saves client changes
func (r *GormClientRepository) Update(ctx context.Context, client *invoicing.Client) error {
	return r.db.WithContext(ctx).Save(models.ClientModelFromDomain(client)).Error
}

// Delete removes a client
func (r *GormClientRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a client by ID for the owner
func (r *GormClientRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*invoicing.Client, error) {
	var model models.ClientModel
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

// List returns a paginated page of the owner's clients
func (r *GormClientRepository) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[*invoicing.Client], error) {
	var empty shared.Paginated[*invoicing.Client]

	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("owner_id = ?", ownerID)
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, err
	}

	sortField := ValidateSortField(filter.OrderBy, ClientSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		sortOrder = "ASC"
	}

	var clientModels []models.ClientModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&clientModels).Error; err != nil {
		return empty, err
	}

	clients := make([]*invoicing.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return shared.NewPaginated(clients, total, filter.Page, filter.PageSize), nil
}

// HasInvoices reports whether any invoice references the client
func (r *GormClientRepository) HasInvoices(ctx context.Context, ownerID, clientID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("owner_id = ? AND client_id = ?", ownerID, clientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ invoicing.ClientRepository = (*GormClientRepository)(nil)
