package invoicing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/invoicing"
	"github.com/fintrack/backend/internal/domain/shared"
)

// ClientService handles client use cases
type ClientService struct {
	clientRepo invoicing.ClientRepository
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo invoicing.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// CreateClient registers a new billable client
func (s *ClientService) CreateClient(ctx context.Context, ownerID uuid.UUID, input ClientInput) (*invoicing.Client, error) {
	client, err := invoicing.NewClient(ownerID, input.Name, input.Email, input.Phone,
		input.Company, input.TaxNumber, input.Address)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		s.logger.Error("Failed to create client", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create client")
	}

	s.logger.Info("Client created", zap.String("client_id", client.ID.String()))
	return client, nil
}

// GetClient returns one client
func (s *ClientService) GetClient(ctx context.Context, ownerID, clientID uuid.UUID) (*invoicing.Client, error) {
	return s.clientRepo.FindByID(ctx, ownerID, clientID)
}

// ListClients returns a paginated page of clients
func (s *ClientService) ListClients(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[*invoicing.Client], error) {
	return s.clientRepo.List(ctx, ownerID, filter)
}

// UpdateClient changes mutable client fields
func (s *ClientService) UpdateClient(ctx context.Context, ownerID, clientID uuid.UUID, input ClientInput) (*invoicing.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, err
	}

	if err := client.Update(input.Name, input.Email, input.Phone, input.Company,
		input.TaxNumber, input.Address); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Update(ctx, client); err != nil {
		s.logger.Error("Failed to update client", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update client")
	}
	return client, nil
}

// DeleteClient removes a client without invoices. Clients with billing
// history are archived instead of deleted.
func (s *ClientService) DeleteClient(ctx context.Context, ownerID, clientID uuid.UUID) error {
	has, err := s.clientRepo.HasInvoices(ctx, ownerID, clientID)
	if err != nil {
		s.logger.Error("Failed to check client invoices", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete client")
	}
	if has {
		client, err := s.clientRepo.FindByID(ctx, ownerID, clientID)
		if err != nil {
			return err
		}
		client.Archive()
		if err := s.clientRepo.Update(ctx, client); err != nil {
			s.logger.Error("Failed to archive client", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive client")
		}
		s.logger.Info("Client archived instead of deleted",
			zap.String("client_id", clientID.String()))
		return nil
	}

	if err := s.clientRepo.Delete(ctx, ownerID, clientID); err != nil {
		return err
	}
	s.logger.Info("Client deleted", zap.String("client_id", clientID.String()))
	return nil
}
