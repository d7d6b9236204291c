package ledger

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
)

// AttachmentStorage abstracts the object store holding receipt files
type AttachmentStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// AttachmentUpload carries the presigned upload target for a receipt
type AttachmentUpload struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AttachmentService manages receipt files attached to transactions
type AttachmentService struct {
	txRepo  ledger.TransactionRepository
	storage AttachmentStorage
	logger  *zap.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(txRepo ledger.TransactionRepository, storage AttachmentStorage, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{
		txRepo:  txRepo,
		storage: storage,
		logger:  logger,
	}
}

// RequestUpload issues a presigned upload URL for a transaction receipt.
// The returned storage key is confirmed with Attach after the upload.
func (s *AttachmentService) RequestUpload(ctx context.Context, ownerID, txID uuid.UUID, filename, contentType string) (*AttachmentUpload, error) {
	if _, err := s.txRepo.FindByID(ctx, ownerID, txID); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot be empty")
	}

	// Keys are namespaced per owner and transaction; the random element
	// prevents overwrites when a receipt is replaced.
	key := fmt.Sprintf("receipts/%s/%s/%s-%s", ownerID, txID, uuid.NewString()[:8], path.Base(filename))

	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, 0)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_FAILED", "Failed to prepare the upload")
	}

	return &AttachmentUpload{StorageKey: key, UploadURL: url, ExpiresAt: expiresAt}, nil
}

// Attach records an uploaded receipt's storage key on the transaction,
// removing any previously attached object
func (s *AttachmentService) Attach(ctx context.Context, ownerID, txID uuid.UUID, storageKey string) (*ledger.Transaction, error) {
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Storage key cannot be empty")
	}

	tx, err := s.txRepo.FindByID(ctx, ownerID, txID)
	if err != nil {
		return nil, err
	}

	if tx.AttachmentKey != "" && tx.AttachmentKey != storageKey {
		if err := s.storage.DeleteObject(ctx, tx.AttachmentKey); err != nil {
			s.logger.Warn("Failed to delete replaced receipt",
				zap.String("key", tx.AttachmentKey), zap.Error(err))
		}
	}

	tx.SetAttachment(storageKey)
	if err := s.txRepo.Update(ctx, tx); err != nil {
		s.logger.Error("Failed to store attachment key", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update transaction")
	}
	return tx, nil
}

// DownloadURL issues a presigned download URL for a transaction's receipt
func (s *AttachmentService) DownloadURL(ctx context.Context, ownerID, txID uuid.UUID) (string, error) {
	tx, err := s.txRepo.FindByID(ctx, ownerID, txID)
	if err != nil {
		return "", err
	}
	if tx.AttachmentKey == "" {
		return "", shared.NewDomainError("NOT_FOUND", "Transaction has no attachment")
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, tx.AttachmentKey, 0)
	if err != nil {
		s.logger.Error("Failed to presign download", zap.Error(err))
		return "", shared.NewDomainError("STORAGE_FAILED", "Failed to prepare the download")
	}
	return url, nil
}

// Remove deletes the receipt object and clears the transaction's key
func (s *AttachmentService) Remove(ctx context.Context, ownerID, txID uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, ownerID, txID)
	if err != nil {
		return err
	}
	if tx.AttachmentKey == "" {
		return nil
	}

	if err := s.storage.DeleteObject(ctx, tx.AttachmentKey); err != nil {
		s.logger.Warn("Failed to delete receipt object",
			zap.String("key", tx.AttachmentKey), zap.Error(err))
	}

	tx.SetAttachment("")
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update transaction")
	}
	return nil
}
