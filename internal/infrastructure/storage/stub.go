package storage

import (
	"context"
	"errors"
	"time"

	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
)

var _ ledgerapp.AttachmentStorage = (*StubAttachmentStorage)(nil)

// ErrStorageDisabled is returned by the stub for every operation
var ErrStorageDisabled = errors.New("object storage is not configured")

// StubAttachmentStorage stands in when object storage is disabled so the
// rest of the application can be wired without an S3 backend
type StubAttachmentStorage struct{}

// NewStubAttachmentStorage creates the disabled-storage stub
func NewStubAttachmentStorage() *StubAttachmentStorage {
	return &StubAttachmentStorage{}
}

func (s *StubAttachmentStorage) GenerateUploadURL(context.Context, string, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrStorageDisabled
}

func (s *StubAttachmentStorage) GenerateDownloadURL(context.Context, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrStorageDisabled
}

func (s *StubAttachmentStorage) DeleteObject(context.Context, string) error {
	return ErrStorageDisabled
}
