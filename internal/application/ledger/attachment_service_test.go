package ledger

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
)

// fakeAttachmentStorage records presign and delete calls
type fakeAttachmentStorage struct {
	deleted []string
}

func (s *fakeAttachmentStorage) GenerateUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, time.Time, error) {
	return "https://storage.test/upload/" + key, time.Now().Add(15 * time.Minute), nil
}

func (s *fakeAttachmentStorage) GenerateDownloadURL(_ context.Context, key string, _ time.Duration) (string, time.Time, error) {
	return "https://storage.test/download/" + key, time.Now().Add(15 * time.Minute), nil
}

func (s *fakeAttachmentStorage) DeleteObject(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func TestAttachmentService(t *testing.T) {
	ownerID := uuid.New()

	newTx := func(t *testing.T, repo *fakeTransactionRepository) *ledger.Transaction {
		t.Helper()
		tx, err := ledger.NewTransaction(ownerID, uuid.New(), nil, ledger.TransactionTypeExpense,
			decimal.NewFromInt(40), time.Now(), "Office supplies")
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), tx))
		return tx
	}

	t.Run("upload key is scoped to the transaction", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		storage := &fakeAttachmentStorage{}
		svc := NewAttachmentService(repo, storage, zap.NewNop())
		tx := newTx(t, repo)

		upload, err := svc.RequestUpload(context.Background(), ownerID, tx.ID, "receipt.pdf", "application/pdf")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(upload.StorageKey, "receipts/"+ownerID.String()+"/"+tx.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(upload.StorageKey, "-receipt.pdf"))
		assert.Contains(t, upload.UploadURL, upload.StorageKey)
	})

	t.Run("attach replaces the previous object", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		storage := &fakeAttachmentStorage{}
		svc := NewAttachmentService(repo, storage, zap.NewNop())
		tx := newTx(t, repo)

		_, err := svc.Attach(context.Background(), ownerID, tx.ID, "receipts/old-key")
		require.NoError(t, err)

		updated, err := svc.Attach(context.Background(), ownerID, tx.ID, "receipts/new-key")
		require.NoError(t, err)

		assert.Equal(t, "receipts/new-key", updated.AttachmentKey)
		assert.Equal(t, []string{"receipts/old-key"}, storage.deleted)
	})

	t.Run("download requires an attachment", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		svc := NewAttachmentService(repo, &fakeAttachmentStorage{}, zap.NewNop())
		tx := newTx(t, repo)

		_, err := svc.DownloadURL(context.Background(), ownerID, tx.ID)
		require.Error(t, err)

		_, err = svc.Attach(context.Background(), ownerID, tx.ID, "receipts/key")
		require.NoError(t, err)

		url, err := svc.DownloadURL(context.Background(), ownerID, tx.ID)
		require.NoError(t, err)
		assert.Contains(t, url, "receipts/key")
	})

	t.Run("remove clears the key and deletes the object", func(t *testing.T) {
		repo := newFakeTransactionRepository()
		storage := &fakeAttachmentStorage{}
		svc := NewAttachmentService(repo, storage, zap.NewNop())
		tx := newTx(t, repo)

		_, err := svc.Attach(context.Background(), ownerID, tx.ID, "receipts/key")
		require.NoError(t, err)

		require.NoError(t, svc.Remove(context.Background(), ownerID, tx.ID))

		stored, err := repo.FindByID(context.Background(), ownerID, tx.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.AttachmentKey)
		assert.Contains(t, storage.deleted, "receipts/key")
	})
}
