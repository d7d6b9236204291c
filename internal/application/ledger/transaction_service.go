package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
)

// TransactionService handles ledger entry use cases
type TransactionService struct {
	txRepo       ledger.TransactionRepository
	accountRepo  ledger.AccountRepository
	categoryRepo ledger.CategoryRepository
	logger       *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRepo ledger.TransactionRepository,
	accountRepo ledger.AccountRepository,
	categoryRepo ledger.CategoryRepository,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		txRepo:       txRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateTransaction records an income or expense entry
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID uuid.UUID, input CreateTransactionInput) (*ledger.Transaction, error) {
	account, err := s.accountRepo.FindByID(ctx, ownerID, input.AccountID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account not found")
	}
	if account.Archived {
		return nil, shared.NewDomainError("ACCOUNT_ARCHIVED", "Cannot post to an archived account")
	}

	txType := ledger.TransactionType(input.Type)
	if input.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, ownerID, *input.CategoryID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		if string(category.Type) != string(txType) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category type does not match transaction type")
		}
	}

	tx, err := ledger.NewTransaction(ownerID, input.AccountID, input.CategoryID, txType,
		input.Amount, input.Date, input.Description)
	if err != nil {
		return nil, err
	}
	tx.Notes = input.Notes

	if err := s.txRepo.Create(ctx, tx); err != nil {
		s.logger.Error("Failed to create transaction", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create transaction")
	}

	s.logger.Info("Transaction created",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", tx.Type.String()))
	return tx, nil
}

// CreateTransfer records both legs of a transfer between two accounts
func (s *TransactionService) CreateTransfer(ctx context.Context, ownerID uuid.UUID, input CreateTransferInput) (*TransferResult, error) {
	for _, accountID := range []uuid.UUID{input.FromAccountID, input.ToAccountID} {
		account, err := s.accountRepo.FindByID(ctx, ownerID, accountID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account not found")
		}
		if account.Archived {
			return nil, shared.NewDomainError("ACCOUNT_ARCHIVED", "Cannot post to an archived account")
		}
	}

	out, in, err := ledger.NewTransferPair(ownerID, input.FromAccountID, input.ToAccountID,
		input.Amount, input.Date, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.txRepo.CreatePair(ctx, out, in); err != nil {
		s.logger.Error("Failed to create transfer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create transfer")
	}

	s.logger.Info("Transfer created",
		zap.String("transfer_id", out.TransferID.String()),
		zap.String("from", input.FromAccountID.String()),
		zap.String("to", input.ToAccountID.String()))
	return &TransferResult{Out: out, In: in}, nil
}

// GetTransaction returns one transaction
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, txID uuid.UUID) (*ledger.Transaction, error) {
	return s.txRepo.FindByID(ctx, ownerID, txID)
}

// ListTransactions returns a filtered, paginated page of transactions
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, filter ledger.TransactionFilter) (shared.Paginated[*ledger.Transaction], error) {
	return s.txRepo.List(ctx, ownerID, filter)
}

// UpdateTransaction changes mutable fields of a non-transfer transaction
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID, txID uuid.UUID, input UpdateTransactionInput) (*ledger.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, ownerID, txID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, ownerID, *input.CategoryID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		if string(category.Type) != string(tx.Type) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category type does not match transaction type")
		}
	}

	if err := tx.Update(input.CategoryID, input.Amount, input.Date, input.Description, input.Notes); err != nil {
		return nil, err
	}
	if err := s.txRepo.Update(ctx, tx); err != nil {
		s.logger.Error("Failed to update transaction", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update transaction")
	}
	return tx, nil
}

// DeleteTransaction soft deletes a transaction. Deleting either leg of a
// transfer removes both.
func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, txID uuid.UUID) error {
	if err := s.txRepo.SoftDelete(ctx, ownerID, txID); err != nil {
		return err
	}
	s.logger.Info("Transaction deleted", zap.String("transaction_id", txID.String()))
	return nil
}

// MonthlySummary totals income, expense and net for one calendar month
func (s *TransactionService) MonthlySummary(ctx context.Context, ownerID uuid.UUID, month time.Time) (ledger.MonthlySummary, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.txRepo.Summarize(ctx, ownerID, from, from.AddDate(0, 1, 0))
}

// SetAttachment records the storage key of an uploaded receipt
func (s *TransactionService) SetAttachment(ctx context.Context, ownerID, txID uuid.UUID, key string) (*ledger.Transaction, error) {
	tx, err := s.txRepo.FindByID(ctx, ownerID, txID)
	if err != nil {
		return nil, err
	}
	tx.SetAttachment(key)
	if err := s.txRepo.Update(ctx, tx); err != nil {
		s.logger.Error("Failed to store attachment key", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update transaction")
	}
	return tx, nil
}
