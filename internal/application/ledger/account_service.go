package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

// AccountService handles account use cases
type AccountService struct {
	accountRepo ledger.AccountRepository
	logger      *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo ledger.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateAccount opens a new account
func (s *AccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, input CreateAccountInput) (*ledger.Account, error) {
	account, err := ledger.NewAccount(ownerID, input.Name, ledger.AccountType(input.Type),
		valueobject.Currency(input.Currency), input.InitialBalance, input.SnapshotDate)
	if err != nil {
		return nil, err
	}
	account.Institution = input.Institution

	if err := s.accountRepo.Create(ctx, account); err != nil {
		s.logger.Error("Failed to create account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("type", account.Type.String()))
	return account, nil
}

// GetAccount returns an account with its derived balance
func (s *AccountService) GetAccount(ctx context.Context, ownerID, accountID uuid.UUID) (*AccountView, error) {
	account, err := s.accountRepo.FindByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}
	return s.withBalance(ctx, ownerID, account)
}

// ListAccounts returns the owner's accounts with balances
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*AccountView, error) {
	accounts, err := s.accountRepo.List(ctx, ownerID, includeArchived)
	if err != nil {
		return nil, err
	}

	views := make([]*AccountView, len(accounts))
	for i, account := range accounts {
		view, err := s.withBalance(ctx, ownerID, account)
		if err != nil {
			return nil, err
		}
		views[i] = view
	}
	return views, nil
}

// UpdateAccount changes mutable account fields
func (s *AccountService) UpdateAccount(ctx context.Context, ownerID, accountID uuid.UUID, input UpdateAccountInput) (*ledger.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := account.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Institution != nil {
		account.Institution = *input.Institution
		account.Touch()
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		s.logger.Error("Failed to update account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
	}
	return account, nil
}

// Resnapshot replaces the account's opening balance snapshot
func (s *AccountService) Resnapshot(ctx context.Context, ownerID, accountID uuid.UUID, input ResnapshotInput) (*AccountView, error) {
	account, err := s.accountRepo.FindByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.Resnapshot(input.Balance, input.Date); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Update(ctx, account); err != nil {
		s.logger.Error("Failed to resnapshot account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update account")
	}

	s.logger.Info("Account resnapshotted", zap.String("account_id", account.ID.String()))
	return s.withBalance(ctx, ownerID, account)
}

// ArchiveAccount hides the account from active listings
func (s *AccountService) ArchiveAccount(ctx context.Context, ownerID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	account.Archive()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		s.logger.Error("Failed to archive account", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive account")
	}
	return nil
}

// UnarchiveAccount restores an archived account
func (s *AccountService) UnarchiveAccount(ctx context.Context, ownerID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	account.Unarchive()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		s.logger.Error("Failed to unarchive account", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unarchive account")
	}
	return nil
}

// DeleteAccount removes an account that has no transaction history.
// Accounts with history must be archived instead.
func (s *AccountService) DeleteAccount(ctx context.Context, ownerID, accountID uuid.UUID) error {
	has, err := s.accountRepo.HasTransactions(ctx, ownerID, accountID)
	if err != nil {
		s.logger.Error("Failed to check account history", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete account")
	}
	if has {
		return shared.NewDomainError("ACCOUNT_IN_USE", "Account has transactions; archive it instead")
	}

	if err := s.accountRepo.Delete(ctx, ownerID, accountID); err != nil {
		return err
	}
	s.logger.Info("Account deleted", zap.String("account_id", accountID.String()))
	return nil
}

func (s *AccountService) withBalance(ctx context.Context, ownerID uuid.UUID, account *ledger.Account) (*AccountView, error) {
	delta, err := s.accountRepo.BalanceDelta(ctx, ownerID, account.ID, account.SnapshotDate)
	if err != nil {
		s.logger.Error("Failed to compute account balance", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute account balance")
	}
	return &AccountView{
		Account: account,
		Balance: account.BalanceFrom(delta).Amount(),
	}, nil
}
