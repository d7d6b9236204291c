package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
)

// fakeAccountRepository is an in-memory ledger.AccountRepository
type fakeAccountRepository struct {
	accounts map[uuid.UUID]*ledger.Account
	deltas   map[uuid.UUID]decimal.Decimal
	hasTx    map[uuid.UUID]bool
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		accounts: make(map[uuid.UUID]*ledger.Account),
		deltas:   make(map[uuid.UUID]decimal.Decimal),
		hasTx:    make(map[uuid.UUID]bool),
	}
}

func (r *fakeAccountRepository) Create(_ context.Context, a *ledger.Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepository) Update(_ context.Context, a *ledger.Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepository) Delete(_ context.Context, _, id uuid.UUID) error {
	if _, ok := r.accounts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Account, error) {
	a, ok := r.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (r *fakeAccountRepository) List(_ context.Context, ownerID uuid.UUID, includeArchived bool) ([]*ledger.Account, error) {
	var out []*ledger.Account
	for _, a := range r.accounts {
		if a.OwnerID != ownerID {
			continue
		}
		if a.Archived && !includeArchived {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAccountRepository) BalanceDelta(_ context.Context, _, accountID uuid.UUID, _ time.Time) (decimal.Decimal, error) {
	return r.deltas[accountID], nil
}

func (r *fakeAccountRepository) HasTransactions(_ context.Context, _, accountID uuid.UUID) (bool, error) {
	return r.hasTx[accountID], nil
}

// fakeTransactionRepository captures created transactions
type fakeTransactionRepository struct {
	ledger.TransactionRepository
	created []*ledger.Transaction
	byID    map[uuid.UUID]*ledger.Transaction
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{byID: make(map[uuid.UUID]*ledger.Transaction)}
}

func (r *fakeTransactionRepository) Create(_ context.Context, tx *ledger.Transaction) error {
	r.created = append(r.created, tx)
	r.byID[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepository) CreatePair(_ context.Context, out, in *ledger.Transaction) error {
	r.created = append(r.created, out, in)
	r.byID[out.ID] = out
	r.byID[in.ID] = in
	return nil
}

func (r *fakeTransactionRepository) Update(_ context.Context, tx *ledger.Transaction) error {
	r.byID[tx.ID] = tx
	return nil
}

func (r *fakeTransactionRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	tx, ok := r.byID[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

func (r *fakeTransactionRepository) Summarize(_ context.Context, ownerID uuid.UUID, from, to time.Time) (ledger.MonthlySummary, error) {
	summary := ledger.MonthlySummary{Month: from, Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range r.byID {
		if tx.OwnerID != ownerID || tx.TransferID != nil {
			continue
		}
		if tx.Date.Before(from) || !tx.Date.Before(to) {
			continue
		}
		switch tx.Type {
		case ledger.TransactionTypeIncome:
			summary.Income = summary.Income.Add(tx.Amount)
		case ledger.TransactionTypeExpense:
			summary.Expense = summary.Expense.Sub(tx.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expense)
	return summary, nil
}

// fakeCategoryRepository holds categories by ID
type fakeCategoryRepository struct {
	ledger.CategoryRepository
	categories map[uuid.UUID]*ledger.Category
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: make(map[uuid.UUID]*ledger.Category)}
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func newTestTransactionService(t *testing.T) (*TransactionService, *fakeAccountRepository, *fakeTransactionRepository, *fakeCategoryRepository) {
	t.Helper()
	accounts := newFakeAccountRepository()
	txs := newFakeTransactionRepository()
	categories := newFakeCategoryRepository()
	svc := NewTransactionService(txs, accounts, categories, zap.NewNop())
	return svc, accounts, txs, categories
}

func seedAccount(t *testing.T, repo *fakeAccountRepository, ownerID uuid.UUID) *ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(ownerID, "Checking", ledger.AccountTypeChecking, "USD",
		decimal.NewFromInt(1000), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	ownerID := uuid.New()

	t.Run("stores expense with negative amount", func(t *testing.T) {
		svc, accounts, txs, _ := newTestTransactionService(t)
		account := seedAccount(t, accounts, ownerID)

		tx, err := svc.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
			AccountID:   account.ID,
			Type:        "EXPENSE",
			Amount:      decimal.RequireFromString("42.50"),
			Date:        time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			Description: "Groceries",
		})

		require.NoError(t, err)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-42.50")))
		assert.Len(t, txs.created, 1)
	})

	t.Run("rejects archived account", func(t *testing.T) {
		svc, accounts, _, _ := newTestTransactionService(t)
		account := seedAccount(t, accounts, ownerID)
		account.Archive()

		_, err := svc.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
			AccountID: account.ID,
			Type:      "INCOME",
			Amount:    decimal.NewFromInt(100),
			Date:      time.Now(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_ARCHIVED", domainErr.Code)
	})

	t.Run("rejects category type mismatch", func(t *testing.T) {
		svc, accounts, _, categories := newTestTransactionService(t)
		account := seedAccount(t, accounts, ownerID)

		category, err := ledger.NewCategory(ownerID, "Salary", ledger.CategoryTypeIncome, nil, "")
		require.NoError(t, err)
		categories.categories[category.ID] = category

		_, err = svc.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
			AccountID:  account.ID,
			CategoryID: &category.ID,
			Type:       "EXPENSE",
			Amount:     decimal.NewFromInt(50),
			Date:       time.Now(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})

	t.Run("rejects account owned by someone else", func(t *testing.T) {
		svc, accounts, _, _ := newTestTransactionService(t)
		account := seedAccount(t, accounts, uuid.New())

		_, err := svc.CreateTransaction(context.Background(), ownerID, CreateTransactionInput{
			AccountID: account.ID,
			Type:      "INCOME",
			Amount:    decimal.NewFromInt(100),
			Date:      time.Now(),
		})

		require.Error(t, err)
	})
}

func TestTransactionService_CreateTransfer(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates linked legs", func(t *testing.T) {
		svc, accounts, txs, _ := newTestTransactionService(t)
		from := seedAccount(t, accounts, ownerID)
		to := seedAccount(t, accounts, ownerID)

		result, err := svc.CreateTransfer(context.Background(), ownerID, CreateTransferInput{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        decimal.NewFromInt(250),
			Date:          time.Now(),
			Description:   "Savings top-up",
		})

		require.NoError(t, err)
		assert.Len(t, txs.created, 2)
		assert.True(t, result.Out.Amount.Equal(decimal.NewFromInt(-250)))
		assert.True(t, result.In.Amount.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, *result.Out.TransferID, *result.In.TransferID)
		assert.Equal(t, result.In.ID, *result.Out.CounterpartID)
		assert.Equal(t, result.Out.ID, *result.In.CounterpartID)
	})

	t.Run("rejects same-account transfer", func(t *testing.T) {
		svc, accounts, _, _ := newTestTransactionService(t)
		account := seedAccount(t, accounts, ownerID)

		_, err := svc.CreateTransfer(context.Background(), ownerID, CreateTransferInput{
			FromAccountID: account.ID,
			ToAccountID:   account.ID,
			Amount:        decimal.NewFromInt(10),
			Date:          time.Now(),
		})

		require.Error(t, err)
	})
}

func TestTransactionService_UpdateTransaction(t *testing.T) {
	ownerID := uuid.New()

	t.Run("rejects editing a transfer leg", func(t *testing.T) {
		svc, accounts, _, _ := newTestTransactionService(t)
		from := seedAccount(t, accounts, ownerID)
		to := seedAccount(t, accounts, ownerID)

		result, err := svc.CreateTransfer(context.Background(), ownerID, CreateTransferInput{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        decimal.NewFromInt(250),
			Date:          time.Now(),
		})
		require.NoError(t, err)

		_, err = svc.UpdateTransaction(context.Background(), ownerID, result.Out.ID, UpdateTransactionInput{
			Amount: decimal.NewFromInt(300),
			Date:   time.Now(),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestAccountService_DeleteAccount(t *testing.T) {
	ownerID := uuid.New()

	t.Run("refuses to delete account with history", func(t *testing.T) {
		accounts := newFakeAccountRepository()
		svc := NewAccountService(accounts, zap.NewNop())
		account := seedAccount(t, accounts, ownerID)
		accounts.hasTx[account.ID] = true

		err := svc.DeleteAccount(context.Background(), ownerID, account.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_IN_USE", domainErr.Code)
	})

	t.Run("deletes empty account", func(t *testing.T) {
		accounts := newFakeAccountRepository()
		svc := NewAccountService(accounts, zap.NewNop())
		account := seedAccount(t, accounts, ownerID)

		err := svc.DeleteAccount(context.Background(), ownerID, account.ID)

		require.NoError(t, err)
		_, err = accounts.FindByID(context.Background(), ownerID, account.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestAccountService_Balance(t *testing.T) {
	ownerID := uuid.New()

	t.Run("balance is snapshot plus delta", func(t *testing.T) {
		accounts := newFakeAccountRepository()
		svc := NewAccountService(accounts, zap.NewNop())
		account := seedAccount(t, accounts, ownerID)
		accounts.deltas[account.ID] = decimal.RequireFromString("-150.25")

		view, err := svc.GetAccount(context.Background(), ownerID, account.ID)

		require.NoError(t, err)
		assert.True(t, view.Balance.Equal(decimal.RequireFromString("849.75")))
	})
}

func TestTransactionService_MonthlySummary(t *testing.T) {
	svc, accounts, txs, _ := newTestTransactionService(t)
	ownerID := uuid.New()
	account := seedAccount(t, accounts, ownerID)
	ctx := context.Background()

	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	salary, err := ledger.NewTransaction(ownerID, account.ID, nil,
		ledger.TransactionTypeIncome, decimal.NewFromInt(3000), march, "Salary")
	require.NoError(t, err)
	rent, err := ledger.NewTransaction(ownerID, account.ID, nil,
		ledger.TransactionTypeExpense, decimal.NewFromInt(1200), march.AddDate(0, 0, 5), "Rent")
	require.NoError(t, err)
	outOfRange, err := ledger.NewTransaction(ownerID, account.ID, nil,
		ledger.TransactionTypeExpense, decimal.NewFromInt(500), march.AddDate(0, 1, 0), "April groceries")
	require.NoError(t, err)
	require.NoError(t, txs.Create(ctx, salary))
	require.NoError(t, txs.Create(ctx, rent))
	require.NoError(t, txs.Create(ctx, outOfRange))

	summary, err := svc.MonthlySummary(ctx, ownerID, march)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), summary.Month)
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.Expense.Equal(decimal.NewFromInt(1200)))
	assert.True(t, summary.Net.Equal(decimal.NewFromInt(1800)))
}
