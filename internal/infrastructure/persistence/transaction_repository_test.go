package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

func TestGormTransactionRepository_List_AmountRange(t *testing.T) {
	db := newTestDB(t, &models.AccountModel{}, &models.TransactionModel{})
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()
	accountID := uuid.New()
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	expense, err := ledger.NewTransaction(ownerID, accountID, nil,
		ledger.TransactionTypeExpense, decimal.RequireFromString("42.50"), date, "Groceries")
	require.NoError(t, err)
	income, err := ledger.NewTransaction(ownerID, accountID, nil,
		ledger.TransactionTypeIncome, decimal.NewFromInt(5), date, "Refund")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, expense))
	require.NoError(t, repo.Create(ctx, income))

	pageFilter := shared.Filter{Page: 1, PageSize: 20}

	t.Run("min amount matches expenses by magnitude", func(t *testing.T) {
		min := decimal.NewFromInt(10)
		page, err := repo.List(ctx, ownerID, ledger.TransactionFilter{Filter: pageFilter, MinAmount: &min})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, expense.ID, page.Items[0].ID)
	})

	t.Run("max amount keeps small entries only", func(t *testing.T) {
		max := decimal.NewFromInt(10)
		page, err := repo.List(ctx, ownerID, ledger.TransactionFilter{Filter: pageFilter, MaxAmount: &max})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, income.ID, page.Items[0].ID)
	})
}
