package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormAccountRepository_FindByID(t *testing.T) {
	t.Run("finds existing account", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		accountID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "type", "currency", "initial_balance", "snapshot_date", "archived"}).
			AddRow(accountID, ownerID, "Main Checking", "CHECKING", "USD", decimal.NewFromInt(1000), time.Now(), false)

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, accountID, 1).
			WillReturnRows(rows)

		account, err := repo.FindByID(context.Background(), ownerID, accountID)

		assert.NoError(t, err)
		assert.NotNil(t, account)
		assert.Equal(t, accountID, account.ID)
		assert.Equal(t, "Main Checking", account.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing account", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		accountID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, accountID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		account, err := repo.FindByID(context.Background(), ownerID, accountID)

		assert.Error(t, err)
		assert.Nil(t, account)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_BalanceDelta(t *testing.T) {
	t.Run("sums signed amounts after the snapshot date", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		accountID := uuid.New()
		ownerID := uuid.New()
		after := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"total"}).AddRow("-245.50")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "transactions"`).
			WithArgs(ownerID, accountID, after).
			WillReturnRows(rows)

		delta, err := repo.BalanceDelta(context.Background(), ownerID, accountID, after)

		assert.NoError(t, err)
		assert.True(t, delta.Equal(decimal.RequireFromString("-245.50")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_HasTransactions(t *testing.T) {
	t.Run("reports true when transactions exist", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(db)

		accountID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "transactions"`).
			WithArgs(ownerID, accountID).
			WillReturnRows(rows)

		has, err := repo.HasTransactions(context.Background(), ownerID, accountID)

		assert.NoError(t, err)
		assert.True(t, has)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAccountRepository_HasTransactions_CountsSoftDeleted(t *testing.T) {
	db := newTestDB(t, &models.AccountModel{}, &models.TransactionModel{})
	accounts := NewGormAccountRepository(db)
	txs := NewGormTransactionRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	account, err := ledger.NewAccount(ownerID, "Checking", ledger.AccountTypeChecking, "EUR",
		decimal.NewFromInt(100), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, accounts.Create(ctx, account))

	tx, err := ledger.NewTransaction(ownerID, account.ID, nil,
		ledger.TransactionTypeExpense, decimal.NewFromInt(40),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "Groceries")
	require.NoError(t, err)
	require.NoError(t, txs.Create(ctx, tx))
	require.NoError(t, txs.SoftDelete(ctx, ownerID, tx.ID))

	// The row keeps its account reference after the soft delete, so the
	// account must still count as in use.
	has, err := accounts.HasTransactions(ctx, ownerID, account.ID)
	require.NoError(t, err)
	assert.True(t, has)
}
