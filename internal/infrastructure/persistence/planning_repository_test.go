package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fintrack/backend/internal/domain/planning"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens an in-memory database with the given models migrated
func newTestDB(t *testing.T, dst ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(dst...))
	return db
}

func TestGormGoalRepository_CRUD(t *testing.T) {
	db := newTestDB(t, &models.GoalModel{}, &models.LoanModel{})
	repo := NewGormGoalRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	targetDate := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	goal, err := planning.NewGoal(ownerID, "Emergency fund", decimal.NewFromInt(10000), &targetDate, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, goal))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, ownerID, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, "Emergency fund", found.Name)
		assert.True(t, found.TargetAmount.Equal(decimal.NewFromInt(10000)))
		require.NotNil(t, found.TargetDate)
	})

	t.Run("owner isolation", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), goal.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		goal.Achieved = true
		require.NoError(t, repo.Update(ctx, goal))

		found, err := repo.FindByID(ctx, ownerID, goal.ID)
		require.NoError(t, err)
		assert.True(t, found.Achieved)
	})

	t.Run("list", func(t *testing.T) {
		goals, err := repo.List(ctx, ownerID)
		require.NoError(t, err)
		assert.Len(t, goals, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ownerID, goal.ID))
		assert.ErrorIs(t, repo.Delete(ctx, ownerID, goal.ID), shared.ErrNotFound)
	})
}

func TestGormLoanRepository_CRUD(t *testing.T) {
	db := newTestDB(t, &models.GoalModel{}, &models.LoanModel{})
	repo := NewGormLoanRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	loan, err := planning.NewLoan(ownerID, "Car loan",
		decimal.NewFromInt(24000), decimal.NewFromFloat(4.5), 48,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, loan))

	found, err := repo.FindByID(ctx, ownerID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Car loan", found.Name)
	assert.Equal(t, 48, found.TermMonths)
	assert.True(t, found.Principal.Equal(decimal.NewFromInt(24000)))

	loans, err := repo.List(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, loans, 1)

	other, err := repo.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repo.Delete(ctx, ownerID, loan.ID))
	_, err = repo.FindByID(ctx, ownerID, loan.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
