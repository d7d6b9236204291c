package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/backend/internal/domain/shared/valueobject"
)

func TestNewAccount(t *testing.T) {
	owner := uuid.New()
	snap := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid account", func(t *testing.T) {
		a, err := NewAccount(owner, "Main Checking", AccountTypeChecking, valueobject.USD, decimal.NewFromInt(1500), snap)
		require.NoError(t, err)
		assert.Equal(t, owner, a.OwnerID)
		assert.False(t, a.Archived)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := NewAccount(owner, "x", AccountType("BROKERAGE"), valueobject.USD, decimal.Zero, snap)
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewAccount(owner, "", AccountTypeCash, valueobject.USD, decimal.Zero, snap)
		assert.Error(t, err)
	})

	t.Run("empty currency defaults", func(t *testing.T) {
		a, err := NewAccount(owner, "Cash", AccountTypeCash, "", decimal.Zero, snap)
		require.NoError(t, err)
		assert.Equal(t, valueobject.DefaultCurrency, a.Currency)
	})
}

func TestAccountBalanceFrom(t *testing.T) {
	owner := uuid.New()
	a, err := NewAccount(owner, "Main", AccountTypeChecking, valueobject.USD, decimal.NewFromFloat(100.50), time.Now())
	require.NoError(t, err)

	balance := a.BalanceFrom(decimal.NewFromFloat(-25.25))
	assert.Equal(t, "75.25", balance.StringFixed(2))

	balance = a.BalanceFrom(decimal.Zero)
	assert.Equal(t, "100.50", balance.StringFixed(2))
}

func TestAccountLifecycle(t *testing.T) {
	owner := uuid.New()
	a, err := NewAccount(owner, "Old", AccountTypeSavings, valueobject.USD, decimal.Zero, time.Now())
	require.NoError(t, err)

	require.NoError(t, a.Rename("New"))
	assert.Equal(t, "New", a.Name)
	assert.Error(t, a.Rename(""))

	a.Archive()
	assert.True(t, a.Archived)
	a.Unarchive()
	assert.False(t, a.Archived)

	newDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, a.Resnapshot(decimal.NewFromInt(2000), newDate))
	assert.Equal(t, newDate, a.SnapshotDate)
	assert.Error(t, a.Resnapshot(decimal.Zero, time.Time{}))
}
