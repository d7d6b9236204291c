package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBudget(t *testing.T) {
	owner := uuid.New()
	category := uuid.New()

	t.Run("month normalized to first day", func(t *testing.T) {
		b, err := NewBudget(owner, category, time.Date(2026, 5, 17, 13, 45, 0, 0, time.UTC), decimal.NewFromInt(600))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), b.Month)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		_, err := NewBudget(owner, category, time.Now(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewBudget(owner, uuid.Nil, time.Now(), decimal.NewFromInt(100))
		assert.Error(t, err)
	})
}

func TestComputeProgress(t *testing.T) {
	owner := uuid.New()
	b, err := NewBudget(owner, uuid.New(), time.Now(), decimal.NewFromInt(500))
	require.NoError(t, err)

	t.Run("under budget", func(t *testing.T) {
		p := ComputeProgress(b, "Groceries", decimal.NewFromFloat(125.333))
		assert.Equal(t, "125.33", p.Spent.StringFixed(2))
		assert.Equal(t, "374.67", p.Remaining.StringFixed(2))
		assert.Equal(t, "25.07", p.Utilization.StringFixed(2))
		assert.False(t, p.OverBudget)
	})

	t.Run("over budget", func(t *testing.T) {
		p := ComputeProgress(b, "Groceries", decimal.NewFromInt(650))
		assert.Equal(t, "130.00", p.Utilization.StringFixed(2))
		assert.True(t, p.OverBudget)
		assert.True(t, p.Remaining.IsNegative())
	})

	t.Run("zero spend", func(t *testing.T) {
		p := ComputeProgress(b, "Groceries", decimal.Zero)
		assert.True(t, p.Utilization.IsZero())
		assert.False(t, p.OverBudget)
	})
}
