package planning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoan(t *testing.T, principal float64, rate float64, months int) *Loan {
	t.Helper()
	l, err := NewLoan(uuid.New(), "test loan",
		decimal.NewFromFloat(principal), decimal.NewFromFloat(rate),
		months, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return l
}

func TestMonthlyPayment(t *testing.T) {
	t.Run("standard amortization", func(t *testing.T) {
		// 200000 at 6% over 360 months -> 1199.10
		l := newLoan(t, 200000, 6, 360)
		assert.Equal(t, "1199.10", l.MonthlyPayment().StringFixed(2))
	})

	t.Run("zero rate", func(t *testing.T) {
		l := newLoan(t, 1200, 0, 12)
		assert.Equal(t, "100.00", l.MonthlyPayment().StringFixed(2))
	})

	t.Run("short term", func(t *testing.T) {
		// 10000 at 12% over 12 months -> 888.49
		l := newLoan(t, 10000, 12, 12)
		assert.Equal(t, "888.49", l.MonthlyPayment().StringFixed(2))
	})
}

func TestSchedule(t *testing.T) {
	l := newLoan(t, 10000, 12, 12)
	schedule := l.Schedule()
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first.PaymentNo)
	// first month interest: 10000 * 1% = 100
	assert.Equal(t, "100.00", first.Interest.StringFixed(2))
	assert.Equal(t, "788.49", first.Principal.StringFixed(2))

	last := schedule[len(schedule)-1]
	assert.True(t, last.Balance.IsZero(), "schedule must end at zero balance, got %s", last.Balance)

	// payments are one month apart
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), last.DueDate)
}

func TestOutstandingAfter(t *testing.T) {
	l := newLoan(t, 10000, 12, 12)

	assert.Equal(t, "10000", l.OutstandingAfter(0).String())
	assert.True(t, l.OutstandingAfter(12).IsZero())
	assert.True(t, l.OutstandingAfter(6).LessThan(l.Principal))
	assert.True(t, l.OutstandingAfter(6).IsPositive())
}

func TestNewLoanValidation(t *testing.T) {
	owner := uuid.New()
	start := time.Now()

	_, err := NewLoan(owner, "", decimal.NewFromInt(1000), decimal.NewFromInt(5), 12, start)
	assert.Error(t, err)
	_, err = NewLoan(owner, "x", decimal.Zero, decimal.NewFromInt(5), 12, start)
	assert.Error(t, err)
	_, err = NewLoan(owner, "x", decimal.NewFromInt(1000), decimal.NewFromInt(-1), 12, start)
	assert.Error(t, err)
	_, err = NewLoan(owner, "x", decimal.NewFromInt(1000), decimal.NewFromInt(5), 0, start)
	assert.Error(t, err)
	_, err = NewLoan(owner, "x", decimal.NewFromInt(1000), decimal.NewFromInt(5), 12, time.Time{})
	assert.Error(t, err)
}

func TestComputeGoalProgress(t *testing.T) {
	g, err := NewGoal(uuid.New(), "Emergency fund", decimal.NewFromInt(10000), nil, nil)
	require.NoError(t, err)

	p := ComputeGoalProgress(g, decimal.NewFromInt(2500))
	assert.Equal(t, "25.00", p.Percentage.StringFixed(2))
	assert.False(t, p.Achieved)

	p = ComputeGoalProgress(g, decimal.NewFromInt(15000))
	assert.Equal(t, "100.00", p.Percentage.StringFixed(2))
	assert.True(t, p.Achieved)

	p = ComputeGoalProgress(g, decimal.NewFromInt(-100))
	assert.True(t, p.Percentage.IsZero())
}
