package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.Equal(t, "19.99", m.StringFixed(2))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("100.50", EUR)
		require.NoError(t, err)
		assert.Equal(t, "100.50", m.StringFixed(2))
	})

	t.Run("from invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("abc", EUR)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromFloat(10.25))
	b := NewMoneyUSD(decimal.NewFromFloat(4.75))

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "15.00", sum.StringFixed(2))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "5.50", diff.StringFixed(2))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		eur := Zero(EUR)
		_, err := a.Add(eur)
		assert.Error(t, err)
		_, err = a.Subtract(eur)
		assert.Error(t, err)
	})

	t.Run("multiply", func(t *testing.T) {
		m := a.Multiply(decimal.NewFromInt(3))
		assert.Equal(t, "30.75", m.StringFixed(2))
	})

	t.Run("divide by zero", func(t *testing.T) {
		_, err := a.Divide(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("negate and abs", func(t *testing.T) {
		n := a.Negate()
		assert.True(t, n.IsNegative())
		assert.True(t, n.Abs().IsPositive())
	})
}

func TestMoneyPercentage(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromInt(200))
	vat := m.CalculatePercentage(decimal.NewFromFloat(21))
	assert.Equal(t, "42.00", vat.Round(2).StringFixed(2))
}

func TestMoneyRounding(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(10.005))
	assert.Equal(t, "10.01", m.Round(2).StringFixed(2))

	m = NewMoneyUSD(decimal.NewFromFloat(10.004))
	assert.Equal(t, "10.00", m.Round(2).StringFixed(2))
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(5))
	b := NewMoneyUSD(decimal.NewFromInt(9))

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyUSD(decimal.NewFromInt(5))))
	assert.False(t, a.Equals(Zero(EUR)))
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(42.42))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"42.42","currency":"USD"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equals(back))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("12.34"))
	assert.Equal(t, "12.34", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(12.34))
}
