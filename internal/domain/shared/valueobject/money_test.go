package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), TWD)
		require.NoError(t, err)
		assert.Equal(t, TWD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", TWD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", TWD)
		assert.Error(t, err)
	})
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds amounts with same currency", func(t *testing.T) {
		a, _ := NewMoneyFromString("100", TWD)
		b, _ := NewMoneyFromString("50.5", TWD)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(150.5)))
	})

	t.Run("rejects different currencies", func(t *testing.T) {
		a, _ := NewMoneyFromString("100", TWD)
		b, _ := NewMoneyFromString("100", USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a, _ := NewMoneyFromString("100", TWD)
	b, _ := NewMoneyFromString("30", TWD)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
}

func TestMoneyPercentageOf(t *testing.T) {
	t.Run("whole point rate", func(t *testing.T) {
		m, _ := NewMoneyFromString("1000", TWD)
		tax := m.PercentageOf(decimal.NewFromInt(5))
		assert.True(t, tax.Amount().Equal(decimal.NewFromInt(50)))
	})

	t.Run("rounds at the multiplication step", func(t *testing.T) {
		// 333 * 5 = 1665, round(1665) = 1665, / 100 = 16.65
		m, _ := NewMoneyFromString("333", TWD)
		tax := m.PercentageOf(decimal.NewFromInt(5))
		assert.True(t, tax.Amount().Equal(decimal.NewFromFloat(16.65)))

		// 100.1 * 5 = 500.5, round half up = 501, / 100 = 5.01
		m2, _ := NewMoneyFromString("100.1", TWD)
		tax2 := m2.PercentageOf(decimal.NewFromInt(5))
		assert.True(t, tax2.Amount().Equal(decimal.NewFromFloat(5.01)), "got %s", tax2.Amount())
	})

	t.Run("zero rate yields zero tax", func(t *testing.T) {
		m, _ := NewMoneyFromString("999.99", TWD)
		tax := m.PercentageOf(decimal.Zero)
		assert.True(t, tax.IsZero())
	})
}

func TestMoneyComparisons(t *testing.T) {
	a, _ := NewMoneyFromString("100", TWD)
	b, _ := NewMoneyFromString("200", TWD)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := a.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	c, _ := NewMoneyFromString("100", USD)
	_, err = a.GreaterThan(c)
	assert.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	m, _ := NewMoneyFromString("1050", TWD)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1050","currency":"TWD"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equals(m))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string amount with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.50"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(42.50)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})
}
