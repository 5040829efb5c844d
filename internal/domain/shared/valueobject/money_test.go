package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact two decimals", "10.50", "10.50"},
		{"rounds half up", "10.505", "10.51"},
		{"rounds down below half", "10.504", "10.50"},
		{"negative rounds away from zero", "-10.505", "-10.51"},
		{"many decimals", "33.33333", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)
			m := NewMoney(d)
			assert.Equal(t, tt.expected, m.String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.25)
	b := NewMoneyFromFloat(49.75)

	assert.Equal(t, "150.00", a.Add(b).String())
	assert.Equal(t, "50.50", a.Sub(b).String())
	assert.Equal(t, "-100.25", a.Neg().String())
	assert.Equal(t, "300.75", a.MulInt(3).String())
}

func TestMoney_Mul_RoundsResult(t *testing.T) {
	price := NewMoneyFromFloat(1333.0)
	factor := decimal.NewFromFloat(1.15)
	assert.Equal(t, "1532.95", price.Mul(factor).String())

	// a factor that forces rounding
	price = NewMoneyFromFloat(10.05)
	assert.Equal(t, "11.56", price.Mul(factor).String())
}

func TestMoney_RoundUpToStep(t *testing.T) {
	step := decimal.NewFromInt(500)

	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"exact multiple unchanged", 1500, "1500.00"},
		{"rounds up", 1501, "2000.00"},
		{"just above zero", 1, "500.00"},
		{"zero unchanged", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMoneyFromFloat(tt.amount).RoundUpToStep(step)
			assert.Equal(t, tt.expected, m.String())
		})
	}
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyFromFloat(10)
	b := NewMoneyFromFloat(20)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.Equals(NewMoneyFromFloat(10)))
	assert.False(t, a.IsZero())
	assert.True(t, Zero.IsZero())
	assert.True(t, a.Neg().IsNegative())
	assert.Equal(t, -1, a.Cmp(b))
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.345")
	require.NoError(t, err)
	assert.Equal(t, "12.35", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestLineTotal(t *testing.T) {
	unit := NewMoneyFromFloat(12.5)
	assert.Equal(t, "37.50", LineTotal(3, unit).String())
}

func TestSum(t *testing.T) {
	total := Sum(NewMoneyFromFloat(1.1), NewMoneyFromFloat(2.2), NewMoneyFromFloat(3.3))
	assert.Equal(t, "6.60", total.String())
	assert.True(t, Sum().IsZero())
}
