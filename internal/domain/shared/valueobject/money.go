package valueobject

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lupon/backend/internal/domain/shared"
)

// Money represents a monetary amount with two-decimal precision.
// Amounts are unit-less; the business operates in a single currency.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero monetary amount
var Zero = Money{amount: decimal.Zero}

// NewMoney creates a Money from a decimal amount, rounded half-up to
// two decimal places
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(2)}
}

// NewMoneyFromFloat creates a Money from a float64 amount
func NewMoneyFromFloat(amount float64) Money {
	return NewMoney(decimal.NewFromFloat(amount))
}

// NewMoneyFromString parses a Money from its decimal string form
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Invalid monetary amount %q", s))
	}
	return NewMoney(d), nil
}

// Amount returns the underlying decimal value
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Mul multiplies the amount by a decimal factor, rounding half-up to
// two decimal places
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(2)}
}

// MulInt multiplies the amount by an integer quantity
func (m Money) MulInt(qty int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(qty))}
}

// Neg returns the negated amount
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// RoundUpToStep rounds the amount up to the nearest multiple of step.
// Exact multiples are unchanged.
func (m Money) RoundUpToStep(step decimal.Decimal) Money {
	if step.IsZero() || step.IsNegative() {
		return m
	}
	q := m.amount.Div(step).Ceil()
	return Money{amount: q.Mul(step)}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equals reports whether two amounts are equal
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m is strictly below other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan reports whether m is strictly above other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Cmp compares two amounts, returning -1, 0 or 1
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		// quoted form
		var unquoted string
		if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
			unquoted = string(data[1 : len(data)-1])
		}
		d, err = decimal.NewFromString(unquoted)
		if err != nil {
			return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Invalid monetary amount %s", string(data)))
		}
	}
	m.amount = d.Round(2)
	return nil
}

// Value implements driver.Valuer for database persistence
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.amount = d.Round(2)
	return nil
}
