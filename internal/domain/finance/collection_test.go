package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

func TestNewCollection(t *testing.T) {
	c, err := NewCollection("R-0001", uuid.New(), "Almacen Don Jorge", valueobject.NewMoneyFromFloat(150))
	require.NoError(t, err)

	assert.Equal(t, "150.00", c.Amount.String())
	assert.Equal(t, "150.00", c.AvailableBalance.String())
	assert.Empty(t, c.Lines)
}

func TestNewCollection_ZeroAmountAllowed(t *testing.T) {
	c, err := NewCollection("R-0002", uuid.New(), "Test", valueobject.Zero)
	require.NoError(t, err)
	assert.True(t, c.AvailableBalance.IsZero())

	_, err = NewCollection("R-0003", uuid.New(), "Test", valueobject.NewMoneyFromFloat(-10))
	assert.Error(t, err)
}

func TestCollection_AddLine(t *testing.T) {
	c, err := NewCollection("R-0004", uuid.New(), "Test", valueobject.NewMoneyFromFloat(150))
	require.NoError(t, err)

	line, err := c.AddLine(uuid.New(), valueobject.NewMoneyFromFloat(150))
	require.NoError(t, err)
	assert.Equal(t, "150.00", line.AppliedAmount.String())
	assert.True(t, c.AvailableBalance.IsZero())
	assert.Equal(t, "150.00", c.AppliedTotal().String())
}

func TestCollection_AddLine_ExceedsAvailable(t *testing.T) {
	c, err := NewCollection("R-0005", uuid.New(), "Test", valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)

	_, err = c.AddLine(uuid.New(), valueobject.NewMoneyFromFloat(60))
	require.NoError(t, err)

	_, err = c.AddLine(uuid.New(), valueobject.NewMoneyFromFloat(60))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
	assert.Equal(t, "40.00", c.AvailableBalance.String())

	_, err = c.AddLine(uuid.New(), valueobject.Zero)
	assert.Error(t, err)
}

func TestCollection_IncreaseAmount(t *testing.T) {
	c, err := NewCollection("R-0006", uuid.New(), "Test", valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)
	_, err = c.AddLine(uuid.New(), valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)

	require.NoError(t, c.IncreaseAmount(valueobject.NewMoneyFromFloat(50)))
	assert.Equal(t, "150.00", c.Amount.String())
	assert.Equal(t, "50.00", c.AvailableBalance.String())

	assert.Error(t, c.IncreaseAmount(valueobject.Zero))
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment("P-0001", uuid.New(), "Distribuidora Sur", valueobject.NewMoneyFromFloat(800))
	require.NoError(t, err)
	assert.Equal(t, "800.00", p.AvailableBalance.String())
}

func TestPayment_AddLine(t *testing.T) {
	p, err := NewPayment("P-0002", uuid.New(), "Test", valueobject.NewMoneyFromFloat(500))
	require.NoError(t, err)

	_, err = p.AddLine(uuid.New(), valueobject.NewMoneyFromFloat(300))
	require.NoError(t, err)
	assert.Equal(t, "200.00", p.AvailableBalance.String())

	_, err = p.AddLine(uuid.New(), valueobject.NewMoneyFromFloat(300))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
}

func TestPayment_IncreaseAmount(t *testing.T) {
	p, err := NewPayment("P-0003", uuid.New(), "Test", valueobject.Zero)
	require.NoError(t, err)

	require.NoError(t, p.IncreaseAmount(valueobject.NewMoneyFromFloat(250)))
	assert.Equal(t, "250.00", p.Amount.String())
	assert.Equal(t, "250.00", p.AvailableBalance.String())
}
