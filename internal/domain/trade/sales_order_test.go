package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

func newTestSalesOrder(t *testing.T) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder("SO-0001", uuid.New(), "Almacen Don Jorge")
	require.NoError(t, err)
	return order
}

func TestNewSalesOrder(t *testing.T) {
	order := newTestSalesOrder(t)

	assert.Equal(t, SalesOrderStatePending, order.State)
	assert.True(t, order.Subtotal.IsZero())
	assert.Empty(t, order.Lines)
	assert.Len(t, order.GetDomainEvents(), 1)
}

func TestSalesOrder_AddLine(t *testing.T) {
	order := newTestSalesOrder(t)
	productID := uuid.New()

	_, err := order.AddLine(productID, "Flour 25kg", 2, valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)
	assert.Equal(t, "200.00", order.Subtotal.String())

	// duplicate product is rejected
	_, err = order.AddLine(productID, "Flour 25kg", 1, valueobject.NewMoneyFromFloat(100))
	assert.Error(t, err)

	_, err = order.AddLine(uuid.New(), "Sugar 1kg", 1, valueobject.NewMoneyFromFloat(50))
	require.NoError(t, err)
	assert.Equal(t, "250.00", order.Subtotal.String())

	// line sanity
	_, err = order.AddLine(uuid.New(), "Rice", 0, valueobject.NewMoneyFromFloat(10))
	assert.Error(t, err)
	_, err = order.AddLine(uuid.New(), "Rice", 1, valueobject.Zero)
	assert.Error(t, err)
}

func TestSalesOrder_LinesLockedAfterAccept(t *testing.T) {
	order := newTestSalesOrder(t)
	line, err := order.AddLine(uuid.New(), "Flour 25kg", 2, valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)

	require.NoError(t, order.Accept())

	_, err = order.AddLine(uuid.New(), "Sugar", 1, valueobject.NewMoneyFromFloat(10))
	assert.Error(t, err)
	assert.Error(t, order.UpdateLineQuantity(line.ID, 5))
	assert.Error(t, order.RemoveLine(line.ID))
}

func TestSalesOrder_Transitions(t *testing.T) {
	order := newTestSalesOrder(t)
	_, err := order.AddLine(uuid.New(), "Flour 25kg", 2, valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)

	// pending cannot complete directly
	err = order.Complete()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)

	require.NoError(t, order.Accept())
	require.NoError(t, order.Complete())
	assert.True(t, order.State.IsTerminal())
	assert.NotNil(t, order.CompletedAt)

	// terminal state rejects everything
	assert.Error(t, order.Cancel("late"))
	assert.Error(t, order.Accept())
}

func TestSalesOrder_AcceptRequiresLines(t *testing.T) {
	order := newTestSalesOrder(t)
	assert.Error(t, order.Accept())
}

func TestSalesOrder_CancelRecordsReason(t *testing.T) {
	order := newTestSalesOrder(t)
	_, err := order.AddLine(uuid.New(), "Flour 25kg", 1, valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)

	require.NoError(t, order.Cancel("customer desisted"))
	assert.Equal(t, SalesOrderStateCancelled, order.State)
	assert.Equal(t, "customer desisted", order.CancelReason)
	assert.NotNil(t, order.CancelledAt)
}

func TestParseSalesOrderState_CaseInsensitive(t *testing.T) {
	state, err := ParseSalesOrderState("  ACCEPTED ")
	require.NoError(t, err)
	assert.Equal(t, SalesOrderStateAccepted, state)

	_, err = ParseSalesOrderState("shipped")
	assert.Error(t, err)
}
