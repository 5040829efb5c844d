package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

func testLines(t *testing.T, totals ...float64) []DocumentLine {
	t.Helper()
	lines := make([]DocumentLine, 0, len(totals))
	for _, amount := range totals {
		line, err := NewDocumentLine(uuid.New(), "Product", 1, valueobject.NewMoneyFromFloat(amount))
		require.NoError(t, err)
		lines = append(lines, *line)
	}
	return lines
}

func newTestSale(t *testing.T, totals ...float64) *Sale {
	t.Helper()
	sale, err := NewSale("V-0001", uuid.New(), "Almacen Don Jorge",
		testLines(t, totals...), valueobject.Zero, valueobject.Zero,
		SalePaymentTermRunningAccount, time.Now().AddDate(0, 0, 30))
	require.NoError(t, err)
	return sale
}

func TestNewSale(t *testing.T) {
	sale := newTestSale(t, 150, 50)

	assert.Equal(t, "200.00", sale.Subtotal.String())
	assert.Equal(t, "200.00", sale.Total.String())
	assert.Equal(t, "200.00", sale.PendingBalance.String())
	assert.Equal(t, CommercialStateInProgress, sale.CommercialState)
	assert.Equal(t, DeliveryStatePending, sale.DeliveryState)
	assert.Equal(t, CollectionStatePending, sale.CollectionState)
}

func TestNewSale_TotalsWithDeliveryAndDiscount(t *testing.T) {
	sale, err := NewSale("V-0002", uuid.New(), "Test",
		testLines(t, 200), valueobject.NewMoneyFromFloat(30), valueobject.NewMoneyFromFloat(50),
		SalePaymentTermCash, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "180.00", sale.Total.String())
	assert.Equal(t, "180.00", sale.PendingBalance.String())
}

func TestNewSale_Validation(t *testing.T) {
	lines := testLines(t, 100)
	due := time.Now()

	_, err := NewSale("", uuid.New(), "Test", lines, valueobject.Zero, valueobject.Zero, SalePaymentTermCash, due)
	assert.Error(t, err)

	_, err = NewSale("V-1", uuid.New(), "Test", nil, valueobject.Zero, valueobject.Zero, SalePaymentTermCash, due)
	assert.Error(t, err)

	_, err = NewSale("V-1", uuid.New(), "Test", lines, valueobject.Zero, valueobject.NewMoneyFromFloat(500), SalePaymentTermCash, due)
	assert.Error(t, err)

	_, err = NewSale("V-1", uuid.New(), "Test", lines, valueobject.Zero, valueobject.Zero, SalePaymentTerm("credit"), due)
	assert.Error(t, err)
}

func TestSale_ApplyCollection(t *testing.T) {
	sale := newTestSale(t, 200)

	require.NoError(t, sale.ApplyCollection(valueobject.NewMoneyFromFloat(150)))
	assert.Equal(t, "50.00", sale.PendingBalance.String())
	assert.Equal(t, CollectionStatePartial, sale.CollectionState)
	assert.Equal(t, CommercialStateInProgress, sale.CommercialState)

	require.NoError(t, sale.ApplyCollection(valueobject.NewMoneyFromFloat(50)))
	assert.Equal(t, CollectionStateCollected, sale.CollectionState)
	// not delivered yet, so still in progress
	assert.Equal(t, CommercialStateInProgress, sale.CommercialState)
}

func TestSale_ApplyCollection_ExceedsPending(t *testing.T) {
	sale := newTestSale(t, 200)

	err := sale.ApplyCollection(valueobject.NewMoneyFromFloat(250))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMOUNT_EXCEEDS_PENDING", domainErr.Code)
	assert.Equal(t, "200.00", sale.PendingBalance.String())

	assert.Error(t, sale.ApplyCollection(valueobject.Zero))
}

func TestSale_CompletedWhenDeliveredAndCollected(t *testing.T) {
	sale := newTestSale(t, 200)

	require.NoError(t, sale.Deliver())
	assert.Equal(t, CommercialStateInProgress, sale.CommercialState)

	require.NoError(t, sale.ApplyCollection(valueobject.NewMoneyFromFloat(200)))
	assert.Equal(t, CommercialStateCompleted, sale.CommercialState)
	assert.Equal(t, CollectionStateCollected, sale.CollectionState)
}

func TestSale_DeliveryTransitions(t *testing.T) {
	sale := newTestSale(t, 100)

	rescheduled := time.Now().AddDate(0, 0, 3)
	require.NoError(t, sale.Reschedule(rescheduled))
	assert.Equal(t, DeliveryStateRescheduled, sale.DeliveryState)

	// rescheduled can only go to delivered
	assert.Error(t, sale.Reschedule(rescheduled))

	require.NoError(t, sale.Deliver())
	assert.NotNil(t, sale.DeliveredAt)

	// delivered is terminal
	err := sale.Deliver()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}

func TestSale_Cancel(t *testing.T) {
	sale := newTestSale(t, 300)
	require.NoError(t, sale.ApplyCollection(valueobject.NewMoneyFromFloat(200)))

	require.NoError(t, sale.Cancel("duplicate entry"))

	assert.Equal(t, CommercialStateCancelled, sale.CommercialState)
	assert.Equal(t, DeliveryStateCancelled, sale.DeliveryState)
	assert.Equal(t, CollectionStateCancelled, sale.CollectionState)
	assert.True(t, sale.PendingBalance.IsZero())
	assert.Equal(t, "duplicate entry", sale.CancelReason)

	assert.Error(t, sale.Cancel("again"))
	assert.Error(t, sale.Deliver())
	assert.Error(t, sale.ApplyCollection(valueobject.NewMoneyFromFloat(10)))
}

func TestSale_PurchaseOrderAssignment(t *testing.T) {
	sale := newTestSale(t, 100)
	orderA, orderB := uuid.New(), uuid.New()

	require.NoError(t, sale.AssignPurchaseOrder(orderA))
	// same order again is a no-op
	require.NoError(t, sale.AssignPurchaseOrder(orderA))
	// a different order is rejected
	assert.Error(t, sale.AssignPurchaseOrder(orderB))

	sale.DetachPurchaseOrder()
	assert.Nil(t, sale.PurchaseOrderID)
	require.NoError(t, sale.AssignPurchaseOrder(orderB))

	require.NoError(t, sale.Cancel("test"))
	sale.DetachPurchaseOrder()
	assert.Error(t, sale.AssignPurchaseOrder(orderA))
}

func TestRecalculateStates_Idempotent(t *testing.T) {
	pending := valueobject.NewMoneyFromFloat(50)
	total := valueobject.NewMoneyFromFloat(200)

	first := RecalculateCollectionState(CommercialStateInProgress, pending, total)
	second := RecalculateCollectionState(CommercialStateInProgress, pending, total)
	assert.Equal(t, first, second)
	assert.Equal(t, CollectionStatePartial, first)

	c1 := RecalculateCommercialState(false, DeliveryStateDelivered, valueobject.Zero)
	c2 := RecalculateCommercialState(false, DeliveryStateDelivered, valueobject.Zero)
	assert.Equal(t, c1, c2)
	assert.Equal(t, CommercialStateCompleted, c1)
}
