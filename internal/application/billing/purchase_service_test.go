package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
	"github.com/lupon/backend/internal/domain/trade"
)

type purchaseServiceFixture struct {
	service      *PurchaseService
	purchaseRepo *fakePurchaseRepo
	poRepo       *fakePurchaseOrderRepo
	cpRepo       *fakeCounterpartyRepo
	entryRepo    *fakeBalanceEntryRepo
}

func newPurchaseServiceFixture() *purchaseServiceFixture {
	f := &purchaseServiceFixture{
		purchaseRepo: newFakePurchaseRepo(),
		poRepo:       newFakePurchaseOrderRepo(),
		cpRepo:       newFakeCounterpartyRepo(),
		entryRepo:    newFakeBalanceEntryRepo(),
	}
	f.service = NewPurchaseService(f.purchaseRepo, f.poRepo, f.cpRepo, f.entryRepo, fakeUnitOfWork{})
	return f
}

func (f *purchaseServiceFixture) supplier(t *testing.T) *partner.Counterparty {
	t.Helper()
	supplier, err := partner.NewCounterparty(partner.CounterpartyTypeSupplier, "Test Supplier",
		partner.PaymentTermRunningAccount, 15)
	require.NoError(t, err)
	require.NoError(t, f.cpRepo.Save(context.Background(), supplier))
	return supplier
}

func purchaseLineRequests() []DocumentLineRequest {
	return []DocumentLineRequest{
		{ProductID: uuid.New(), ProductName: "Crate", Quantity: 10, UnitPrice: 40},
	}
}

func TestPurchaseService_Create_DoesNotTouchRunningBalance(t *testing.T) {
	f := newPurchaseServiceFixture()
	ctx := context.Background()
	supplier := f.supplier(t)

	result, err := f.service.Create(ctx, CreatePurchaseRequest{
		PurchaseNumber: "P-001",
		SupplierID:     supplier.ID,
		Lines:          purchaseLineRequests(),
		Extra:          20,
	})

	require.NoError(t, err)
	assert.Equal(t, "420.00", result.Total)
	assert.Equal(t, "420.00", result.PendingBalance)
	assert.Equal(t, "pending", result.PurchaseState)
	assert.Equal(t, "pending", result.PaymentState)

	stored, err := f.cpRepo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, stored.RunningBalance.IsZero())
	assert.Empty(t, f.entryRepo.entries)
}

func TestPurchaseService_Create_RequiresValidatedOrder(t *testing.T) {
	f := newPurchaseServiceFixture()
	ctx := context.Background()
	supplier := f.supplier(t)

	order, err := trade.NewPurchaseOrder("PO-001", supplier.ID, supplier.Name)
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), "Crate", 10, valueobject.NewMoneyFromFloat(40))
	require.NoError(t, err)
	require.NoError(t, f.poRepo.Save(ctx, order))

	_, err = f.service.Create(ctx, CreatePurchaseRequest{
		PurchaseNumber:  "P-002",
		SupplierID:      supplier.ID,
		PurchaseOrderID: &order.ID,
		Lines:           purchaseLineRequests(),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ORDER_NOT_VALIDATED", domainErr.Code)

	require.NoError(t, order.Validate())
	require.NoError(t, f.poRepo.Save(ctx, order))

	result, err := f.service.Create(ctx, CreatePurchaseRequest{
		PurchaseNumber:  "P-002",
		SupplierID:      supplier.ID,
		PurchaseOrderID: &order.ID,
		Lines:           purchaseLineRequests(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.PurchaseOrderID)
	assert.Equal(t, order.ID, *result.PurchaseOrderID)
}

func TestPurchaseService_Receive(t *testing.T) {
	f := newPurchaseServiceFixture()
	ctx := context.Background()
	supplier := f.supplier(t)

	created, err := f.service.Create(ctx, CreatePurchaseRequest{
		PurchaseNumber: "P-010",
		SupplierID:     supplier.ID,
		Lines:          purchaseLineRequests(),
	})
	require.NoError(t, err)

	received, err := f.service.Receive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", received.PurchaseState)

	_, err = f.service.Receive(ctx, created.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}

func TestPurchaseService_Cancel_ReversesRunningBalance(t *testing.T) {
	f := newPurchaseServiceFixture()
	ctx := context.Background()
	supplier := f.supplier(t)

	created, err := f.service.Create(ctx, CreatePurchaseRequest{
		PurchaseNumber: "P-020",
		SupplierID:     supplier.ID,
		Lines:          purchaseLineRequests(),
	})
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(ctx, created.ID, CancelRequest{Reason: "wrong shipment"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.PurchaseState)
	assert.Equal(t, "cancelled", cancelled.PaymentState)
	assert.Equal(t, "0.00", cancelled.PendingBalance)

	stored, err := f.cpRepo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "-400.00", stored.RunningBalance.String())

	entries, err := f.entryRepo.FindByCounterparty(ctx, supplier.ID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, partner.BalanceEntryTypePurchaseCancelled, entries[0].EntryType)
	assert.Equal(t, "-400.00", entries[0].Amount.String())
}

func TestPurchaseService_Cancel_ReceivedFails(t *testing.T) {
	f := newPurchaseServiceFixture()
	ctx := context.Background()
	supplier := f.supplier(t)

	created, err := f.service.Create(ctx, CreatePurchaseRequest{
		PurchaseNumber: "P-030",
		SupplierID:     supplier.ID,
		Lines:          purchaseLineRequests(),
	})
	require.NoError(t, err)

	_, err = f.service.Receive(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.service.Cancel(ctx, created.ID, CancelRequest{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}
