package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

func newTestSale(t *testing.T, repo *fakeSaleRepo, customerID uuid.UUID, productID uuid.UUID, qty int64) *billing.Sale {
	t.Helper()
	line, err := billing.NewDocumentLine(productID, "Widget", qty, valueobject.NewMoneyFromFloat(100))
	require.NoError(t, err)
	sale, err := billing.NewSale("S-"+uuid.NewString()[:8], customerID, "Test Customer",
		[]billing.DocumentLine{*line}, valueobject.Zero, valueobject.Zero,
		billing.SalePaymentTermCash, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), sale))
	return sale
}

func newPurchaseOrderService(t *testing.T) (*PurchaseOrderService, *fakePurchaseOrderRepo, *fakeSaleRepo, *fakeCounterpartyRepo) {
	t.Helper()
	orderRepo := newFakePurchaseOrderRepo()
	saleRepo := newFakeSaleRepo()
	cpRepo := newFakeCounterpartyRepo()
	service := NewPurchaseOrderService(orderRepo, saleRepo, cpRepo, fakeUnitOfWork{})
	return service, orderRepo, saleRepo, cpRepo
}

func TestPurchaseOrderService_Create(t *testing.T) {
	service, _, _, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	supplier := newTestSupplier(t, cpRepo)

	result, err := service.Create(ctx, CreatePurchaseOrderRequest{
		OrderNumber: "PO-001",
		SupplierID:  supplier.ID,
		Lines:       testOrderLines(),
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", result.State)
	assert.Equal(t, "800.00", result.Subtotal)
}

func TestPurchaseOrderService_Create_RejectsCustomer(t *testing.T) {
	service, _, _, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	customer := newTestCustomer(t, cpRepo)

	_, err := service.Create(ctx, CreatePurchaseOrderRequest{
		OrderNumber: "PO-002",
		SupplierID:  customer.ID,
		Lines:       testOrderLines(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_A_SUPPLIER", domainErr.Code)
}

func TestPurchaseOrderService_CreateFromSales_MergesLines(t *testing.T) {
	service, _, saleRepo, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	supplier := newTestSupplier(t, cpRepo)
	customerID := uuid.New()
	productID := uuid.New()
	saleA := newTestSale(t, saleRepo, customerID, productID, 3)
	saleB := newTestSale(t, saleRepo, customerID, productID, 2)

	result, err := service.CreateFromSales(ctx, CreatePurchaseOrderFromSalesRequest{
		OrderNumber: "PO-010",
		SupplierID:  supplier.ID,
		SaleIDs:     []uuid.UUID{saleA.ID, saleB.ID},
	})

	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, int64(5), result.Lines[0].Quantity)
	assert.ElementsMatch(t, []uuid.UUID{saleA.ID, saleB.ID}, result.LinkedSales)

	storedA, err := saleRepo.FindByID(ctx, saleA.ID)
	require.NoError(t, err)
	require.NotNil(t, storedA.PurchaseOrderID)
	assert.Equal(t, result.ID, *storedA.PurchaseOrderID)
}

func TestPurchaseOrderService_CreateFromSales_RejectsCancelledSale(t *testing.T) {
	service, _, saleRepo, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	supplier := newTestSupplier(t, cpRepo)
	sale := newTestSale(t, saleRepo, uuid.New(), uuid.New(), 1)
	require.NoError(t, sale.Cancel("damaged"))

	_, err := service.CreateFromSales(ctx, CreatePurchaseOrderFromSalesRequest{
		OrderNumber: "PO-011",
		SupplierID:  supplier.ID,
		SaleIDs:     []uuid.UUID{sale.ID},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SALE_CANCELLED", domainErr.Code)
}

func TestPurchaseOrderService_AssignSales_RejectsForeignAssignment(t *testing.T) {
	service, _, saleRepo, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	supplier := newTestSupplier(t, cpRepo)
	sale := newTestSale(t, saleRepo, uuid.New(), uuid.New(), 1)

	first, err := service.CreateFromSales(ctx, CreatePurchaseOrderFromSalesRequest{
		OrderNumber: "PO-020",
		SupplierID:  supplier.ID,
		SaleIDs:     []uuid.UUID{sale.ID},
	})
	require.NoError(t, err)

	second, err := service.Create(ctx, CreatePurchaseOrderRequest{
		OrderNumber: "PO-021",
		SupplierID:  supplier.ID,
		Lines:       testOrderLines(),
	})
	require.NoError(t, err)

	_, err = service.AssignSales(ctx, second.ID, AssignSalesRequest{SaleIDs: []uuid.UUID{sale.ID}})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ASSIGNED", domainErr.Code)

	// re-assigning to its own order is a no-op, not an error
	relinked, err := service.AssignSales(ctx, first.ID, AssignSalesRequest{SaleIDs: []uuid.UUID{sale.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{sale.ID}, relinked.LinkedSales)
}

func TestPurchaseOrderService_Cancel_DetachesSales(t *testing.T) {
	service, _, saleRepo, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	supplier := newTestSupplier(t, cpRepo)
	sale := newTestSale(t, saleRepo, uuid.New(), uuid.New(), 2)

	created, err := service.CreateFromSales(ctx, CreatePurchaseOrderFromSalesRequest{
		OrderNumber: "PO-030",
		SupplierID:  supplier.ID,
		SaleIDs:     []uuid.UUID{sale.ID},
	})
	require.NoError(t, err)

	cancelled, err := service.Cancel(ctx, created.ID, CancelOrderRequest{Reason: "supplier out of stock"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.State)
	assert.Empty(t, cancelled.LinkedSales)

	stored, err := saleRepo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PurchaseOrderID)
	assert.False(t, stored.IsCancelled())
}

func TestPurchaseOrderService_Lifecycle(t *testing.T) {
	service, _, _, cpRepo := newPurchaseOrderService(t)
	ctx := context.Background()

	supplier := newTestSupplier(t, cpRepo)
	created, err := service.Create(ctx, CreatePurchaseOrderRequest{
		OrderNumber: "PO-040",
		SupplierID:  supplier.ID,
		Lines:       testOrderLines(),
	})
	require.NoError(t, err)

	validated, err := service.Validate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "validated", validated.State)

	received, err := service.Receive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "received", received.State)

	_, err = service.Cancel(ctx, created.ID, CancelOrderRequest{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}
