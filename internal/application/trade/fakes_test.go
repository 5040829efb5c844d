package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/trade"
)

// In-memory repositories backed by maps. SaveWithLock verifies the
// expected version against what was stored at the last save, the same
// check the database performs.

type fakeSalesOrderRepo struct {
	orders   map[uuid.UUID]*trade.SalesOrder
	versions map[uuid.UUID]int
}

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{
		orders:   make(map[uuid.UUID]*trade.SalesOrder),
		versions: make(map[uuid.UUID]int),
	}
}

func (r *fakeSalesOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakeSalesOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*trade.SalesOrder, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSalesOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.SalesOrder, error) {
	result := make([]trade.SalesOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *fakeSalesOrderRepo) FindByState(_ context.Context, state trade.SalesOrderState, _ shared.Filter) ([]trade.SalesOrder, error) {
	var result []trade.SalesOrder
	for _, order := range r.orders {
		if order.State == state {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeSalesOrderRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]trade.SalesOrder, error) {
	var result []trade.SalesOrder
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeSalesOrderRepo) Save(_ context.Context, order *trade.SalesOrder) error {
	r.orders[order.ID] = order
	r.versions[order.ID] = order.Version
	return nil
}

func (r *fakeSalesOrderRepo) SaveWithLock(_ context.Context, order *trade.SalesOrder, expectedVersion int) error {
	if r.versions[order.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.orders[order.ID] = order
	r.versions[order.ID] = order.Version
	return nil
}

func (r *fakeSalesOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	delete(r.versions, id)
	return nil
}

func (r *fakeSalesOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

type fakePurchaseOrderRepo struct {
	orders   map[uuid.UUID]*trade.PurchaseOrder
	versions map[uuid.UUID]int
}

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{
		orders:   make(map[uuid.UUID]*trade.PurchaseOrder),
		versions: make(map[uuid.UUID]int),
	}
}

func (r *fakePurchaseOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *fakePurchaseOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*trade.PurchaseOrder, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePurchaseOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	result := make([]trade.PurchaseOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *fakePurchaseOrderRepo) FindByState(_ context.Context, state trade.PurchaseOrderState, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	var result []trade.PurchaseOrder
	for _, order := range r.orders {
		if order.State == state {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakePurchaseOrderRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	var result []trade.PurchaseOrder
	for _, order := range r.orders {
		if order.SupplierID == supplierID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakePurchaseOrderRepo) Save(_ context.Context, order *trade.PurchaseOrder) error {
	r.orders[order.ID] = order
	r.versions[order.ID] = order.Version
	return nil
}

func (r *fakePurchaseOrderRepo) SaveWithLock(_ context.Context, order *trade.PurchaseOrder, expectedVersion int) error {
	if r.versions[order.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.orders[order.ID] = order
	r.versions[order.ID] = order.Version
	return nil
}

func (r *fakePurchaseOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	delete(r.versions, id)
	return nil
}

func (r *fakePurchaseOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

type fakeSaleRepo struct {
	sales    map[uuid.UUID]*billing.Sale
	versions map[uuid.UUID]int
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales:    make(map[uuid.UUID]*billing.Sale),
		versions: make(map[uuid.UUID]int),
	}
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Sale, error) {
	sale, ok := r.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return sale, nil
}

func (r *fakeSaleRepo) FindBySaleNumber(_ context.Context, saleNumber string) (*billing.Sale, error) {
	for _, sale := range r.sales {
		if sale.SaleNumber == saleNumber {
			return sale, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSaleRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Sale, error) {
	result := make([]billing.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		result = append(result, *sale)
	}
	return result, nil
}

func (r *fakeSaleRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]billing.Sale, error) {
	var result []billing.Sale
	for _, sale := range r.sales {
		if sale.CustomerID == customerID {
			result = append(result, *sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) FindByPurchaseOrder(_ context.Context, purchaseOrderID uuid.UUID) ([]billing.Sale, error) {
	var result []billing.Sale
	for _, sale := range r.sales {
		if sale.PurchaseOrderID != nil && *sale.PurchaseOrderID == purchaseOrderID {
			result = append(result, *sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) FindOpenByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]billing.Sale, error) {
	var result []billing.Sale
	for _, sale := range r.sales {
		if sale.CustomerID == customerID && sale.PendingBalance.IsPositive() {
			result = append(result, *sale)
		}
	}
	return result, nil
}

func (r *fakeSaleRepo) Save(_ context.Context, sale *billing.Sale) error {
	r.sales[sale.ID] = sale
	r.versions[sale.ID] = sale.Version
	return nil
}

func (r *fakeSaleRepo) SaveWithLock(_ context.Context, sale *billing.Sale, expectedVersion int) error {
	if r.versions[sale.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.sales[sale.ID] = sale
	r.versions[sale.ID] = sale.Version
	return nil
}

func (r *fakeSaleRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.sales)), nil
}

type fakeCounterpartyRepo struct {
	counterparties map[uuid.UUID]*partner.Counterparty
	versions       map[uuid.UUID]int
}

func newFakeCounterpartyRepo() *fakeCounterpartyRepo {
	return &fakeCounterpartyRepo{
		counterparties: make(map[uuid.UUID]*partner.Counterparty),
		versions:       make(map[uuid.UUID]int),
	}
}

func (r *fakeCounterpartyRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Counterparty, error) {
	cp, ok := r.counterparties[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cp, nil
}

func (r *fakeCounterpartyRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Counterparty, error) {
	result := make([]partner.Counterparty, 0, len(r.counterparties))
	for _, cp := range r.counterparties {
		result = append(result, *cp)
	}
	return result, nil
}

func (r *fakeCounterpartyRepo) FindByType(_ context.Context, cpType partner.CounterpartyType, _ shared.Filter) ([]partner.Counterparty, error) {
	var result []partner.Counterparty
	for _, cp := range r.counterparties {
		if cp.Type == cpType {
			result = append(result, *cp)
		}
	}
	return result, nil
}

func (r *fakeCounterpartyRepo) Save(_ context.Context, cp *partner.Counterparty) error {
	r.counterparties[cp.ID] = cp
	r.versions[cp.ID] = cp.Version
	return nil
}

func (r *fakeCounterpartyRepo) SaveWithLock(_ context.Context, cp *partner.Counterparty, expectedVersion int) error {
	if r.versions[cp.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.counterparties[cp.ID] = cp
	r.versions[cp.ID] = cp.Version
	return nil
}

func (r *fakeCounterpartyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.counterparties)), nil
}

// fakeUnitOfWork runs the function directly; the in-memory repositories
// have no transaction to join
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
