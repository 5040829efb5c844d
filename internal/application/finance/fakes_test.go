package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/finance"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
)

// In-memory repositories backed by maps. SaveWithLock verifies the
// expected version against what was stored at the last save.

type fakeCollectionRepo struct {
	collections map[uuid.UUID]*finance.Collection
	versions    map[uuid.UUID]int
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{
		collections: make(map[uuid.UUID]*finance.Collection),
		versions:    make(map[uuid.UUID]int),
	}
}

func (r *fakeCollectionRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.Collection, error) {
	collection, ok := r.collections[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return collection, nil
}

func (r *fakeCollectionRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.Collection, error) {
	result := make([]finance.Collection, 0, len(r.collections))
	for _, collection := range r.collections {
		result = append(result, *collection)
	}
	return result, nil
}

func (r *fakeCollectionRepo) FindByCustomer(_ context.Context, customerID uuid.UUID, _ shared.Filter) ([]finance.Collection, error) {
	var result []finance.Collection
	for _, collection := range r.collections {
		if collection.CustomerID == customerID {
			result = append(result, *collection)
		}
	}
	return result, nil
}

func (r *fakeCollectionRepo) Save(_ context.Context, collection *finance.Collection) error {
	r.collections[collection.ID] = collection
	r.versions[collection.ID] = collection.Version
	return nil
}

func (r *fakeCollectionRepo) SaveWithLock(_ context.Context, collection *finance.Collection, expectedVersion int) error {
	if r.versions[collection.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.collections[collection.ID] = collection
	r.versions[collection.ID] = collection.Version
	return nil
}

func (r *fakeCollectionRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.collections)), nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*finance.Payment
	versions map[uuid.UUID]int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[uuid.UUID]*finance.Payment),
		versions: make(map[uuid.UUID]int),
	}
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

func (r *fakePaymentRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.Payment, error) {
	result := make([]finance.Payment, 0, len(r.payments))
	for _, payment := range r.payments {
		result = append(result, *payment)
	}
	return result, nil
}

func (r *fakePaymentRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]finance.Payment, error) {
	var result []finance.Payment
	for _, payment := range r.payments {
		if payment.SupplierID == supplierID {
			result = append(result, *payment)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) Save(_ context.Context, payment *finance.Payment) error {
	r.payments[payment.ID] = payment
	r.versions[payment.ID] = payment.Version
	return nil
}

func (r *fakePaymentRepo) SaveWithLock(_ context.Context, payment *finance.Payment, expectedVersion int) error {
	if r.versions[payment.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.payments[payment.ID] = payment
	r.versions[payment.ID] = payment.Version
	return nil
}

func (r *fakePaymentRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.payments)), nil
}

type fakeCreditNoteRepo struct {
	notes map[uuid.UUID]*finance.CreditNote
}

func newFakeCreditNoteRepo() *fakeCreditNoteRepo {
	return &fakeCreditNoteRepo{notes: make(map[uuid.UUID]*finance.CreditNote)}
}

func (r *fakeCreditNoteRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.CreditNote, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return note, nil
}

func (r *fakeCreditNoteRepo) FindAll(_ context.Context, _ shared.Filter) ([]finance.CreditNote, error) {
	result := make([]finance.CreditNote, 0, len(r.notes))
	for _, note := range r.notes {
		result = append(result, *note)
	}
	return result, nil
}

func (r *fakeCreditNoteRepo) FindByCounterparty(_ context.Context, counterpartyID uuid.UUID, _ shared.Filter) ([]finance.CreditNote, error) {
	var result []finance.CreditNote
	for _, note := range r.notes {
		if note.CounterpartyID == counterpartyID {
			result = append(result, *note)
		}
	}
	return result, nil
}

func (r *fakeCreditNoteRepo) Save(_ context.Context, note *finance.CreditNote) error {
	r.notes[note.ID] = note
	return nil
}

func (r *fakeCreditNoteRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.notes)), nil
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

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*billing.Purchase
	versions  map[uuid.UUID]int
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: make(map[uuid.UUID]*billing.Purchase),
		versions:  make(map[uuid.UUID]int),
	}
}

func (r *fakePurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Purchase, error) {
	purchase, ok := r.purchases[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return purchase, nil
}

func (r *fakePurchaseRepo) FindByPurchaseNumber(_ context.Context, purchaseNumber string) (*billing.Purchase, error) {
	for _, purchase := range r.purchases {
		if purchase.PurchaseNumber == purchaseNumber {
			return purchase, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePurchaseRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Purchase, error) {
	result := make([]billing.Purchase, 0, len(r.purchases))
	for _, purchase := range r.purchases {
		result = append(result, *purchase)
	}
	return result, nil
}

func (r *fakePurchaseRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]billing.Purchase, error) {
	var result []billing.Purchase
	for _, purchase := range r.purchases {
		if purchase.SupplierID == supplierID {
			result = append(result, *purchase)
		}
	}
	return result, nil
}

func (r *fakePurchaseRepo) FindOpenBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]billing.Purchase, error) {
	var result []billing.Purchase
	for _, purchase := range r.purchases {
		if purchase.SupplierID == supplierID && purchase.PendingBalance.IsPositive() {
			result = append(result, *purchase)
		}
	}
	return result, nil
}

func (r *fakePurchaseRepo) Save(_ context.Context, purchase *billing.Purchase) error {
	r.purchases[purchase.ID] = purchase
	r.versions[purchase.ID] = purchase.Version
	return nil
}

func (r *fakePurchaseRepo) SaveWithLock(_ context.Context, purchase *billing.Purchase, expectedVersion int) error {
	if r.versions[purchase.ID] != expectedVersion {
		return shared.ErrConcurrencyConflict
	}
	r.purchases[purchase.ID] = purchase
	r.versions[purchase.ID] = purchase.Version
	return nil
}

func (r *fakePurchaseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.purchases)), nil
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

type fakeBalanceEntryRepo struct {
	entries []partner.BalanceEntry
}

func newFakeBalanceEntryRepo() *fakeBalanceEntryRepo {
	return &fakeBalanceEntryRepo{}
}

func (r *fakeBalanceEntryRepo) Save(_ context.Context, entry *partner.BalanceEntry) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeBalanceEntryRepo) FindByCounterparty(_ context.Context, counterpartyID uuid.UUID, _ shared.Filter) ([]partner.BalanceEntry, error) {
	var result []partner.BalanceEntry
	for _, entry := range r.entries {
		if entry.CounterpartyID == counterpartyID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// fakeUnitOfWork runs the function directly; the in-memory repositories
// have no transaction to join
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
