package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

type paymentFixture struct {
	service      *PaymentService
	paymentRepo  *fakePaymentRepo
	purchaseRepo *fakePurchaseRepo
	cpRepo       *fakeCounterpartyRepo
	entryRepo    *fakeBalanceEntryRepo
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		paymentRepo:  newFakePaymentRepo(),
		purchaseRepo: newFakePurchaseRepo(),
		cpRepo:       newFakeCounterpartyRepo(),
		entryRepo:    newFakeBalanceEntryRepo(),
	}
	f.service = NewPaymentService(f.paymentRepo, f.purchaseRepo, f.cpRepo, f.entryRepo, fakeUnitOfWork{})
	return f
}

func (f *paymentFixture) supplier(t *testing.T) *partner.Counterparty {
	t.Helper()
	supplier, err := partner.NewCounterparty(partner.CounterpartyTypeSupplier, "Test Supplier",
		partner.PaymentTermRunningAccount, 15)
	require.NoError(t, err)
	require.NoError(t, f.cpRepo.Save(context.Background(), supplier))
	return supplier
}

func (f *paymentFixture) purchase(t *testing.T, supplierID uuid.UUID, total float64) *billing.Purchase {
	t.Helper()
	line, err := billing.NewDocumentLine(uuid.New(), "Crate", 1, valueobject.NewMoneyFromFloat(total))
	require.NoError(t, err)
	purchase, err := billing.NewPurchase("P-"+uuid.NewString()[:8], supplierID, "Test Supplier",
		[]billing.DocumentLine{*line}, valueobject.Zero, valueobject.Zero, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.purchaseRepo.Save(context.Background(), purchase))
	return purchase
}

func TestPaymentService_Create_CreditsBalanceAndAppliesLines(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	supplier := f.supplier(t)
	purchase := f.purchase(t, supplier.ID, 700)

	result, err := f.service.Create(ctx, CreatePaymentRequest{
		PaymentNumber: "PY-001",
		SupplierID:    supplier.ID,
		Amount:        700,
		Lines:         []PaymentLineRequest{{PurchaseID: purchase.ID, Amount: 700}},
	})

	require.NoError(t, err)
	assert.Equal(t, "700.00", result.Amount)
	assert.Equal(t, "0.00", result.AvailableBalance)

	storedPurchase, err := f.purchaseRepo.FindByID(ctx, purchase.ID)
	require.NoError(t, err)
	assert.True(t, storedPurchase.PendingBalance.IsZero())
	assert.Equal(t, billing.PaymentStatePaid, storedPurchase.PaymentState)

	storedCp, err := f.cpRepo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "-700.00", storedCp.RunningBalance.String())

	entries, err := f.entryRepo.FindByCounterparty(ctx, supplier.ID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, partner.BalanceEntryTypePayment, entries[0].EntryType)
}

func TestPaymentService_Create_RejectsCustomer(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	customer, err := partner.NewCounterparty(partner.CounterpartyTypeCustomer, "Test Customer",
		partner.PaymentTermCash, 0)
	require.NoError(t, err)
	require.NoError(t, f.cpRepo.Save(ctx, customer))

	_, err = f.service.Create(ctx, CreatePaymentRequest{
		PaymentNumber: "PY-002",
		SupplierID:    customer.ID,
		Amount:        100,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_A_SUPPLIER", domainErr.Code)
}

func TestPaymentService_Apply_RejectsForeignPurchase(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	supplier := f.supplier(t)
	otherPurchase := f.purchase(t, uuid.New(), 300)

	created, err := f.service.Create(ctx, CreatePaymentRequest{
		PaymentNumber: "PY-010",
		SupplierID:    supplier.ID,
		Amount:        500,
	})
	require.NoError(t, err)

	_, err = f.service.Apply(ctx, created.ID, ApplyPaymentRequest{
		Lines: []PaymentLineRequest{{PurchaseID: otherPurchase.ID, Amount: 100}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SUPPLIER_MISMATCH", domainErr.Code)
}

func TestPaymentService_Apply_InsufficientBalance(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	supplier := f.supplier(t)
	purchase := f.purchase(t, supplier.ID, 900)

	created, err := f.service.Create(ctx, CreatePaymentRequest{
		PaymentNumber: "PY-011",
		SupplierID:    supplier.ID,
		Amount:        500,
	})
	require.NoError(t, err)

	_, err = f.service.Apply(ctx, created.ID, ApplyPaymentRequest{
		Lines: []PaymentLineRequest{{PurchaseID: purchase.ID, Amount: 600}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
}

func TestPaymentService_Amend(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()
	supplier := f.supplier(t)

	created, err := f.service.Create(ctx, CreatePaymentRequest{
		PaymentNumber: "PY-020",
		SupplierID:    supplier.ID,
		Amount:        100,
	})
	require.NoError(t, err)

	amended, err := f.service.Amend(ctx, created.ID, AmendRequest{Amount: 400})
	require.NoError(t, err)
	assert.Equal(t, "500.00", amended.Amount)
	assert.Equal(t, "500.00", amended.AvailableBalance)

	storedCp, err := f.cpRepo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "-500.00", storedCp.RunningBalance.String())
}
