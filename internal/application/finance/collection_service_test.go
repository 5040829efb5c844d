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

type collectionFixture struct {
	service   *CollectionService
	collRepo  *fakeCollectionRepo
	saleRepo  *fakeSaleRepo
	cpRepo    *fakeCounterpartyRepo
	entryRepo *fakeBalanceEntryRepo
}

func newCollectionFixture() *collectionFixture {
	f := &collectionFixture{
		collRepo:  newFakeCollectionRepo(),
		saleRepo:  newFakeSaleRepo(),
		cpRepo:    newFakeCounterpartyRepo(),
		entryRepo: newFakeBalanceEntryRepo(),
	}
	f.service = NewCollectionService(f.collRepo, f.saleRepo, f.cpRepo, f.entryRepo, fakeUnitOfWork{})
	return f
}

func (f *collectionFixture) customer(t *testing.T) *partner.Counterparty {
	t.Helper()
	customer, err := partner.NewCounterparty(partner.CounterpartyTypeCustomer, "Test Customer",
		partner.PaymentTermRunningAccount, 30)
	require.NoError(t, err)
	require.NoError(t, f.cpRepo.Save(context.Background(), customer))
	return customer
}

func (f *collectionFixture) sale(t *testing.T, customerID uuid.UUID, total float64) *billing.Sale {
	t.Helper()
	line, err := billing.NewDocumentLine(uuid.New(), "Widget", 1, valueobject.NewMoneyFromFloat(total))
	require.NoError(t, err)
	sale, err := billing.NewSale("S-"+uuid.NewString()[:8], customerID, "Test Customer",
		[]billing.DocumentLine{*line}, valueobject.Zero, valueobject.Zero,
		billing.SalePaymentTermRunningAccount, time.Now())
	require.NoError(t, err)
	require.NoError(t, f.saleRepo.Save(context.Background(), sale))
	return sale
}

func TestCollectionService_Create_CreditsBalanceAndAppliesLines(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)
	sale := f.sale(t, customer.ID, 600)

	result, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-001",
		CustomerID:       customer.ID,
		Amount:           1000,
		Lines:            []CollectionLineRequest{{SaleID: sale.ID, Amount: 600}},
	})

	require.NoError(t, err)
	assert.Equal(t, "1000.00", result.Amount)
	assert.Equal(t, "400.00", result.AvailableBalance)
	require.Len(t, result.Lines, 1)

	storedSale, err := f.saleRepo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, storedSale.PendingBalance.IsZero())
	assert.Equal(t, billing.CollectionStateCollected, storedSale.CollectionState)

	storedCp, err := f.cpRepo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "-1000.00", storedCp.RunningBalance.String())

	entries, err := f.entryRepo.FindByCounterparty(ctx, customer.ID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, partner.BalanceEntryTypeCollection, entries[0].EntryType)
	assert.Equal(t, "-1000.00", entries[0].Amount.String())
}

func TestCollectionService_Create_ZeroAmountAllowed(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)

	result, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-002",
		CustomerID:       customer.ID,
		Amount:           0,
	})

	require.NoError(t, err)
	assert.Equal(t, "0.00", result.Amount)
	assert.Empty(t, f.entryRepo.entries)
}

func TestCollectionService_Apply_InsufficientBalance(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)
	sale := f.sale(t, customer.ID, 600)

	created, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-010",
		CustomerID:       customer.ID,
		Amount:           500,
	})
	require.NoError(t, err)

	_, err = f.service.Apply(ctx, created.ID, ApplyCollectionRequest{
		Lines: []CollectionLineRequest{{SaleID: sale.ID, Amount: 600}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
}

func TestCollectionService_Apply_ExceedsSalePending(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)
	sale := f.sale(t, customer.ID, 300)

	created, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-011",
		CustomerID:       customer.ID,
		Amount:           1000,
	})
	require.NoError(t, err)

	_, err = f.service.Apply(ctx, created.ID, ApplyCollectionRequest{
		Lines: []CollectionLineRequest{{SaleID: sale.ID, Amount: 500}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMOUNT_EXCEEDS_PENDING", domainErr.Code)
}

func TestCollectionService_Apply_RejectsForeignSale(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)
	otherSale := f.sale(t, uuid.New(), 300)

	created, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-012",
		CustomerID:       customer.ID,
		Amount:           1000,
	})
	require.NoError(t, err)

	_, err = f.service.Apply(ctx, created.ID, ApplyCollectionRequest{
		Lines: []CollectionLineRequest{{SaleID: otherSale.ID, Amount: 100}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CUSTOMER_MISMATCH", domainErr.Code)
}

func TestCollectionService_Apply_RejectsCancelledSale(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)
	sale := f.sale(t, customer.ID, 300)
	require.NoError(t, sale.Cancel("withdrawn"))

	created, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-013",
		CustomerID:       customer.ID,
		Amount:           1000,
	})
	require.NoError(t, err)

	_, err = f.service.Apply(ctx, created.ID, ApplyCollectionRequest{
		Lines: []CollectionLineRequest{{SaleID: sale.ID, Amount: 100}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SALE_CANCELLED", domainErr.Code)
}

func TestCollectionService_Amend_RaisesAvailableAndCreditsBalance(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)

	created, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-020",
		CustomerID:       customer.ID,
		Amount:           200,
	})
	require.NoError(t, err)

	amended, err := f.service.Amend(ctx, created.ID, AmendRequest{Amount: 300})
	require.NoError(t, err)
	assert.Equal(t, "500.00", amended.Amount)
	assert.Equal(t, "500.00", amended.AvailableBalance)

	storedCp, err := f.cpRepo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "-500.00", storedCp.RunningBalance.String())

	entries, err := f.entryRepo.FindByCounterparty(ctx, customer.ID, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCollectionService_PartialThenCollected(t *testing.T) {
	f := newCollectionFixture()
	ctx := context.Background()
	customer := f.customer(t)
	sale := f.sale(t, customer.ID, 800)

	created, err := f.service.Create(ctx, CreateCollectionRequest{
		CollectionNumber: "C-030",
		CustomerID:       customer.ID,
		Amount:           800,
		Lines:            []CollectionLineRequest{{SaleID: sale.ID, Amount: 300}},
	})
	require.NoError(t, err)

	storedSale, err := f.saleRepo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.CollectionStatePartial, storedSale.CollectionState)
	assert.Equal(t, "500.00", storedSale.PendingBalance.String())

	_, err = f.service.Apply(ctx, created.ID, ApplyCollectionRequest{
		Lines: []CollectionLineRequest{{SaleID: sale.ID, Amount: 500}},
	})
	require.NoError(t, err)

	storedSale, err = f.saleRepo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.CollectionStateCollected, storedSale.CollectionState)
}
