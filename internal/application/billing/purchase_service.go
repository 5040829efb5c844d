package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
	"github.com/lupon/backend/internal/domain/trade"
)

const sourceTypePurchase = "purchase"

// PurchaseService handles purchase operations. Creating a purchase does
// not move the supplier's running balance; cancelling one reverses the
// full total.
type PurchaseService struct {
	purchaseRepo     billing.PurchaseRepository
	purchaseOrdRepo  trade.PurchaseOrderRepository
	counterpartyRepo partner.CounterpartyRepository
	balanceEntryRepo partner.BalanceEntryRepository
	uow              shared.UnitOfWork
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo billing.PurchaseRepository,
	purchaseOrdRepo trade.PurchaseOrderRepository,
	counterpartyRepo partner.CounterpartyRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
	uow shared.UnitOfWork,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:     purchaseRepo,
		purchaseOrdRepo:  purchaseOrdRepo,
		counterpartyRepo: counterpartyRepo,
		balanceEntryRepo: balanceEntryRepo,
		uow:              uow,
	}
}

// Create creates a new purchase. A linked purchase order must be
// validated and must belong to the same supplier.
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	supplier, err := s.counterpartyRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsSupplier() {
		return nil, shared.NewDomainError("NOT_A_SUPPLIER", "Purchases require a supplier counterparty")
	}
	if !supplier.Active {
		return nil, shared.NewDomainError("INACTIVE_SUPPLIER", "Cannot create a purchase for an inactive supplier")
	}

	if req.PurchaseOrderID != nil {
		order, err := s.purchaseOrdRepo.FindByID(ctx, *req.PurchaseOrderID)
		if err != nil {
			return nil, err
		}
		if !order.IsValidated() {
			return nil, shared.NewDomainError("ORDER_NOT_VALIDATED", "Purchases can only be created from validated purchase orders")
		}
		if order.SupplierID != req.SupplierID {
			return nil, shared.NewDomainError("SUPPLIER_MISMATCH", "Purchase supplier does not match the purchase order supplier")
		}
	}

	lines, err := toDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}

	purchase, err := billing.NewPurchase(
		req.PurchaseNumber,
		supplier.ID,
		supplier.Name,
		lines,
		valueobject.NewMoneyFromFloat(req.Extra),
		valueobject.NewMoneyFromFloat(req.Discount),
		supplier.DueDate(time.Now()),
	)
	if err != nil {
		return nil, err
	}
	if req.PurchaseOrderID != nil {
		purchase.LinkPurchaseOrder(*req.PurchaseOrderID)
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Receive marks a purchase as received
func (s *PurchaseService) Receive(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	expected := purchase.Version

	if err := purchase.Receive(); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.SaveWithLock(ctx, purchase, expected); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Cancel cancels a purchase: the pending balance is zeroed and the
// supplier's running balance is reversed by the full total in the same
// unit of work.
func (s *PurchaseService) Cancel(ctx context.Context, purchaseID uuid.UUID, req CancelRequest) (*PurchaseResponse, error) {
	var purchase *billing.Purchase
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		purchase, err = s.purchaseRepo.FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		expected := purchase.Version

		if err := purchase.Cancel(req.Reason); err != nil {
			return err
		}

		supplier, err := s.counterpartyRepo.FindByID(ctx, purchase.SupplierID)
		if err != nil {
			return err
		}
		supplierExpected := supplier.Version
		entry, err := supplier.Credit(purchase.Total, partner.BalanceEntryTypePurchaseCancelled,
			partner.NewSourceRef(sourceTypePurchase, purchase.ID))
		if err != nil {
			return err
		}

		if err := s.purchaseRepo.SaveWithLock(ctx, purchase, expected); err != nil {
			return err
		}
		if err := s.counterpartyRepo.SaveWithLock(ctx, supplier, supplierExpected); err != nil {
			return err
		}
		return s.balanceEntryRepo.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Get returns one purchase by ID
func (s *PurchaseService) Get(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List returns purchases matching the filter
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) ([]PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponses(purchases), nil
}

// ListBySupplier returns a supplier's purchases
func (s *PurchaseService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponses(purchases), nil
}

// ListOpenBySupplier returns a supplier's purchases with a pending balance
func (s *PurchaseService) ListOpenBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.FindOpenBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponses(purchases), nil
}
