package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/finance"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

const sourceTypePayment = "payment"

// PaymentService handles payments to suppliers, the buy-side mirror of
// CollectionService
type PaymentService struct {
	paymentRepo      finance.PaymentRepository
	purchaseRepo     billing.PurchaseRepository
	counterpartyRepo partner.CounterpartyRepository
	balanceEntryRepo partner.BalanceEntryRepository
	uow              shared.UnitOfWork
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo finance.PaymentRepository,
	purchaseRepo billing.PurchaseRepository,
	counterpartyRepo partner.CounterpartyRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
	uow shared.UnitOfWork,
) *PaymentService {
	return &PaymentService{
		paymentRepo:      paymentRepo,
		purchaseRepo:     purchaseRepo,
		counterpartyRepo: counterpartyRepo,
		balanceEntryRepo: balanceEntryRepo,
		uow:              uow,
	}
}

// Create creates a new payment, reducing the supplier's running balance
// by the paid amount. Any initial lines are applied in the same unit of
// work.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	var payment *finance.Payment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		supplier, err := s.counterpartyRepo.FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsSupplier() {
			return shared.NewDomainError("NOT_A_SUPPLIER", "Payments require a supplier counterparty")
		}
		supplierExpected := supplier.Version

		payment, err = finance.NewPayment(req.PaymentNumber, supplier.ID, supplier.Name,
			valueobject.NewMoneyFromFloat(req.Amount))
		if err != nil {
			return err
		}
		payment.Notes = req.Notes

		for _, line := range req.Lines {
			if err := s.applyLine(ctx, payment, line); err != nil {
				return err
			}
		}

		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}

		if !payment.Amount.IsZero() {
			entry, err := supplier.Credit(payment.Amount, partner.BalanceEntryTypePayment,
				partner.NewSourceRef(sourceTypePayment, payment.ID))
			if err != nil {
				return err
			}
			if err := s.counterpartyRepo.SaveWithLock(ctx, supplier, supplierExpected); err != nil {
				return err
			}
			return s.balanceEntryRepo.Save(ctx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Apply applies more of a payment's available balance to purchases
func (s *PaymentService) Apply(ctx context.Context, paymentID uuid.UUID, req ApplyPaymentRequest) (*PaymentResponse, error) {
	var payment *finance.Payment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		expected := payment.Version

		for _, line := range req.Lines {
			if err := s.applyLine(ctx, payment, line); err != nil {
				return err
			}
		}

		return s.paymentRepo.SaveWithLock(ctx, payment, expected)
	})
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Amend adds funds to a payment, reducing the supplier's running
// balance by the added amount
func (s *PaymentService) Amend(ctx context.Context, paymentID uuid.UUID, req AmendRequest) (*PaymentResponse, error) {
	var payment *finance.Payment
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		expected := payment.Version

		delta := valueobject.NewMoneyFromFloat(req.Amount)
		if err := payment.IncreaseAmount(delta); err != nil {
			return err
		}

		supplier, err := s.counterpartyRepo.FindByID(ctx, payment.SupplierID)
		if err != nil {
			return err
		}
		supplierExpected := supplier.Version
		entry, err := supplier.Credit(delta, partner.BalanceEntryTypePayment,
			partner.NewSourceRef(sourceTypePayment, payment.ID))
		if err != nil {
			return err
		}

		if err := s.paymentRepo.SaveWithLock(ctx, payment, expected); err != nil {
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

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Get returns one payment by ID
func (s *PaymentService) Get(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List returns payments matching the filter
func (s *PaymentService) List(ctx context.Context, filter shared.Filter) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// ListBySupplier returns a supplier's payments
func (s *PaymentService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// applyLine applies one line against a purchase: the purchase must
// belong to the payment's supplier and must not be cancelled
func (s *PaymentService) applyLine(ctx context.Context, payment *finance.Payment, line PaymentLineRequest) error {
	purchase, err := s.purchaseRepo.FindByID(ctx, line.PurchaseID)
	if err != nil {
		return err
	}
	if purchase.SupplierID != payment.SupplierID {
		return shared.NewDomainError("SUPPLIER_MISMATCH", "Purchase does not belong to the payment's supplier")
	}
	purchaseExpected := purchase.Version

	applied := valueobject.NewMoneyFromFloat(line.Amount)
	if _, err := payment.AddLine(purchase.ID, applied); err != nil {
		return err
	}
	if err := purchase.ApplyPayment(applied); err != nil {
		return err
	}

	return s.purchaseRepo.SaveWithLock(ctx, purchase, purchaseExpected)
}
