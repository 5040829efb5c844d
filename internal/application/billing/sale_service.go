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

const sourceTypeSale = "sale"

// SaleService handles sale operations. Creating and cancelling a sale
// move the customer's running balance, so both run inside a unit of
// work together with the balance entry that records the change.
type SaleService struct {
	saleRepo         billing.SaleRepository
	salesOrderRepo   trade.SalesOrderRepository
	purchaseOrdRepo  trade.PurchaseOrderRepository
	counterpartyRepo partner.CounterpartyRepository
	balanceEntryRepo partner.BalanceEntryRepository
	uow              shared.UnitOfWork
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo billing.SaleRepository,
	salesOrderRepo trade.SalesOrderRepository,
	purchaseOrdRepo trade.PurchaseOrderRepository,
	counterpartyRepo partner.CounterpartyRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
	uow shared.UnitOfWork,
) *SaleService {
	return &SaleService{
		saleRepo:         saleRepo,
		salesOrderRepo:   salesOrderRepo,
		purchaseOrdRepo:  purchaseOrdRepo,
		counterpartyRepo: counterpartyRepo,
		balanceEntryRepo: balanceEntryRepo,
		uow:              uow,
	}
}

// Create creates a new sale, charging the customer's running balance by
// the full total. A linked sales order must be accepted.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	lines, err := toDocumentLines(req.Lines)
	if err != nil {
		return nil, err
	}

	var sale *billing.Sale
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		customer, err := s.counterpartyRepo.FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsCustomer() {
			return shared.NewDomainError("NOT_A_CUSTOMER", "Sales require a customer counterparty")
		}
		if !customer.Active {
			return shared.NewDomainError("INACTIVE_CUSTOMER", "Cannot create a sale for an inactive customer")
		}
		customerExpected := customer.Version

		if req.SalesOrderID != nil {
			order, err := s.salesOrderRepo.FindByID(ctx, *req.SalesOrderID)
			if err != nil {
				return err
			}
			if !order.IsAccepted() {
				return shared.NewDomainError("ORDER_NOT_ACCEPTED", "Sales can only be created from accepted sales orders")
			}
			if order.Subtotal.IsZero() {
				return shared.NewDomainError("EMPTY_ORDER", "Cannot create a sale from an order with a zero subtotal")
			}
			if order.CustomerID != req.CustomerID {
				return shared.NewDomainError("CUSTOMER_MISMATCH", "Sale customer does not match the sales order customer")
			}
		}

		sale, err = billing.NewSale(
			req.SaleNumber,
			customer.ID,
			customer.Name,
			lines,
			valueobject.NewMoneyFromFloat(req.DeliveryCost),
			valueobject.NewMoneyFromFloat(req.Discount),
			billing.SalePaymentTerm(req.PaymentTerm),
			customer.DueDate(time.Now()),
		)
		if err != nil {
			return err
		}
		if req.SalesOrderID != nil {
			sale.LinkSalesOrder(*req.SalesOrderID)
		}
		if req.DeliveryAddress != "" {
			sale.SetDeliveryAddress(req.DeliveryAddress)
		}

		entry, err := customer.Charge(sale.Total, partner.BalanceEntryTypeSale,
			partner.NewSourceRef(sourceTypeSale, sale.ID))
		if err != nil {
			return err
		}

		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		if err := s.counterpartyRepo.SaveWithLock(ctx, customer, customerExpected); err != nil {
			return err
		}
		return s.balanceEntryRepo.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Deliver marks a sale as delivered. When the sale came from a sales
// order that is still open, the order is completed in the same unit of
// work.
func (s *SaleService) Deliver(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	var sale *billing.Sale
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		expected := sale.Version

		if err := sale.Deliver(); err != nil {
			return err
		}

		if sale.SalesOrderID != nil {
			order, err := s.salesOrderRepo.FindByID(ctx, *sale.SalesOrderID)
			if err != nil {
				return err
			}
			if order.State != trade.SalesOrderStateCompleted && !order.IsCancelled() {
				orderExpected := order.Version
				if err := order.Complete(); err != nil {
					return err
				}
				if err := s.salesOrderRepo.SaveWithLock(ctx, order, orderExpected); err != nil {
					return err
				}
			}
		}

		return s.saleRepo.SaveWithLock(ctx, sale, expected)
	})
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Reschedule moves a sale's delivery to a new date
func (s *SaleService) Reschedule(ctx context.Context, saleID uuid.UUID, req RescheduleSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	expected := sale.Version

	if err := sale.Reschedule(req.NewDate); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale, expected); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Cancel cancels a sale: the sale is detached from its purchase order,
// the pending balance is zeroed and the customer's running balance is
// reversed by the full total, all in one unit of work.
func (s *SaleService) Cancel(ctx context.Context, saleID uuid.UUID, req CancelRequest) (*SaleResponse, error) {
	var sale *billing.Sale
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		expected := sale.Version

		purchaseOrderID := sale.PurchaseOrderID

		if err := sale.Cancel(req.Reason); err != nil {
			return err
		}
		sale.DetachPurchaseOrder()

		if purchaseOrderID != nil {
			order, err := s.purchaseOrdRepo.FindByID(ctx, *purchaseOrderID)
			if err != nil {
				return err
			}
			orderExpected := order.Version
			order.DetachSale(sale.ID)
			if order.Version != orderExpected {
				if err := s.purchaseOrdRepo.SaveWithLock(ctx, order, orderExpected); err != nil {
					return err
				}
			}
		}

		customer, err := s.counterpartyRepo.FindByID(ctx, sale.CustomerID)
		if err != nil {
			return err
		}
		customerExpected := customer.Version
		entry, err := customer.Credit(sale.Total, partner.BalanceEntryTypeSaleCancelled,
			partner.NewSourceRef(sourceTypeSale, sale.ID))
		if err != nil {
			return err
		}

		if err := s.saleRepo.SaveWithLock(ctx, sale, expected); err != nil {
			return err
		}
		if err := s.counterpartyRepo.SaveWithLock(ctx, customer, customerExpected); err != nil {
			return err
		}
		return s.balanceEntryRepo.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Get returns one sale by ID
func (s *SaleService) Get(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List returns sales matching the filter
func (s *SaleService) List(ctx context.Context, filter shared.Filter) ([]SaleResponse, error) {
	sales, err := s.saleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(sales), nil
}

// ListByCustomer returns a customer's sales
func (s *SaleService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SaleResponse, error) {
	sales, err := s.saleRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(sales), nil
}

// ListOpenByCustomer returns a customer's sales with a pending balance
func (s *SaleService) ListOpenByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SaleResponse, error) {
	sales, err := s.saleRepo.FindOpenByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(sales), nil
}
