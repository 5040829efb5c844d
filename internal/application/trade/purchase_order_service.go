package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
	"github.com/lupon/backend/internal/domain/trade"
)

// PurchaseOrderService handles purchase order operations, including
// building orders from groups of sales and keeping the order/sale
// links consistent when either side is cancelled.
type PurchaseOrderService struct {
	orderRepo        trade.PurchaseOrderRepository
	saleRepo         billing.SaleRepository
	counterpartyRepo partner.CounterpartyRepository
	uow              shared.UnitOfWork
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo trade.PurchaseOrderRepository,
	saleRepo billing.SaleRepository,
	counterpartyRepo partner.CounterpartyRepository,
	uow shared.UnitOfWork,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:        orderRepo,
		saleRepo:         saleRepo,
		counterpartyRepo: counterpartyRepo,
		uow:              uow,
	}
}

// Create creates a new purchase order with its lines
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.findSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(req.OrderNumber, supplier.ID, supplier.Name)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, err := order.AddLine(line.ProductID, line.ProductName, line.Quantity,
			valueobject.NewMoneyFromFloat(line.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// CreateFromSales builds one purchase order covering several sales.
// Lines for the same product are merged by summing quantities; every
// covered sale gets its back-reference set within the same unit of work.
func (s *PurchaseOrderService) CreateFromSales(ctx context.Context, req CreatePurchaseOrderFromSalesRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.findSupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	var order *trade.PurchaseOrder
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		sales := make([]*billing.Sale, 0, len(req.SaleIDs))
		for _, saleID := range req.SaleIDs {
			sale, err := s.saleRepo.FindByID(ctx, saleID)
			if err != nil {
				return err
			}
			if err := validateSaleAssignable(sale, uuid.Nil); err != nil {
				return err
			}
			sales = append(sales, sale)
		}

		order, err = trade.NewPurchaseOrder(req.OrderNumber, supplier.ID, supplier.Name)
		if err != nil {
			return err
		}

		lineSets := make([][]trade.OrderLine, 0, len(sales))
		for _, sale := range sales {
			lineSets = append(lineSets, saleLinesToOrderLines(sale.Lines))
		}
		merged := trade.MergeLines(lineSets...)
		for _, line := range merged {
			if _, err := order.AddLine(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}

		for _, sale := range sales {
			expected := sale.Version
			if err := order.AssignSale(sale.ID); err != nil {
				return err
			}
			if err := sale.AssignPurchaseOrder(order.ID); err != nil {
				return err
			}
			if err := s.saleRepo.SaveWithLock(ctx, sale, expected); err != nil {
				return err
			}
		}

		return s.orderRepo.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// AssignSales links sales to an existing purchase order. The order must
// be pending or validated; each sale must not be cancelled and must not
// already belong to a different order. Re-linking an already linked
// sale is a no-op.
func (s *PurchaseOrderService) AssignSales(ctx context.Context, orderID uuid.UUID, req AssignSalesRequest) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		expected := order.Version

		for _, saleID := range req.SaleIDs {
			sale, err := s.saleRepo.FindByID(ctx, saleID)
			if err != nil {
				return err
			}
			if err := validateSaleAssignable(sale, order.ID); err != nil {
				return err
			}

			saleExpected := sale.Version
			if err := order.AssignSale(sale.ID); err != nil {
				return err
			}
			if err := sale.AssignPurchaseOrder(order.ID); err != nil {
				return err
			}
			if sale.Version != saleExpected {
				if err := s.saleRepo.SaveWithLock(ctx, sale, saleExpected); err != nil {
					return err
				}
			}
		}

		return s.orderRepo.SaveWithLock(ctx, order, expected)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Validate moves a pending purchase order to validated
func (s *PurchaseOrderService) Validate(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *trade.PurchaseOrder) error {
		return order.Validate()
	})
}

// Receive moves a validated purchase order to received
func (s *PurchaseOrderService) Receive(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *trade.PurchaseOrder) error {
		return order.Receive()
	})
}

// Cancel cancels a purchase order and clears the back-reference on
// every linked sale within the same unit of work
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*PurchaseOrderResponse, error) {
	var order *trade.PurchaseOrder
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		expected := order.Version

		if err := order.Cancel(req.Reason); err != nil {
			return err
		}

		for _, saleID := range order.DetachAllSales() {
			sale, err := s.saleRepo.FindByID(ctx, saleID)
			if err != nil {
				return err
			}
			saleExpected := sale.Version
			sale.DetachPurchaseOrder()
			if err := s.saleRepo.SaveWithLock(ctx, sale, saleExpected); err != nil {
				return err
			}
		}

		return s.orderRepo.SaveWithLock(ctx, order, expected)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// AddLine adds a line to a pending purchase order
func (s *PurchaseOrderService) AddLine(ctx context.Context, orderID uuid.UUID, req OrderLineRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expected := order.Version

	if _, err := order.AddLine(req.ProductID, req.ProductName, req.Quantity,
		valueobject.NewMoneyFromFloat(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expected); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// UpdateLineQuantity updates one line of a pending purchase order
func (s *PurchaseOrderService) UpdateLineQuantity(ctx context.Context, orderID, lineID uuid.UUID, req UpdateLineQuantityRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expected := order.Version

	if err := order.UpdateLineQuantity(lineID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expected); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// Get returns one purchase order by ID
func (s *PurchaseOrderService) Get(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List returns purchase orders matching the filter
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) ([]PurchaseOrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponses(orders), nil
}

// Delete removes a purchase order together with its lines
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *PurchaseOrderService) applyTransition(ctx context.Context, orderID uuid.UUID, fn func(*trade.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	expected := order.Version

	if err := fn(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expected); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

func (s *PurchaseOrderService) findSupplier(ctx context.Context, supplierID uuid.UUID) (*partner.Counterparty, error) {
	supplier, err := s.counterpartyRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsSupplier() {
		return nil, shared.NewDomainError("NOT_A_SUPPLIER", "Purchase orders require a supplier counterparty")
	}
	if !supplier.Active {
		return nil, shared.NewDomainError("INACTIVE_SUPPLIER", "Cannot create an order for an inactive supplier")
	}
	return supplier, nil
}

// validateSaleAssignable checks that a sale may be linked to the given
// purchase order: not cancelled and not already owned by a different
// order. Passing uuid.Nil means the sale must be unassigned.
func validateSaleAssignable(sale *billing.Sale, orderID uuid.UUID) error {
	if sale.IsCancelled() {
		return shared.NewDomainError("SALE_CANCELLED", "Cancelled sales cannot be assigned to a purchase order")
	}
	if sale.PurchaseOrderID != nil && *sale.PurchaseOrderID != orderID {
		return shared.NewDomainError("ALREADY_ASSIGNED", "Sale already belongs to a different purchase order")
	}
	return nil
}

func saleLinesToOrderLines(lines billing.DocumentLines) []trade.OrderLine {
	converted := make([]trade.OrderLine, 0, len(lines))
	for _, line := range lines {
		converted = append(converted, trade.OrderLine{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
			CreatedAt:   line.CreatedAt,
		})
	}
	return converted
}
