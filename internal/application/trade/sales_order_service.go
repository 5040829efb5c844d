package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
	"github.com/lupon/backend/internal/domain/trade"
)

// SalesOrderService handles sales order operations
type SalesOrderService struct {
	orderRepo        trade.SalesOrderRepository
	counterpartyRepo partner.CounterpartyRepository
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	counterpartyRepo partner.CounterpartyRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:        orderRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

// Create creates a new sales order with its lines
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	customer, err := s.counterpartyRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsCustomer() {
		return nil, shared.NewDomainError("NOT_A_CUSTOMER", "Sales orders require a customer counterparty")
	}
	if !customer.Active {
		return nil, shared.NewDomainError("INACTIVE_CUSTOMER", "Cannot create an order for an inactive customer")
	}

	order, err := trade.NewSalesOrder(req.OrderNumber, customer.ID, customer.Name)
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

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// AddLine adds a line to a pending sales order
func (s *SalesOrderService) AddLine(ctx context.Context, orderID uuid.UUID, req OrderLineRequest) (*SalesOrderResponse, error) {
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

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// UpdateLineQuantity updates one line of a pending sales order
func (s *SalesOrderService) UpdateLineQuantity(ctx context.Context, orderID, lineID uuid.UUID, req UpdateLineQuantityRequest) (*SalesOrderResponse, error) {
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

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// RemoveLine removes one line from a pending sales order
func (s *SalesOrderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expected := order.Version

	if err := order.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order, expected); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Accept moves a pending sales order to accepted
func (s *SalesOrderService) Accept(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.Accept()
	})
}

// Complete moves an accepted sales order to completed
func (s *SalesOrderService) Complete(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.Complete()
	})
}

// Cancel cancels a sales order
func (s *SalesOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*SalesOrderResponse, error) {
	return s.applyTransition(ctx, orderID, func(order *trade.SalesOrder) error {
		return order.Cancel(req.Reason)
	})
}

// Delete removes a sales order together with its lines
func (s *SalesOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}

// Get returns one sales order by ID
func (s *SalesOrderService) Get(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List returns sales orders matching the filter
func (s *SalesOrderService) List(ctx context.Context, filter shared.Filter) ([]SalesOrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponses(orders), nil
}

func (s *SalesOrderService) applyTransition(ctx context.Context, orderID uuid.UUID, fn func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
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

	response := ToSalesOrderResponse(order)
	return &response, nil
}
