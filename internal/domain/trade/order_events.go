package trade

import (
	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeSalesOrder    = "SalesOrder"
	AggregateTypePurchaseOrder = "PurchaseOrder"
)

// Event type constants
const (
	EventTypeSalesOrderCreated         = "SalesOrderCreated"
	EventTypeSalesOrderStateChanged    = "SalesOrderStateChanged"
	EventTypePurchaseOrderCreated      = "PurchaseOrderCreated"
	EventTypePurchaseOrderStateChanged = "PurchaseOrderStateChanged"
)

// SalesOrderCreatedEvent is published when a sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
	}
}

// SalesOrderStateChangedEvent is published when a sales order changes state
type SalesOrderStateChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	OldState    SalesOrderState `json:"old_state"`
	NewState    SalesOrderState `json:"new_state"`
}

// NewSalesOrderStateChangedEvent creates a new SalesOrderStateChangedEvent
func NewSalesOrderStateChangedEvent(order *SalesOrder, oldState, newState SalesOrderState) *SalesOrderStateChangedEvent {
	return &SalesOrderStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderStateChanged, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OldState:        oldState,
		NewState:        newState,
	}
}

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
	}
}

// PurchaseOrderStateChangedEvent is published when a purchase order changes state
type PurchaseOrderStateChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID          `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	OldState    PurchaseOrderState `json:"old_state"`
	NewState    PurchaseOrderState `json:"new_state"`
}

// NewPurchaseOrderStateChangedEvent creates a new PurchaseOrderStateChangedEvent
func NewPurchaseOrderStateChangedEvent(order *PurchaseOrder, oldState, newState PurchaseOrderState) *PurchaseOrderStateChangedEvent {
	return &PurchaseOrderStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderStateChanged, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OldState:        oldState,
		NewState:        newState,
	}
}
