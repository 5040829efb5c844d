package billing

import (
	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// Aggregate type constants
const (
	AggregateTypeSale     = "Sale"
	AggregateTypePurchase = "Purchase"
)

// Event type constants
const (
	EventTypeSaleCreated          = "SaleCreated"
	EventTypeSaleDelivered        = "SaleDelivered"
	EventTypeSaleCancelled        = "SaleCancelled"
	EventTypePurchaseCreated      = "PurchaseCreated"
	EventTypePurchaseStateChanged = "PurchaseStateChanged"
)

// SaleCreatedEvent is published when a sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID         `json:"sale_id"`
	SaleNumber string            `json:"sale_number"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Total      valueobject.Money `json:"total"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(sale *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		Total:           sale.Total,
	}
}

// SaleDeliveredEvent is published when a sale is delivered
type SaleDeliveredEvent struct {
	shared.BaseDomainEvent
	SaleID       uuid.UUID  `json:"sale_id"`
	SaleNumber   string     `json:"sale_number"`
	SalesOrderID *uuid.UUID `json:"sales_order_id,omitempty"`
}

// NewSaleDeliveredEvent creates a new SaleDeliveredEvent
func NewSaleDeliveredEvent(sale *Sale) *SaleDeliveredEvent {
	return &SaleDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleDelivered, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		SalesOrderID:    sale.SalesOrderID,
	}
}

// SaleCancelledEvent is published when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID         `json:"sale_id"`
	SaleNumber string            `json:"sale_number"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Total      valueobject.Money `json:"total"`
	Reason     string            `json:"reason,omitempty"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(sale *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		Total:           sale.Total,
		Reason:          sale.CancelReason,
	}
}

// PurchaseCreatedEvent is published when a purchase is created
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID         `json:"purchase_id"`
	PurchaseNumber string            `json:"purchase_number"`
	SupplierID     uuid.UUID         `json:"supplier_id"`
	Total          valueobject.Money `json:"total"`
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(purchase *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCreated, AggregateTypePurchase, purchase.ID),
		PurchaseID:      purchase.ID,
		PurchaseNumber:  purchase.PurchaseNumber,
		SupplierID:      purchase.SupplierID,
		Total:           purchase.Total,
	}
}

// PurchaseStateChangedEvent is published when a purchase changes state
type PurchaseStateChangedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID     `json:"purchase_id"`
	PurchaseNumber string        `json:"purchase_number"`
	OldState       PurchaseState `json:"old_state"`
	NewState       PurchaseState `json:"new_state"`
}

// NewPurchaseStateChangedEvent creates a new PurchaseStateChangedEvent
func NewPurchaseStateChangedEvent(purchase *Purchase, oldState, newState PurchaseState) *PurchaseStateChangedEvent {
	return &PurchaseStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseStateChanged, AggregateTypePurchase, purchase.ID),
		PurchaseID:      purchase.ID,
		PurchaseNumber:  purchase.PurchaseNumber,
		OldState:        oldState,
		NewState:        newState,
	}
}
