package trade

import (
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/trade"
)

// OrderLineRequest represents one line in an order request
type OrderLineRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name" binding:"required,max=200"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64   `json:"unit_price" binding:"required,gt=0"`
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	OrderNumber string             `json:"order_number" binding:"required,min=1,max=50"`
	CustomerID  uuid.UUID          `json:"customer_id" binding:"required"`
	Lines       []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	OrderNumber string             `json:"order_number" binding:"required,min=1,max=50"`
	SupplierID  uuid.UUID          `json:"supplier_id" binding:"required"`
	Lines       []OrderLineRequest `json:"lines" binding:"omitempty,dive"`
}

// CreatePurchaseOrderFromSalesRequest builds one purchase order covering
// several sales, merging their product lines
type CreatePurchaseOrderFromSalesRequest struct {
	OrderNumber string      `json:"order_number" binding:"required,min=1,max=50"`
	SupplierID  uuid.UUID   `json:"supplier_id" binding:"required"`
	SaleIDs     []uuid.UUID `json:"sale_ids" binding:"required,min=1"`
}

// AssignSalesRequest links sales to an existing purchase order
type AssignSalesRequest struct {
	SaleIDs []uuid.UUID `json:"sale_ids" binding:"required,min=1"`
}

// UpdateLineQuantityRequest updates one order line's quantity
type UpdateLineQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=300"`
}

// OrderLineResponse represents one order line in API responses
type OrderLineResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Total       string    `json:"total"`
}

func toOrderLineResponses(lines trade.OrderLines) []OrderLineResponse {
	responses := make([]OrderLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = OrderLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.String(),
			Total:       line.Total.String(),
		}
	}
	return responses
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	State        string              `json:"state"`
	Lines        []OrderLineResponse `json:"lines"`
	Subtotal     string              `json:"subtotal"`
	OrderDate    time.Time           `json:"order_date"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	Version      int                 `json:"version"`
}

// ToSalesOrderResponse converts a domain sales order
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		State:        o.State.String(),
		Lines:        toOrderLineResponses(o.Lines),
		Subtotal:     o.Subtotal.String(),
		OrderDate:    o.OrderDate,
		CancelReason: o.CancelReason,
		Version:      o.Version,
	}
}

// ToSalesOrderResponses converts a list of sales orders
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	State        string              `json:"state"`
	Lines        []OrderLineResponse `json:"lines"`
	Subtotal     string              `json:"subtotal"`
	LinkedSales  []uuid.UUID         `json:"linked_sales"`
	OrderDate    time.Time           `json:"order_date"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	Version      int                 `json:"version"`
}

// ToPurchaseOrderResponse converts a domain purchase order
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		State:        o.State.String(),
		Lines:        toOrderLineResponses(o.Lines),
		Subtotal:     o.Subtotal.String(),
		LinkedSales:  o.LinkedSales,
		OrderDate:    o.OrderDate,
		CancelReason: o.CancelReason,
		Version:      o.Version,
	}
}

// ToPurchaseOrderResponses converts a list of purchase orders
func ToPurchaseOrderResponses(orders []trade.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses
}
