package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// DocumentLineRequest represents one line in a sale or purchase request
type DocumentLineRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name" binding:"required,max=200"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64   `json:"unit_price" binding:"required,gt=0"`
}

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	SaleNumber      string                `json:"sale_number" binding:"required,min=1,max=50"`
	CustomerID      uuid.UUID             `json:"customer_id" binding:"required"`
	SalesOrderID    *uuid.UUID            `json:"sales_order_id"`
	Lines           []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
	DeliveryCost    float64               `json:"delivery_cost" binding:"gte=0"`
	Discount        float64               `json:"discount" binding:"gte=0"`
	PaymentTerm     string                `json:"payment_term" binding:"required,oneof=cash running_account cash_pending"`
	DeliveryAddress string                `json:"delivery_address" binding:"max=300"`
}

// RescheduleSaleRequest moves a sale's delivery to a new date
type RescheduleSaleRequest struct {
	NewDate time.Time `json:"new_date" binding:"required"`
}

// CancelRequest carries the cancellation reason
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=300"`
}

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	PurchaseNumber  string                `json:"purchase_number" binding:"required,min=1,max=50"`
	SupplierID      uuid.UUID             `json:"supplier_id" binding:"required"`
	PurchaseOrderID *uuid.UUID            `json:"purchase_order_id"`
	Lines           []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
	Extra           float64               `json:"extra" binding:"gte=0"`
	Discount        float64               `json:"discount" binding:"gte=0"`
}

// DocumentLineResponse represents one document line in API responses
type DocumentLineResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Total       string    `json:"total"`
}

func toDocumentLineResponses(lines billing.DocumentLines) []DocumentLineResponse {
	responses := make([]DocumentLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = DocumentLineResponse{
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

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID              uuid.UUID              `json:"id"`
	SaleNumber      string                 `json:"sale_number"`
	CustomerID      uuid.UUID              `json:"customer_id"`
	CustomerName    string                 `json:"customer_name"`
	SalesOrderID    *uuid.UUID             `json:"sales_order_id,omitempty"`
	PurchaseOrderID *uuid.UUID             `json:"purchase_order_id,omitempty"`
	Lines           []DocumentLineResponse `json:"lines"`
	Subtotal        string                 `json:"subtotal"`
	DeliveryCost    string                 `json:"delivery_cost"`
	Discount        string                 `json:"discount"`
	Total           string                 `json:"total"`
	PendingBalance  string                 `json:"pending_balance"`
	CommercialState string                 `json:"commercial_state"`
	DeliveryState   string                 `json:"delivery_state"`
	CollectionState string                 `json:"collection_state"`
	PaymentTerm     string                 `json:"payment_term"`
	DeliveryAddress string                 `json:"delivery_address,omitempty"`
	SaleDate        time.Time              `json:"sale_date"`
	DueDate         time.Time              `json:"due_date"`
	RescheduledFor  *time.Time             `json:"rescheduled_for,omitempty"`
	DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
	Version         int                    `json:"version"`
}

// ToSaleResponse converts a domain sale
func ToSaleResponse(s *billing.Sale) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		SaleNumber:      s.SaleNumber,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		SalesOrderID:    s.SalesOrderID,
		PurchaseOrderID: s.PurchaseOrderID,
		Lines:           toDocumentLineResponses(s.Lines),
		Subtotal:        s.Subtotal.String(),
		DeliveryCost:    s.DeliveryCost.String(),
		Discount:        s.Discount.String(),
		Total:           s.Total.String(),
		PendingBalance:  s.PendingBalance.String(),
		CommercialState: string(s.CommercialState),
		DeliveryState:   s.DeliveryState.String(),
		CollectionState: string(s.CollectionState),
		PaymentTerm:     string(s.PaymentTerm),
		DeliveryAddress: s.DeliveryAddress,
		SaleDate:        s.SaleDate,
		DueDate:         s.DueDate,
		RescheduledFor:  s.RescheduledFor,
		DeliveredAt:     s.DeliveredAt,
		CancelReason:    s.CancelReason,
		Version:         s.Version,
	}
}

// ToSaleResponses converts a list of sales
func ToSaleResponses(sales []billing.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID              uuid.UUID              `json:"id"`
	PurchaseNumber  string                 `json:"purchase_number"`
	SupplierID      uuid.UUID              `json:"supplier_id"`
	SupplierName    string                 `json:"supplier_name"`
	PurchaseOrderID *uuid.UUID             `json:"purchase_order_id,omitempty"`
	Lines           []DocumentLineResponse `json:"lines"`
	Subtotal        string                 `json:"subtotal"`
	Extra           string                 `json:"extra"`
	Discount        string                 `json:"discount"`
	Total           string                 `json:"total"`
	PendingBalance  string                 `json:"pending_balance"`
	PurchaseState   string                 `json:"purchase_state"`
	PaymentState    string                 `json:"payment_state"`
	PurchaseDate    time.Time              `json:"purchase_date"`
	DueDate         time.Time              `json:"due_date"`
	ReceivedAt      *time.Time             `json:"received_at,omitempty"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
	Version         int                    `json:"version"`
}

// ToPurchaseResponse converts a domain purchase
func ToPurchaseResponse(p *billing.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		SupplierID:      p.SupplierID,
		SupplierName:    p.SupplierName,
		PurchaseOrderID: p.PurchaseOrderID,
		Lines:           toDocumentLineResponses(p.Lines),
		Subtotal:        p.Subtotal.String(),
		Extra:           p.Extra.String(),
		Discount:        p.Discount.String(),
		Total:           p.Total.String(),
		PendingBalance:  p.PendingBalance.String(),
		PurchaseState:   p.PurchaseState.String(),
		PaymentState:    string(p.PaymentState),
		PurchaseDate:    p.PurchaseDate,
		DueDate:         p.DueDate,
		ReceivedAt:      p.ReceivedAt,
		CancelReason:    p.CancelReason,
		Version:         p.Version,
	}
}

// ToPurchaseResponses converts a list of purchases
func ToPurchaseResponses(purchases []billing.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses
}

func toDocumentLines(reqs []DocumentLineRequest) ([]billing.DocumentLine, error) {
	lines := make([]billing.DocumentLine, 0, len(reqs))
	for _, req := range reqs {
		line, err := billing.NewDocumentLine(req.ProductID, req.ProductName, req.Quantity,
			valueobject.NewMoneyFromFloat(req.UnitPrice))
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}
