package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/lupon/backend/internal/application/trade"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	service *tradeapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(service *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/trade/purchase-orders")
	orders.POST("", h.Create)
	orders.POST("/from-sales", h.CreateFromSales)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
	orders.DELETE("/:id", h.Delete)
	orders.POST("/:id/lines", h.AddLine)
	orders.PUT("/:id/lines/:lineID", h.UpdateLineQuantity)
	orders.POST("/:id/sales", h.AssignSales)
	orders.POST("/:id/validate", h.Validate)
	orders.POST("/:id/receive", h.Receive)
	orders.POST("/:id/cancel", h.Cancel)
}

// Create creates a new purchase order in draft state
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// CreateFromSales builds one purchase order covering several sales,
// merging their product lines
func (h *PurchaseOrderHandler) CreateFromSales(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderFromSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.CreateFromSales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List lists purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "state", "supplier_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get retrieves a purchase order by ID
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete deletes a draft purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddLine adds a line to a draft order
func (h *PurchaseOrderHandler) AddLine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req tradeapp.OrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.AddLine(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateLineQuantity changes a line's quantity on a draft order
func (h *PurchaseOrderHandler) UpdateLineQuantity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}
	lineID, ok := parseID(c, "lineID")
	if !ok {
		h.BadRequest(c, "invalid line ID")
		return
	}

	var req tradeapp.UpdateLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.UpdateLineQuantity(c.Request.Context(), id, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AssignSales links open sales to an existing purchase order
func (h *PurchaseOrderHandler) AssignSales(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req tradeapp.AssignSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.AssignSales(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Validate moves an order from draft to validated
func (h *PurchaseOrderHandler) Validate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.service.Validate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive marks a validated order as received
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.service.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order, detaching any linked sales
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	var req tradeapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
