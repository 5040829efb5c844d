package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/lupon/backend/internal/application/trade"
)

// SalesOrderHandler handles sales order API endpoints
type SalesOrderHandler struct {
	BaseHandler
	service *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(service *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{service: service}
}

// RegisterRoutes registers sales order routes
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/trade/sales-orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
	orders.DELETE("/:id", h.Delete)
	orders.POST("/:id/lines", h.AddLine)
	orders.PUT("/:id/lines/:lineID", h.UpdateLineQuantity)
	orders.DELETE("/:id/lines/:lineID", h.RemoveLine)
	orders.POST("/:id/accept", h.Accept)
	orders.POST("/:id/complete", h.Complete)
	orders.POST("/:id/cancel", h.Cancel)
}

// Create creates a new sales order in draft state
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
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

// List lists sales orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "state", "customer_id")
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

// Get retrieves a sales order by ID
func (h *SalesOrderHandler) Get(c *gin.Context) {
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

// Delete deletes a draft sales order
func (h *SalesOrderHandler) Delete(c *gin.Context) {
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
func (h *SalesOrderHandler) AddLine(c *gin.Context) {
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
func (h *SalesOrderHandler) UpdateLineQuantity(c *gin.Context) {
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

// RemoveLine removes a line from a draft order
func (h *SalesOrderHandler) RemoveLine(c *gin.Context) {
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

	order, err := h.service.RemoveLine(c.Request.Context(), id, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Accept moves an order from draft to accepted
func (h *SalesOrderHandler) Accept(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.service.Accept(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Complete marks an accepted order as completed
func (h *SalesOrderHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid order ID")
		return
	}

	order, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
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
