package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/lupon/backend/internal/application/billing"
)

// SaleHandler handles sale API endpoints
type SaleHandler struct {
	BaseHandler
	service *billingapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *billingapp.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/billing/sales")
	sales.POST("", h.Create)
	sales.GET("", h.List)
	sales.GET("/:id", h.Get)
	sales.POST("/:id/deliver", h.Deliver)
	sales.POST("/:id/reschedule", h.Reschedule)
	sales.POST("/:id/cancel", h.Cancel)
}

// Create creates a new sale, charging the customer's running balance
func (h *SaleHandler) Create(c *gin.Context) {
	var req billingapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// List lists sales. With customer_id and open=true, only sales with a
// pending balance are returned, oldest first.
func (h *SaleHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "commercial_state", "delivery_state", "collection_state")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("customer_id"); raw != "" {
		customerID, ok := parseQueryID(raw)
		if !ok {
			h.BadRequest(c, "invalid customer ID")
			return
		}
		var sales []billingapp.SaleResponse
		if c.Query("open") == "true" {
			sales, err = h.service.ListOpenByCustomer(c.Request.Context(), customerID, filter)
		} else {
			sales, err = h.service.ListByCustomer(c.Request.Context(), customerID, filter)
		}
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, sales)
		return
	}

	sales, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// Get retrieves a sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Deliver marks a sale as delivered
func (h *SaleHandler) Deliver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.service.Deliver(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Reschedule moves a sale's delivery to a new date
func (h *SaleHandler) Reschedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	var req billingapp.RescheduleSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Cancel cancels a sale, crediting the customer's running balance
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	var req billingapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
