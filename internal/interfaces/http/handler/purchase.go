package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/lupon/backend/internal/application/billing"
)

// PurchaseHandler handles purchase API endpoints
type PurchaseHandler struct {
	BaseHandler
	service *billingapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service *billingapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/billing/purchases")
	purchases.POST("", h.Create)
	purchases.GET("", h.List)
	purchases.GET("/:id", h.Get)
	purchases.POST("/:id/receive", h.Receive)
	purchases.POST("/:id/cancel", h.Cancel)
}

// Create creates a new purchase. The supplier balance is untouched
// until a payment is recorded.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req billingapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// List lists purchases. With supplier_id and open=true, only purchases
// with a pending balance are returned, oldest first.
func (h *PurchaseHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "purchase_state", "payment_state")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("supplier_id"); raw != "" {
		supplierID, ok := parseQueryID(raw)
		if !ok {
			h.BadRequest(c, "invalid supplier ID")
			return
		}
		var purchases []billingapp.PurchaseResponse
		if c.Query("open") == "true" {
			purchases, err = h.service.ListOpenBySupplier(c.Request.Context(), supplierID, filter)
		} else {
			purchases, err = h.service.ListBySupplier(c.Request.Context(), supplierID, filter)
		}
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, purchases)
		return
	}

	purchases, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchases)
}

// Get retrieves a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid purchase ID")
		return
	}

	purchase, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Receive marks a purchase as received
func (h *PurchaseHandler) Receive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid purchase ID")
		return
	}

	purchase, err := h.service.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// Cancel cancels a purchase, crediting back any amount already paid
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid purchase ID")
		return
	}

	var req billingapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}
