package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/lupon/backend/internal/application/finance"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	service *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/finance/payments")
	payments.POST("", h.Create)
	payments.GET("", h.List)
	payments.GET("/:id", h.Get)
	payments.POST("/:id/apply", h.Apply)
	payments.POST("/:id/amend", h.Amend)
}

// Create records money paid to a supplier, crediting their running
// balance and optionally settling purchases in the same request
func (h *PaymentHandler) Create(c *gin.Context) {
	var req financeapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// List lists payments
func (h *PaymentHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
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
		payments, err := h.service.ListBySupplier(c.Request.Context(), supplierID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payments)
		return
	}

	payments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// Get retrieves a payment by ID
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid payment ID")
		return
	}

	payment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Apply settles more purchases from a payment's available balance
func (h *PaymentHandler) Apply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid payment ID")
		return
	}

	var req financeapp.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.Apply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Amend adds funds to an existing payment, crediting the supplier's
// running balance by the added amount
func (h *PaymentHandler) Amend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid payment ID")
		return
	}

	var req financeapp.AmendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.service.Amend(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
