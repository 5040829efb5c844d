package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/lupon/backend/internal/application/partner"
)

// CounterpartyHandler handles counterparty API endpoints, including the
// running-balance ledger attached to each counterparty.
type CounterpartyHandler struct {
	BaseHandler
	service *partnerapp.CounterpartyService
}

// NewCounterpartyHandler creates a new CounterpartyHandler
func NewCounterpartyHandler(service *partnerapp.CounterpartyService) *CounterpartyHandler {
	return &CounterpartyHandler{service: service}
}

// RegisterRoutes registers counterparty routes
func (h *CounterpartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	counterparties := rg.Group("/partner/counterparties")
	counterparties.POST("", h.Create)
	counterparties.GET("", h.List)
	counterparties.GET("/:id", h.Get)
	counterparties.PUT("/:id", h.Update)
	counterparties.PUT("/:id/payment-term", h.ChangePaymentTerm)
	counterparties.POST("/:id/activate", h.Activate)
	counterparties.POST("/:id/deactivate", h.Deactivate)
	counterparties.GET("/:id/balance-entries", h.ListBalanceEntries)
}

// Create creates a new counterparty
func (h *CounterpartyHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counterparty, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, counterparty)
}

// List lists counterparties
func (h *CounterpartyHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "type", "active", "payment_term")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counterparties, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counterparties)
}

// Get retrieves a counterparty by ID
func (h *CounterpartyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid counterparty ID")
		return
	}

	counterparty, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counterparty)
}

// Update updates a counterparty's contact information
func (h *CounterpartyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid counterparty ID")
		return
	}

	var req partnerapp.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counterparty, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counterparty)
}

// ChangePaymentTerm changes how a counterparty settles its documents
func (h *CounterpartyHandler) ChangePaymentTerm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid counterparty ID")
		return
	}

	var req partnerapp.ChangePaymentTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	counterparty, err := h.service.ChangePaymentTerm(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counterparty)
}

// Activate reopens a counterparty account for new documents
func (h *CounterpartyHandler) Activate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid counterparty ID")
		return
	}

	counterparty, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counterparty)
}

// Deactivate closes a counterparty account to new documents
func (h *CounterpartyHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid counterparty ID")
		return
	}

	counterparty, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counterparty)
}

// ListBalanceEntries lists the running-balance ledger of a counterparty,
// newest first
func (h *CounterpartyHandler) ListBalanceEntries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid counterparty ID")
		return
	}

	filter, err := listFilter(c, "entry_type")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.service.ListBalanceEntries(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
