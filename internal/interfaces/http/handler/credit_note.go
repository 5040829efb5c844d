package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/lupon/backend/internal/application/finance"
)

// CreditNoteHandler handles credit note API endpoints
type CreditNoteHandler struct {
	BaseHandler
	service *financeapp.CreditNoteService
}

// NewCreditNoteHandler creates a new CreditNoteHandler
func NewCreditNoteHandler(service *financeapp.CreditNoteService) *CreditNoteHandler {
	return &CreditNoteHandler{service: service}
}

// RegisterRoutes registers credit note routes
func (h *CreditNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/finance/credit-notes")
	notes.POST("", h.Create)
	notes.GET("", h.List)
	notes.GET("/:id", h.Get)
	notes.POST("/:id/apply", h.Apply)
}

// Create issues a credit note. At least one application is required;
// a note never exists unapplied.
func (h *CreditNoteHandler) Create(c *gin.Context) {
	var req financeapp.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// List lists credit notes
func (h *CreditNoteHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "kind")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("counterparty_id"); raw != "" {
		counterpartyID, ok := parseQueryID(raw)
		if !ok {
			h.BadRequest(c, "invalid counterparty ID")
			return
		}
		notes, err := h.service.ListByCounterparty(c.Request.Context(), counterpartyID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, notes)
		return
	}

	notes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notes)
}

// Get retrieves a credit note by ID
func (h *CreditNoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid credit note ID")
		return
	}

	note, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Apply applies more of a credit note's remaining amount to documents
func (h *CreditNoteHandler) Apply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid credit note ID")
		return
	}

	var req financeapp.ApplyCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.service.Apply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}
