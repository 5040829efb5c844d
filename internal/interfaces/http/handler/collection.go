package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/lupon/backend/internal/application/finance"
)

// CollectionHandler handles collection API endpoints
type CollectionHandler struct {
	BaseHandler
	service *financeapp.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(service *financeapp.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// RegisterRoutes registers collection routes
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	collections := rg.Group("/finance/collections")
	collections.POST("", h.Create)
	collections.GET("", h.List)
	collections.GET("/:id", h.Get)
	collections.POST("/:id/apply", h.Apply)
	collections.POST("/:id/amend", h.Amend)
}

// Create records money received from a customer, crediting their
// running balance and optionally settling sales in the same request
func (h *CollectionHandler) Create(c *gin.Context) {
	var req financeapp.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	collection, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, collection)
}

// List lists collections
func (h *CollectionHandler) List(c *gin.Context) {
	filter, err := listFilter(c)
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
		collections, err := h.service.ListByCustomer(c.Request.Context(), customerID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, collections)
		return
	}

	collections, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collections)
}

// Get retrieves a collection by ID
func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid collection ID")
		return
	}

	collection, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Apply settles more sales from a collection's available balance
func (h *CollectionHandler) Apply(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid collection ID")
		return
	}

	var req financeapp.ApplyCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	collection, err := h.service.Apply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Amend adds funds to an existing collection, crediting the customer's
// running balance by the added amount
func (h *CollectionHandler) Amend(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid collection ID")
		return
	}

	var req financeapp.AmendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	collection, err := h.service.Amend(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}
