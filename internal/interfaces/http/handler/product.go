package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/lupon/backend/internal/application/catalog"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	service *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/:id", h.Get)
	products.PUT("/:id", h.Update)
	products.PUT("/:id/purchase-price", h.UpdatePurchasePrice)
	products.PUT("/:id/rounding", h.SetRounding)
	products.POST("/:id/promotion", h.SetPromotion)
	products.DELETE("/:id/promotion", h.ClearPromotion)
	products.POST("/:id/activate", h.Activate)
	products.POST("/:id/deactivate", h.Deactivate)
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List lists products
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := listFilter(c, "active", "category", "promotion_active")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get retrieves a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update updates a product's descriptive fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdatePurchasePrice sets a new purchase price, rederiving sale prices
func (h *ProductHandler) UpdatePurchasePrice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	var req catalogapp.UpdatePurchasePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.UpdatePurchasePrice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetRounding changes a product's price rounding policy
func (h *ProductHandler) SetRounding(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	var req catalogapp.SetRoundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.SetRounding(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetPromotion opens a promotional window for a product
func (h *ProductHandler) SetPromotion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	var req catalogapp.SetPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.SetPromotion(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ClearPromotion ends a product's promotional window
func (h *ProductHandler) ClearPromotion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	product, err := h.service.ClearPromotion(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Activate returns a product to the sellable catalog
func (h *ProductHandler) Activate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	product, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Deactivate removes a product from the sellable catalog
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "invalid product ID")
		return
	}

	product, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
