package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code          string  `json:"code" binding:"required,min=1,max=50"`
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	Description   string  `json:"description"`
	Category      string  `json:"category" binding:"max=100"`
	Unit          string  `json:"unit" binding:"required,min=1,max=20"`
	PurchasePrice float64 `json:"purchase_price" binding:"gte=0"`
	Rounding      string  `json:"rounding" binding:"omitempty,oneof=half_up up_500"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"max=100"`
}

// UpdatePurchasePriceRequest carries a new purchase price. Sale prices
// are derived on the server and cannot be submitted.
type UpdatePurchasePriceRequest struct {
	PurchasePrice float64 `json:"purchase_price" binding:"gte=0"`
}

// SetRoundingRequest represents a request to change the price rounding
// policy. Derived prices are recomputed under the new policy.
type SetRoundingRequest struct {
	Rounding string `json:"rounding" binding:"required,oneof=half_up up_500"`
}

// SetPromotionRequest represents a request to open a promotional window
type SetPromotionRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                      uuid.UUID  `json:"id"`
	Code                    string     `json:"code"`
	Name                    string     `json:"name"`
	Description             string     `json:"description"`
	Category                string     `json:"category"`
	Unit                    string     `json:"unit"`
	Rounding                string     `json:"rounding"`
	PurchasePrice           string     `json:"purchase_price"`
	RetailPrice             string     `json:"retail_price"`
	WholesalePrice          string     `json:"wholesale_price"`
	PromotionalPrice        string     `json:"promotional_price"`
	WholesaleExclusivePrice string     `json:"wholesale_exclusive_price"`
	PromotionActive         bool       `json:"promotion_active"`
	PromotionStart          *time.Time `json:"promotion_start,omitempty"`
	PromotionEnd            *time.Time `json:"promotion_end,omitempty"`
	Active                  bool       `json:"active"`
	Version                 int        `json:"version"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                      p.ID,
		Code:                    p.Code,
		Name:                    p.Name,
		Description:             p.Description,
		Category:                p.Category,
		Unit:                    p.Unit,
		Rounding:                string(p.Rounding),
		PurchasePrice:           p.PurchasePrice.String(),
		RetailPrice:             p.RetailPrice.String(),
		WholesalePrice:          p.WholesalePrice.String(),
		PromotionalPrice:        p.PromotionalPrice.String(),
		WholesaleExclusivePrice: p.WholesaleExclusivePrice.String(),
		PromotionActive:         p.PromotionActive,
		PromotionStart:          p.PromotionStart,
		PromotionEnd:            p.PromotionEnd,
		Active:                  p.Active,
		Version:                 p.Version,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

// ToProductResponses converts a list of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
