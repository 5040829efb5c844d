package catalog

import (
	"strings"
	"time"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// Product represents a product in the catalog
// It is the aggregate root for product-related operations.
// Sale prices are always derived from the purchase price; callers can
// never set them directly.
type Product struct {
	shared.BaseAggregateRoot
	Code        string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string        `gorm:"type:varchar(200);not null"`
	Description string        `gorm:"type:text"`
	Category    string        `gorm:"type:varchar(100);index"`
	Unit        string        `gorm:"type:varchar(20);not null"` // e.g. "unit", "kg", "box"
	Rounding    PriceRounding `gorm:"type:varchar(20);not null;default:'half_up'"`

	PurchasePrice           valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	RetailPrice             valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	WholesalePrice          valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	PromotionalPrice        valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	WholesaleExclusivePrice valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`

	PromotionActive bool       `gorm:"not null;default:false"`
	PromotionStart  *time.Time `gorm:"type:date"`
	PromotionEnd    *time.Time `gorm:"type:date"`

	Active bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with derived sale prices
func NewProduct(code, name, unit string, purchasePrice valueobject.Money, rounding PriceRounding) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}
	if err := validatePriceRounding(rounding); err != nil {
		return nil, err
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		Rounding:          rounding,
		PurchasePrice:     purchasePrice,
		Active:            true,
	}
	product.applyDerivedPrices()

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdatePurchasePrice updates the purchase price and re-derives every
// sale price from it
func (p *Product) UpdatePurchasePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}

	oldPrice := p.PurchasePrice
	p.PurchasePrice = price
	p.applyDerivedPrices()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetRounding changes the rounding policy and re-derives the sale prices
func (p *Product) SetRounding(rounding PriceRounding) error {
	if err := validatePriceRounding(rounding); err != nil {
		return err
	}

	p.Rounding = rounding
	p.applyDerivedPrices()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPromotion enables a promotional window. Start and end are both
// required and start must not be after end.
func (p *Product) SetPromotion(start, end time.Time) error {
	if end.Before(start) {
		return shared.NewDomainError("INVALID_PROMOTION", "Promotion end date cannot be before start date")
	}

	p.PromotionActive = true
	p.PromotionStart = &start
	p.PromotionEnd = &end
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ClearPromotion disables the promotional window
func (p *Product) ClearPromotion() {
	p.PromotionActive = false
	p.PromotionStart = nil
	p.PromotionEnd = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsPromotionCurrent reports whether the promotional price applies at
// the given time
func (p *Product) IsPromotionCurrent(at time.Time) bool {
	if !p.PromotionActive || p.PromotionStart == nil || p.PromotionEnd == nil {
		return false
	}
	return !at.Before(*p.PromotionStart) && !at.After(*p.PromotionEnd)
}

// Activate marks the product as active
func (p *Product) Activate() error {
	if p.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Prices returns the current derived price set
func (p *Product) Prices() PriceSet {
	return PriceSet{
		Retail:             p.RetailPrice,
		Wholesale:          p.WholesalePrice,
		Promotional:        p.PromotionalPrice,
		WholesaleExclusive: p.WholesaleExclusivePrice,
	}
}

func (p *Product) applyDerivedPrices() {
	prices := DerivePrices(p.PurchasePrice, p.Rounding)
	p.RetailPrice = prices.Retail
	p.WholesalePrice = prices.Wholesale
	p.PromotionalPrice = prices.Promotional
	p.WholesaleExclusivePrice = prices.WholesaleExclusive
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateUnit validates the unit of measure
func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
