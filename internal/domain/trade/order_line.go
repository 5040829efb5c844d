package trade

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// OrderLine represents one line of a sales or purchase order
type OrderLine struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Total       valueobject.Money `json:"total"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewOrderLine creates a new order line
func NewOrderLine(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() || unitPrice.IsZero() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	return &OrderLine{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       valueobject.LineTotal(quantity, unitPrice),
		CreatedAt:   time.Now(),
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the total
func (l *OrderLine) UpdateQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	l.Quantity = quantity
	l.Total = valueobject.LineTotal(quantity, l.UnitPrice)
	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the total
func (l *OrderLine) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() || unitPrice.IsZero() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	l.UnitPrice = unitPrice
	l.Total = valueobject.LineTotal(l.Quantity, unitPrice)
	return nil
}

// OrderLines is the owned collection of lines, stored as JSONB
type OrderLines []OrderLine

// Value implements driver.Valuer
func (l OrderLines) Value() (driver.Value, error) {
	if l == nil {
		l = OrderLines{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *OrderLines) Scan(value any) error {
	if value == nil {
		*l = OrderLines{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan order lines from database value")
}

// Subtotal returns the sum of line totals
func (l OrderLines) Subtotal() valueobject.Money {
	total := valueobject.Zero
	for _, line := range l {
		total = total.Add(line.Total)
	}
	return total
}

// MergeLines combines several line sets into one, merging lines for the
// same product by summing their quantities. The unit price of the first
// occurrence wins. Used when building one purchase order from many sales.
func MergeLines(sets ...[]OrderLine) OrderLines {
	merged := make(OrderLines, 0)
	index := make(map[uuid.UUID]int)
	for _, set := range sets {
		for _, line := range set {
			if i, ok := index[line.ProductID]; ok {
				merged[i].Quantity += line.Quantity
				merged[i].Total = valueobject.LineTotal(merged[i].Quantity, merged[i].UnitPrice)
				continue
			}
			dup := line
			dup.ID = uuid.New()
			index[line.ProductID] = len(merged)
			merged = append(merged, dup)
		}
	}
	return merged
}
