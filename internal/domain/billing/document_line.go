package billing

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// DocumentLine represents one line of a sale or purchase
type DocumentLine struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Total       valueobject.Money `json:"total"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewDocumentLine creates a new document line
func NewDocumentLine(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*DocumentLine, error) {
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

	return &DocumentLine{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       valueobject.LineTotal(quantity, unitPrice),
		CreatedAt:   time.Now(),
	}, nil
}

// DocumentLines is the owned collection of lines, stored as JSONB
type DocumentLines []DocumentLine

// Value implements driver.Valuer
func (l DocumentLines) Value() (driver.Value, error) {
	if l == nil {
		l = DocumentLines{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *DocumentLines) Scan(value any) error {
	if value == nil {
		*l = DocumentLines{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan document lines from database value")
}

// Subtotal returns the sum of line totals
func (l DocumentLines) Subtotal() valueobject.Money {
	total := valueobject.Zero
	for _, line := range l {
		total = total.Add(line.Total)
	}
	return total
}
