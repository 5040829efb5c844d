package finance

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// CollectionLine links part of a collection to one sale
type CollectionLine struct {
	ID            uuid.UUID         `json:"id"`
	SaleID        uuid.UUID         `json:"sale_id"`
	AppliedAmount valueobject.Money `json:"applied_amount"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CollectionLines is the owned collection of lines, stored as JSONB
type CollectionLines []CollectionLine

// Value implements driver.Valuer
func (l CollectionLines) Value() (driver.Value, error) {
	if l == nil {
		l = CollectionLines{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *CollectionLines) Scan(value any) error {
	if value == nil {
		*l = CollectionLines{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan collection lines from database value")
}

// AppliedTotal returns the sum of applied amounts
func (l CollectionLines) AppliedTotal() valueobject.Money {
	total := valueobject.Zero
	for _, line := range l {
		total = total.Add(line.AppliedAmount)
	}
	return total
}

// Collection represents money received from a customer, applied in
// parts against that customer's open sales. Lines are additive only:
// once applied, an amount is never taken back. The available balance is
// the single source of truth for how much may still be applied; it is
// read from the stored aggregate, never from caller input.
type Collection struct {
	shared.BaseAggregateRoot
	CollectionNumber string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName     string            `gorm:"type:varchar(200);not null"`
	Amount           valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	AvailableBalance valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Lines            CollectionLines   `gorm:"type:jsonb"`
	CollectionDate   time.Time         `gorm:"not null"`
	Notes            string            `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Collection) TableName() string {
	return "collections"
}

// NewCollection creates a new collection. A zero amount is permitted so
// a collection can be opened and funded by later amendments.
func NewCollection(collectionNumber string, customerID uuid.UUID, customerName string, amount valueobject.Money) (*Collection, error) {
	if collectionNumber == "" {
		return nil, shared.NewDomainError("INVALID_COLLECTION_NUMBER", "Collection number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Collection amount cannot be negative")
	}

	collection := &Collection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CollectionNumber:  collectionNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Amount:            amount,
		AvailableBalance:  amount,
		Lines:             make(CollectionLines, 0),
		CollectionDate:    time.Now(),
	}

	collection.AddDomainEvent(NewCollectionCreatedEvent(collection))

	return collection, nil
}

// AddLine applies part of the collection to a sale. The applied amount
// must be positive and must not exceed the stored available balance.
func (c *Collection) AddLine(saleID uuid.UUID, applied valueobject.Money) (*CollectionLine, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if applied.IsZero() || applied.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if applied.GreaterThan(c.AvailableBalance) {
		return nil, shared.NewDomainError("INSUFFICIENT_BALANCE", "Applied amount exceeds the collection's available balance")
	}

	line := CollectionLine{
		ID:            uuid.New(),
		SaleID:        saleID,
		AppliedAmount: applied,
		CreatedAt:     time.Now(),
	}
	c.Lines = append(c.Lines, line)
	c.AvailableBalance = c.AvailableBalance.Sub(applied)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCollectionAppliedEvent(c, &line))

	return &line, nil
}

// IncreaseAmount amends the collection with additional funds, raising
// both the amount and the available balance
func (c *Collection) IncreaseAmount(delta valueobject.Money) error {
	if delta.IsZero() || delta.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amendment amount must be positive")
	}
	c.Amount = c.Amount.Add(delta)
	c.AvailableBalance = c.AvailableBalance.Add(delta)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// AppliedTotal returns the total amount applied across all lines
func (c *Collection) AppliedTotal() valueobject.Money {
	return c.Lines.AppliedTotal()
}
