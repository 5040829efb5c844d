package finance

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// PaymentLine links part of a payment to one purchase
type PaymentLine struct {
	ID            uuid.UUID         `json:"id"`
	PurchaseID    uuid.UUID         `json:"purchase_id"`
	AppliedAmount valueobject.Money `json:"applied_amount"`
	CreatedAt     time.Time         `json:"created_at"`
}

// PaymentLines is the owned collection of lines, stored as JSONB
type PaymentLines []PaymentLine

// Value implements driver.Valuer
func (l PaymentLines) Value() (driver.Value, error) {
	if l == nil {
		l = PaymentLines{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *PaymentLines) Scan(value any) error {
	if value == nil {
		*l = PaymentLines{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan payment lines from database value")
}

// AppliedTotal returns the sum of applied amounts
func (l PaymentLines) AppliedTotal() valueobject.Money {
	total := valueobject.Zero
	for _, line := range l {
		total = total.Add(line.AppliedAmount)
	}
	return total
}

// Payment represents money paid to a supplier, applied in parts against
// that supplier's open purchases. The supplier-side mirror of
// Collection, with the same additive-only rule.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentNumber    string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	SupplierName     string            `gorm:"type:varchar(200);not null"`
	Amount           valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	AvailableBalance valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Lines            PaymentLines      `gorm:"type:jsonb"`
	PaymentDate      time.Time         `gorm:"not null"`
	Notes            string            `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment. A zero amount is permitted so a
// payment can be opened and funded by later amendments.
func NewPayment(paymentNumber string, supplierID uuid.UUID, supplierName string, amount valueobject.Money) (*Payment, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentNumber:     paymentNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Amount:            amount,
		AvailableBalance:  amount,
		Lines:             make(PaymentLines, 0),
		PaymentDate:       time.Now(),
	}

	payment.AddDomainEvent(NewPaymentCreatedEvent(payment))

	return payment, nil
}

// AddLine applies part of the payment to a purchase. The applied amount
// must be positive and must not exceed the stored available balance.
func (p *Payment) AddLine(purchaseID uuid.UUID, applied valueobject.Money) (*PaymentLine, error) {
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}
	if applied.IsZero() || applied.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if applied.GreaterThan(p.AvailableBalance) {
		return nil, shared.NewDomainError("INSUFFICIENT_BALANCE", "Applied amount exceeds the payment's available balance")
	}

	line := PaymentLine{
		ID:            uuid.New(),
		PurchaseID:    purchaseID,
		AppliedAmount: applied,
		CreatedAt:     time.Now(),
	}
	p.Lines = append(p.Lines, line)
	p.AvailableBalance = p.AvailableBalance.Sub(applied)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentAppliedEvent(p, &line))

	return &line, nil
}

// IncreaseAmount amends the payment with additional funds, raising both
// the amount and the available balance
func (p *Payment) IncreaseAmount(delta valueobject.Money) error {
	if delta.IsZero() || delta.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amendment amount must be positive")
	}
	p.Amount = p.Amount.Add(delta)
	p.AvailableBalance = p.AvailableBalance.Add(delta)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AppliedTotal returns the total amount applied across all lines
func (p *Payment) AppliedTotal() valueobject.Money {
	return p.Lines.AppliedTotal()
}
