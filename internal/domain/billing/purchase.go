package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// PurchaseState represents the receiving state of a purchase.
// Canonical names are lower case; comparisons are case-insensitive.
type PurchaseState string

const (
	PurchaseStatePending   PurchaseState = "pending"
	PurchaseStateReceived  PurchaseState = "received"
	PurchaseStateCancelled PurchaseState = "cancelled"
)

// ParsePurchaseState normalizes a state name to its canonical form
func ParsePurchaseState(s string) (PurchaseState, error) {
	state := PurchaseState(strings.ToLower(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", shared.NewDomainError("INVALID_STATE", "Unknown purchase state: "+s)
	}
	return state, nil
}

// String returns the string representation of the state
func (s PurchaseState) String() string {
	return string(s)
}

// IsValid checks if the state is a valid PurchaseState
func (s PurchaseState) IsValid() bool {
	switch s {
	case PurchaseStatePending, PurchaseStateReceived, PurchaseStateCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s PurchaseState) IsTerminal() bool {
	return s == PurchaseStateReceived || s == PurchaseStateCancelled
}

// AllowedTargets returns the states reachable from s
func (s PurchaseState) AllowedTargets() []PurchaseState {
	if s == PurchaseStatePending {
		return []PurchaseState{PurchaseStateReceived, PurchaseStateCancelled}
	}
	return nil
}

// CanTransitionTo checks if the state can transition to the target state
func (s PurchaseState) CanTransitionTo(target PurchaseState) bool {
	for _, allowed := range s.AllowedTargets() {
		if allowed == target {
			return true
		}
	}
	return false
}

func purchaseTransitionError(current, requested PurchaseState) error {
	targets := current.AllowedTargets()
	allowed := make([]string, len(targets))
	for i, t := range targets {
		allowed[i] = t.String()
	}
	return shared.NewInvalidTransitionError(current.String(), requested.String(), allowed)
}

// PaymentState is the settlement axis of a purchase, always derived
// from the pending balance against the total.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStatePartial   PaymentState = "partial"
	PaymentStatePaid      PaymentState = "paid"
	PaymentStateCancelled PaymentState = "cancelled"
)

// IsValid checks if the state is a valid PaymentState
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStatePending, PaymentStatePartial, PaymentStatePaid, PaymentStateCancelled:
		return true
	}
	return false
}

// Purchase represents a commercial purchase document, the buy-side
// mirror of Sale. The payment state is recomputed from stored facts
// after every mutation and never accepted from outside.
type Purchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SupplierName   string    `gorm:"type:varchar(200);not null"`
	// weak reference to the validated purchase order this purchase fulfils
	PurchaseOrderID *uuid.UUID `gorm:"type:uuid;index"`

	Lines          DocumentLines     `gorm:"type:jsonb"`
	Subtotal       valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Extra          valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Discount       valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Total          valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	PendingBalance valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`

	PurchaseState PurchaseState `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentState  PaymentState  `gorm:"type:varchar(20);not null;default:'pending'"`

	PurchaseDate time.Time `gorm:"not null"`
	DueDate      time.Time `gorm:"not null"`
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase. At least one line is required;
// the pending balance starts at the full total.
func NewPurchase(
	purchaseNumber string,
	supplierID uuid.UUID,
	supplierName string,
	lines []DocumentLine,
	extra, discount valueobject.Money,
	dueDate time.Time,
) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Purchase requires at least one line")
	}
	if extra.IsNegative() {
		return nil, shared.NewDomainError("INVALID_EXTRA", "Extra cost cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	owned := make(DocumentLines, len(lines))
	copy(owned, lines)

	subtotal := owned.Subtotal()
	total := subtotal.Add(extra).Sub(discount)
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Discount cannot exceed subtotal plus extra cost")
	}

	purchase := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Lines:             owned,
		Subtotal:          subtotal,
		Extra:             extra,
		Discount:          discount,
		Total:             total,
		PendingBalance:    total,
		PurchaseState:     PurchaseStatePending,
		PaymentState:      PaymentStatePending,
		PurchaseDate:      time.Now(),
		DueDate:           dueDate,
	}
	purchase.recalculatePaymentState()

	purchase.AddDomainEvent(NewPurchaseCreatedEvent(purchase))

	return purchase, nil
}

// LinkPurchaseOrder records the originating purchase order
func (p *Purchase) LinkPurchaseOrder(orderID uuid.UUID) {
	p.PurchaseOrderID = &orderID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Receive marks the purchase as received
func (p *Purchase) Receive() error {
	if !p.PurchaseState.CanTransitionTo(PurchaseStateReceived) {
		return purchaseTransitionError(p.PurchaseState, PurchaseStateReceived)
	}
	now := time.Now()
	p.PurchaseState = PurchaseStateReceived
	p.ReceivedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseStateChangedEvent(p, PurchaseStatePending, PurchaseStateReceived))

	return nil
}

// ApplyPayment reduces the pending balance by an applied amount and
// re-derives the payment state
func (p *Purchase) ApplyPayment(amount valueobject.Money) error {
	if p.IsCancelled() {
		return shared.NewDomainError("PURCHASE_CANCELLED", "Cannot apply a payment to a cancelled purchase")
	}
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if amount.GreaterThan(p.PendingBalance) {
		return shared.NewDomainError("AMOUNT_EXCEEDS_PENDING", "Applied amount exceeds the purchase's pending balance")
	}

	p.PendingBalance = p.PendingBalance.Sub(amount)
	p.recalculatePaymentState()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Cancel cancels the purchase: the pending balance is zeroed and the
// payment state re-derived. The caller reverses the supplier's running
// balance by the full total within the same unit of work.
func (p *Purchase) Cancel(reason string) error {
	if !p.PurchaseState.CanTransitionTo(PurchaseStateCancelled) {
		return purchaseTransitionError(p.PurchaseState, PurchaseStateCancelled)
	}

	now := time.Now()
	old := p.PurchaseState
	p.PurchaseState = PurchaseStateCancelled
	p.PendingBalance = valueobject.Zero
	p.CancelledAt = &now
	p.CancelReason = reason
	p.recalculatePaymentState()
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseStateChangedEvent(p, old, PurchaseStateCancelled))

	return nil
}

// IsCancelled returns true if the purchase is cancelled
func (p *Purchase) IsCancelled() bool {
	return p.PurchaseState == PurchaseStateCancelled
}

// RecalculatePaymentState derives the payment state from the current
// stored facts. Pure and idempotent.
func RecalculatePaymentState(purchaseState PurchaseState, pending, total valueobject.Money) PaymentState {
	if purchaseState == PurchaseStateCancelled {
		return PaymentStateCancelled
	}
	if pending.IsZero() {
		return PaymentStatePaid
	}
	if pending.LessThan(total) {
		return PaymentStatePartial
	}
	return PaymentStatePending
}

func (p *Purchase) recalculatePaymentState() {
	p.PaymentState = RecalculatePaymentState(p.PurchaseState, p.PendingBalance, p.Total)
}
