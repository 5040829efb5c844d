package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// CommercialState is the overall state of a sale. It is always derived
// from the delivery state and the pending balance; callers never set it.
type CommercialState string

const (
	CommercialStateInProgress CommercialState = "in_progress"
	CommercialStateCompleted  CommercialState = "completed"
	CommercialStateCancelled  CommercialState = "cancelled"
)

// IsValid checks if the state is a valid CommercialState
func (s CommercialState) IsValid() bool {
	switch s {
	case CommercialStateInProgress, CommercialStateCompleted, CommercialStateCancelled:
		return true
	}
	return false
}

// DeliveryState represents the delivery axis of a sale.
// Canonical names are lower case; comparisons are case-insensitive.
type DeliveryState string

const (
	DeliveryStatePending     DeliveryState = "pending"
	DeliveryStateRescheduled DeliveryState = "rescheduled"
	DeliveryStateDelivered   DeliveryState = "delivered"
	DeliveryStateCancelled   DeliveryState = "cancelled"
)

// ParseDeliveryState normalizes a state name to its canonical form
func ParseDeliveryState(s string) (DeliveryState, error) {
	state := DeliveryState(strings.ToLower(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", shared.NewDomainError("INVALID_STATE", "Unknown delivery state: "+s)
	}
	return state, nil
}

// String returns the string representation of the state
func (s DeliveryState) String() string {
	return string(s)
}

// IsValid checks if the state is a valid DeliveryState
func (s DeliveryState) IsValid() bool {
	switch s {
	case DeliveryStatePending, DeliveryStateRescheduled, DeliveryStateDelivered, DeliveryStateCancelled:
		return true
	}
	return false
}

// AllowedTargets returns the directly requestable transitions from s.
// Cancellation is never a requestable target; it only happens as a side
// effect of cancelling the sale.
func (s DeliveryState) AllowedTargets() []DeliveryState {
	switch s {
	case DeliveryStatePending:
		return []DeliveryState{DeliveryStateDelivered, DeliveryStateRescheduled}
	case DeliveryStateRescheduled:
		return []DeliveryState{DeliveryStateDelivered}
	}
	return nil
}

// CanTransitionTo checks if the state can transition to the target state
func (s DeliveryState) CanTransitionTo(target DeliveryState) bool {
	for _, allowed := range s.AllowedTargets() {
		if allowed == target {
			return true
		}
	}
	return false
}

func deliveryTransitionError(current, requested DeliveryState) error {
	targets := current.AllowedTargets()
	allowed := make([]string, len(targets))
	for i, t := range targets {
		allowed[i] = t.String()
	}
	return shared.NewInvalidTransitionError(current.String(), requested.String(), allowed)
}

// CollectionState is the collection axis of a sale, always derived from
// the pending balance against the total.
type CollectionState string

const (
	CollectionStatePending   CollectionState = "pending"
	CollectionStatePartial   CollectionState = "partial"
	CollectionStateCollected CollectionState = "collected"
	CollectionStateCancelled CollectionState = "cancelled"
)

// IsValid checks if the state is a valid CollectionState
func (s CollectionState) IsValid() bool {
	switch s {
	case CollectionStatePending, CollectionStatePartial, CollectionStateCollected, CollectionStateCancelled:
		return true
	}
	return false
}

// SalePaymentTerm represents how a particular sale is to be settled
type SalePaymentTerm string

const (
	SalePaymentTermCash           SalePaymentTerm = "cash"
	SalePaymentTermRunningAccount SalePaymentTerm = "running_account"
	SalePaymentTermCashPending    SalePaymentTerm = "cash_pending"
)

// IsValid checks if the payment term is valid
func (t SalePaymentTerm) IsValid() bool {
	switch t {
	case SalePaymentTermCash, SalePaymentTermRunningAccount, SalePaymentTermCashPending:
		return true
	}
	return false
}

// Sale represents a commercial sale document. It tracks three state
// axes: the delivery state is a real machine, the commercial and
// collection states are recomputed from stored facts after every
// mutation and are never accepted from outside.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber   string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerName string     `gorm:"type:varchar(200);not null"`
	SalesOrderID *uuid.UUID `gorm:"type:uuid;index"`
	// weak back-reference to the purchase order that will fulfil this sale
	PurchaseOrderID *uuid.UUID `gorm:"type:uuid;index"`

	Lines          DocumentLines     `gorm:"type:jsonb"`
	Subtotal       valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	DeliveryCost   valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Discount       valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Total          valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	PendingBalance valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`

	CommercialState CommercialState `gorm:"type:varchar(20);not null;default:'in_progress'"`
	DeliveryState   DeliveryState   `gorm:"type:varchar(20);not null;default:'pending'"`
	CollectionState CollectionState `gorm:"type:varchar(20);not null;default:'pending'"`

	PaymentTerm     SalePaymentTerm `gorm:"type:varchar(20);not null;default:'cash'"`
	DeliveryAddress string          `gorm:"type:varchar(300)"`
	SaleDate        time.Time       `gorm:"not null"`
	DueDate         time.Time       `gorm:"not null"`
	RescheduledFor  *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale. The caller is responsible for validating
// any linked sales order before construction; the pending balance
// starts at the full total.
func NewSale(
	saleNumber string,
	customerID uuid.UUID,
	customerName string,
	lines []DocumentLine,
	deliveryCost, discount valueobject.Money,
	term SalePaymentTerm,
	dueDate time.Time,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "Sale requires at least one line")
	}
	if deliveryCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DELIVERY_COST", "Delivery cost cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if !term.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TERM", "Unknown sale payment term")
	}

	owned := make(DocumentLines, len(lines))
	copy(owned, lines)

	subtotal := owned.Subtotal()
	total := subtotal.Add(deliveryCost).Sub(discount)
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Discount cannot exceed subtotal plus delivery cost")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Lines:             owned,
		Subtotal:          subtotal,
		DeliveryCost:      deliveryCost,
		Discount:          discount,
		Total:             total,
		PendingBalance:    total,
		CommercialState:   CommercialStateInProgress,
		DeliveryState:     DeliveryStatePending,
		CollectionState:   CollectionStatePending,
		PaymentTerm:       term,
		SaleDate:          time.Now(),
		DueDate:           dueDate,
	}
	sale.recalculateStates()

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// LinkSalesOrder records the originating sales order
func (s *Sale) LinkSalesOrder(orderID uuid.UUID) {
	s.SalesOrderID = &orderID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// AssignPurchaseOrder sets the weak back-reference to a purchase order
func (s *Sale) AssignPurchaseOrder(orderID uuid.UUID) error {
	if s.IsCancelled() {
		return shared.NewDomainError("SALE_CANCELLED", "Cannot assign a cancelled sale to a purchase order")
	}
	if s.PurchaseOrderID != nil && *s.PurchaseOrderID != orderID {
		return shared.NewDomainError("ALREADY_ASSIGNED", "Sale already belongs to a different purchase order")
	}
	if s.PurchaseOrderID != nil {
		return nil
	}
	s.PurchaseOrderID = &orderID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// DetachPurchaseOrder clears the back-reference to a purchase order
func (s *Sale) DetachPurchaseOrder() {
	if s.PurchaseOrderID == nil {
		return
	}
	s.PurchaseOrderID = nil
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetDeliveryAddress sets the delivery address
func (s *Sale) SetDeliveryAddress(address string) {
	s.DeliveryAddress = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deliver marks the sale as delivered
func (s *Sale) Deliver() error {
	if s.IsCancelled() {
		return shared.NewDomainError("SALE_CANCELLED", "Cannot deliver a cancelled sale")
	}
	if !s.DeliveryState.CanTransitionTo(DeliveryStateDelivered) {
		return deliveryTransitionError(s.DeliveryState, DeliveryStateDelivered)
	}
	now := time.Now()
	s.DeliveryState = DeliveryStateDelivered
	s.DeliveredAt = &now
	s.recalculateStates()
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleDeliveredEvent(s))

	return nil
}

// Reschedule moves the delivery to a new date
func (s *Sale) Reschedule(newDate time.Time) error {
	if s.IsCancelled() {
		return shared.NewDomainError("SALE_CANCELLED", "Cannot reschedule a cancelled sale")
	}
	if !s.DeliveryState.CanTransitionTo(DeliveryStateRescheduled) {
		return deliveryTransitionError(s.DeliveryState, DeliveryStateRescheduled)
	}
	s.DeliveryState = DeliveryStateRescheduled
	s.RescheduledFor = &newDate
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// ApplyCollection reduces the pending balance by an applied amount and
// re-derives the collection and commercial states
func (s *Sale) ApplyCollection(amount valueobject.Money) error {
	if s.IsCancelled() {
		return shared.NewDomainError("SALE_CANCELLED", "Cannot apply a collection to a cancelled sale")
	}
	if amount.IsZero() || amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if amount.GreaterThan(s.PendingBalance) {
		return shared.NewDomainError("AMOUNT_EXCEEDS_PENDING", "Applied amount exceeds the sale's pending balance")
	}

	s.PendingBalance = s.PendingBalance.Sub(amount)
	s.recalculateStates()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Cancel cancels the sale: the pending balance is zeroed and both the
// commercial and delivery states become cancelled. The caller reverses
// the customer's running balance by the full total within the same unit
// of work.
func (s *Sale) Cancel(reason string) error {
	if s.IsCancelled() {
		return shared.NewDomainError("ALREADY_CANCELLED", "Sale is already cancelled")
	}

	now := time.Now()
	s.PendingBalance = valueobject.Zero
	s.CommercialState = CommercialStateCancelled
	s.DeliveryState = DeliveryStateCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.recalculateStates()
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCancelledEvent(s))

	return nil
}

// IsCancelled returns true if the sale is cancelled
func (s *Sale) IsCancelled() bool {
	return s.CommercialState == CommercialStateCancelled
}

// IsDelivered returns true if the sale has been delivered
func (s *Sale) IsDelivered() bool {
	return s.DeliveryState == DeliveryStateDelivered
}

// RecalculateCommercialState derives the commercial state from the
// current stored facts. Pure and idempotent.
func RecalculateCommercialState(cancelled bool, delivery DeliveryState, pending valueobject.Money) CommercialState {
	if cancelled {
		return CommercialStateCancelled
	}
	if delivery == DeliveryStateDelivered && pending.IsZero() {
		return CommercialStateCompleted
	}
	return CommercialStateInProgress
}

// RecalculateCollectionState derives the collection state from the
// current stored facts. Pure and idempotent.
func RecalculateCollectionState(commercial CommercialState, pending, total valueobject.Money) CollectionState {
	if commercial == CommercialStateCancelled {
		return CollectionStateCancelled
	}
	if pending.IsZero() {
		return CollectionStateCollected
	}
	if pending.LessThan(total) {
		return CollectionStatePartial
	}
	return CollectionStatePending
}

func (s *Sale) recalculateStates() {
	s.CommercialState = RecalculateCommercialState(s.CommercialState == CommercialStateCancelled, s.DeliveryState, s.PendingBalance)
	s.CollectionState = RecalculateCollectionState(s.CommercialState, s.PendingBalance, s.Total)
}
