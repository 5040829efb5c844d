package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// SalesOrderState represents the state of a sales order.
// Canonical names are lower case; comparisons are case-insensitive.
type SalesOrderState string

const (
	SalesOrderStatePending   SalesOrderState = "pending"
	SalesOrderStateAccepted  SalesOrderState = "accepted"
	SalesOrderStateCompleted SalesOrderState = "completed"
	SalesOrderStateCancelled SalesOrderState = "cancelled"
)

// ParseSalesOrderState normalizes a state name to its canonical form
func ParseSalesOrderState(s string) (SalesOrderState, error) {
	state := SalesOrderState(strings.ToLower(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", shared.NewDomainError("INVALID_STATE", "Unknown sales order state: "+s)
	}
	return state, nil
}

// String returns the string representation of the state
func (s SalesOrderState) String() string {
	return string(s)
}

// IsValid checks if the state is a valid SalesOrderState
func (s SalesOrderState) IsValid() bool {
	switch s {
	case SalesOrderStatePending, SalesOrderStateAccepted, SalesOrderStateCompleted, SalesOrderStateCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s SalesOrderState) IsTerminal() bool {
	return s == SalesOrderStateCompleted || s == SalesOrderStateCancelled
}

// AllowedTargets returns the states reachable from s
func (s SalesOrderState) AllowedTargets() []SalesOrderState {
	switch s {
	case SalesOrderStatePending:
		return []SalesOrderState{SalesOrderStateAccepted, SalesOrderStateCancelled}
	case SalesOrderStateAccepted:
		return []SalesOrderState{SalesOrderStateCompleted, SalesOrderStateCancelled}
	}
	return nil
}

// CanTransitionTo checks if the state can transition to the target state
func (s SalesOrderState) CanTransitionTo(target SalesOrderState) bool {
	for _, allowed := range s.AllowedTargets() {
		if allowed == target {
			return true
		}
	}
	return false
}

func salesOrderTransitionError(current, requested SalesOrderState) error {
	targets := current.AllowedTargets()
	allowed := make([]string, len(targets))
	for i, t := range targets {
		allowed[i] = t.String()
	}
	return shared.NewInvalidTransitionError(current.String(), requested.String(), allowed)
}

// SalesOrder represents a customer order before it becomes a sale.
// It is the aggregate root for the order lifecycle; lines are owned
// exclusively and go away with the order.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName string            `gorm:"type:varchar(200);not null"`
	State        SalesOrderState   `gorm:"type:varchar(20);not null;default:'pending'"`
	Lines        OrderLines        `gorm:"type:jsonb"`
	Subtotal     valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	OrderDate    time.Time         `gorm:"not null"`
	AcceptedAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order in pending state
func NewSalesOrder(orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		State:             SalesOrderStatePending,
		Lines:             make(OrderLines, 0),
		Subtotal:          valueobject.Zero,
		OrderDate:         time.Now(),
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a new line to the order. Lines may only change while the
// order is pending.
func (o *SalesOrder) AddLine(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if err := o.ensureModifiable(); err != nil {
		return nil, err
	}

	for _, line := range o.Lines {
		if line.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	line, err := NewOrderLine(productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.recalculateSubtotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return line, nil
}

// UpdateLineQuantity updates the quantity of an existing line
func (o *SalesOrder) UpdateLineQuantity(lineID uuid.UUID, quantity int64) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}

	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			if err := o.Lines[i].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateSubtotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// RemoveLine removes a line from the order
func (o *SalesOrder) RemoveLine(lineID uuid.UUID) error {
	if err := o.ensureModifiable(); err != nil {
		return err
	}

	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			o.recalculateSubtotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Order line not found")
}

// Accept transitions the order from pending to accepted
func (o *SalesOrder) Accept() error {
	if err := o.transitionTo(SalesOrderStateAccepted); err != nil {
		return err
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot accept an order without lines")
	}
	now := time.Now()
	o.AcceptedAt = &now
	o.applyState(SalesOrderStateAccepted)
	return nil
}

// Complete transitions the order from accepted to completed
func (o *SalesOrder) Complete() error {
	if err := o.transitionTo(SalesOrderStateCompleted); err != nil {
		return err
	}
	now := time.Now()
	o.CompletedAt = &now
	o.applyState(SalesOrderStateCompleted)
	return nil
}

// Cancel transitions the order to cancelled, recording the reason
func (o *SalesOrder) Cancel(reason string) error {
	if err := o.transitionTo(SalesOrderStateCancelled); err != nil {
		return err
	}
	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason
	o.applyState(SalesOrderStateCancelled)
	return nil
}

// IsAccepted returns true if the order is in accepted state
func (o *SalesOrder) IsAccepted() bool {
	return o.State == SalesOrderStateAccepted
}

// IsCancelled returns true if the order is cancelled
func (o *SalesOrder) IsCancelled() bool {
	return o.State == SalesOrderStateCancelled
}

func (o *SalesOrder) transitionTo(target SalesOrderState) error {
	if !o.State.CanTransitionTo(target) {
		return salesOrderTransitionError(o.State, target)
	}
	return nil
}

func (o *SalesOrder) applyState(target SalesOrderState) {
	old := o.State
	o.State = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewSalesOrderStateChangedEvent(o, old, target))
}

func (o *SalesOrder) ensureModifiable() error {
	if o.State != SalesOrderStatePending {
		return shared.NewDomainError("INVALID_STATE", "Order lines may only change while the order is pending")
	}
	return nil
}

func (o *SalesOrder) recalculateSubtotal() {
	o.Subtotal = o.Lines.Subtotal()
}
