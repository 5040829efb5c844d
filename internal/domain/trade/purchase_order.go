package trade

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// PurchaseOrderState represents the state of a purchase order.
// Canonical names are lower case; comparisons are case-insensitive.
type PurchaseOrderState string

const (
	PurchaseOrderStatePending   PurchaseOrderState = "pending"
	PurchaseOrderStateValidated PurchaseOrderState = "validated"
	PurchaseOrderStateReceived  PurchaseOrderState = "received"
	PurchaseOrderStateCancelled PurchaseOrderState = "cancelled"
)

// ParsePurchaseOrderState normalizes a state name to its canonical form
func ParsePurchaseOrderState(s string) (PurchaseOrderState, error) {
	state := PurchaseOrderState(strings.ToLower(strings.TrimSpace(s)))
	if !state.IsValid() {
		return "", shared.NewDomainError("INVALID_STATE", "Unknown purchase order state: "+s)
	}
	return state, nil
}

// String returns the string representation of the state
func (s PurchaseOrderState) String() string {
	return string(s)
}

// IsValid checks if the state is a valid PurchaseOrderState
func (s PurchaseOrderState) IsValid() bool {
	switch s {
	case PurchaseOrderStatePending, PurchaseOrderStateValidated, PurchaseOrderStateReceived, PurchaseOrderStateCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s PurchaseOrderState) IsTerminal() bool {
	return s == PurchaseOrderStateReceived || s == PurchaseOrderStateCancelled
}

// AllowedTargets returns the states reachable from s
func (s PurchaseOrderState) AllowedTargets() []PurchaseOrderState {
	switch s {
	case PurchaseOrderStatePending:
		return []PurchaseOrderState{PurchaseOrderStateValidated, PurchaseOrderStateCancelled}
	case PurchaseOrderStateValidated:
		return []PurchaseOrderState{PurchaseOrderStateReceived, PurchaseOrderStateCancelled}
	}
	return nil
}

// CanTransitionTo checks if the state can transition to the target state
func (s PurchaseOrderState) CanTransitionTo(target PurchaseOrderState) bool {
	for _, allowed := range s.AllowedTargets() {
		if allowed == target {
			return true
		}
	}
	return false
}

func purchaseOrderTransitionError(current, requested PurchaseOrderState) error {
	targets := current.AllowedTargets()
	allowed := make([]string, len(targets))
	for i, t := range targets {
		allowed[i] = t.String()
	}
	return shared.NewInvalidTransitionError(current.String(), requested.String(), allowed)
}

// SaleRefs is the forward collection of linked sale IDs, stored as JSONB
type SaleRefs []uuid.UUID

// Value implements driver.Valuer
func (r SaleRefs) Value() (driver.Value, error) {
	if r == nil {
		r = SaleRefs{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *SaleRefs) Scan(value any) error {
	if value == nil {
		*r = SaleRefs{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan sale refs from database value")
}

// Contains reports whether the given sale is linked
func (r SaleRefs) Contains(saleID uuid.UUID) bool {
	for _, id := range r {
		if id == saleID {
			return true
		}
	}
	return false
}

// PurchaseOrder represents an order placed with a supplier, optionally
// built from a group of sales it will fulfil. It owns its lines and the
// forward collection of linked sale IDs; each linked sale keeps only a
// weak back-reference.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	SupplierName string             `gorm:"type:varchar(200);not null"`
	State        PurchaseOrderState `gorm:"type:varchar(20);not null;default:'pending'"`
	Lines        OrderLines         `gorm:"type:jsonb"`
	Subtotal     valueobject.Money  `gorm:"type:decimal(18,2);not null;default:0"`
	LinkedSales  SaleRefs           `gorm:"type:jsonb"`
	OrderDate    time.Time          `gorm:"not null"`
	ValidatedAt  *time.Time
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
	CancelReason string `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in pending state
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		State:             PurchaseOrderStatePending,
		Lines:             make(OrderLines, 0),
		Subtotal:          valueobject.Zero,
		LinkedSales:       make(SaleRefs, 0),
		OrderDate:         time.Now(),
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddLine adds a new line to the order. Lines may only change while the
// order is pending.
func (o *PurchaseOrder) AddLine(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*OrderLine, error) {
	if err := o.ensureModifiable(); err != nil {
		return nil, err
	}

	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			// same product from another sale: merge quantities
			o.Lines[i].Quantity += quantity
			o.Lines[i].Total = valueobject.LineTotal(o.Lines[i].Quantity, o.Lines[i].UnitPrice)
			o.recalculateSubtotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return &o.Lines[i], nil
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
func (o *PurchaseOrder) UpdateLineQuantity(lineID uuid.UUID, quantity int64) error {
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
func (o *PurchaseOrder) RemoveLine(lineID uuid.UUID) error {
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

// AssignSale links a sale to this order. Assignment is only accepted
// while the order is pending or validated. Linking a sale that is
// already linked is a no-op.
func (o *PurchaseOrder) AssignSale(saleID uuid.UUID) error {
	if o.State != PurchaseOrderStatePending && o.State != PurchaseOrderStateValidated {
		return shared.NewDomainError("INVALID_STATE", "Sales can only be assigned while the purchase order is pending or validated")
	}
	if saleID == uuid.Nil {
		return shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if o.LinkedSales.Contains(saleID) {
		return nil
	}

	o.LinkedSales = append(o.LinkedSales, saleID)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// DetachSale unlinks a sale from this order. Unknown IDs are ignored.
func (o *PurchaseOrder) DetachSale(saleID uuid.UUID) {
	for i, id := range o.LinkedSales {
		if id == saleID {
			o.LinkedSales = append(o.LinkedSales[:i], o.LinkedSales[i+1:]...)
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return
		}
	}
}

// DetachAllSales unlinks every sale and returns the IDs that were linked
func (o *PurchaseOrder) DetachAllSales() []uuid.UUID {
	detached := make([]uuid.UUID, len(o.LinkedSales))
	copy(detached, o.LinkedSales)
	o.LinkedSales = make(SaleRefs, 0)
	if len(detached) > 0 {
		o.UpdatedAt = time.Now()
		o.IncrementVersion()
	}
	return detached
}

// Validate transitions the order from pending to validated
func (o *PurchaseOrder) Validate() error {
	if !o.State.CanTransitionTo(PurchaseOrderStateValidated) {
		return purchaseOrderTransitionError(o.State, PurchaseOrderStateValidated)
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot validate an order without lines")
	}
	now := time.Now()
	o.ValidatedAt = &now
	o.applyState(PurchaseOrderStateValidated)
	return nil
}

// Receive transitions the order from validated to received
func (o *PurchaseOrder) Receive() error {
	if !o.State.CanTransitionTo(PurchaseOrderStateReceived) {
		return purchaseOrderTransitionError(o.State, PurchaseOrderStateReceived)
	}
	now := time.Now()
	o.ReceivedAt = &now
	o.applyState(PurchaseOrderStateReceived)
	return nil
}

// Cancel transitions the order to cancelled, recording the reason.
// Linked sales must be detached by the caller within the same unit of
// work.
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.State.CanTransitionTo(PurchaseOrderStateCancelled) {
		return purchaseOrderTransitionError(o.State, PurchaseOrderStateCancelled)
	}
	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason
	o.applyState(PurchaseOrderStateCancelled)
	return nil
}

// IsValidated returns true if the order is in validated state
func (o *PurchaseOrder) IsValidated() bool {
	return o.State == PurchaseOrderStateValidated
}

// IsCancelled returns true if the order is cancelled
func (o *PurchaseOrder) IsCancelled() bool {
	return o.State == PurchaseOrderStateCancelled
}

func (o *PurchaseOrder) applyState(target PurchaseOrderState) {
	old := o.State
	o.State = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewPurchaseOrderStateChangedEvent(o, old, target))
}

func (o *PurchaseOrder) ensureModifiable() error {
	if o.State != PurchaseOrderStatePending {
		return shared.NewDomainError("INVALID_STATE", "Order lines may only change while the order is pending")
	}
	return nil
}

func (o *PurchaseOrder) recalculateSubtotal() {
	o.Subtotal = o.Lines.Subtotal()
}
