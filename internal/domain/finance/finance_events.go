package finance

import (
	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// Aggregate type constants
const (
	AggregateTypeCollection = "Collection"
	AggregateTypePayment    = "Payment"
	AggregateTypeCreditNote = "CreditNote"
)

// Event type constants
const (
	EventTypeCollectionCreated = "CollectionCreated"
	EventTypeCollectionApplied = "CollectionApplied"
	EventTypePaymentCreated    = "PaymentCreated"
	EventTypePaymentApplied    = "PaymentApplied"
	EventTypeCreditNoteCreated = "CreditNoteCreated"
	EventTypeCreditNoteApplied = "CreditNoteApplied"
)

// CollectionCreatedEvent is published when a collection is created
type CollectionCreatedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID         `json:"collection_id"`
	CustomerID   uuid.UUID         `json:"customer_id"`
	Amount       valueobject.Money `json:"amount"`
}

// NewCollectionCreatedEvent creates a new CollectionCreatedEvent
func NewCollectionCreatedEvent(c *Collection) *CollectionCreatedEvent {
	return &CollectionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionCreated, AggregateTypeCollection, c.ID),
		CollectionID:    c.ID,
		CustomerID:      c.CustomerID,
		Amount:          c.Amount,
	}
}

// CollectionAppliedEvent is published when a collection line is applied
type CollectionAppliedEvent struct {
	shared.BaseDomainEvent
	CollectionID     uuid.UUID         `json:"collection_id"`
	SaleID           uuid.UUID         `json:"sale_id"`
	AppliedAmount    valueobject.Money `json:"applied_amount"`
	AvailableBalance valueobject.Money `json:"available_balance"`
}

// NewCollectionAppliedEvent creates a new CollectionAppliedEvent
func NewCollectionAppliedEvent(c *Collection, line *CollectionLine) *CollectionAppliedEvent {
	return &CollectionAppliedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCollectionApplied, AggregateTypeCollection, c.ID),
		CollectionID:     c.ID,
		SaleID:           line.SaleID,
		AppliedAmount:    line.AppliedAmount,
		AvailableBalance: c.AvailableBalance,
	}
}

// PaymentCreatedEvent is published when a payment is created
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID         `json:"payment_id"`
	SupplierID uuid.UUID         `json:"supplier_id"`
	Amount     valueobject.Money `json:"amount"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, p.ID),
		PaymentID:       p.ID,
		SupplierID:      p.SupplierID,
		Amount:          p.Amount,
	}
}

// PaymentAppliedEvent is published when a payment line is applied
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	PaymentID        uuid.UUID         `json:"payment_id"`
	PurchaseID       uuid.UUID         `json:"purchase_id"`
	AppliedAmount    valueobject.Money `json:"applied_amount"`
	AvailableBalance valueobject.Money `json:"available_balance"`
}

// NewPaymentAppliedEvent creates a new PaymentAppliedEvent
func NewPaymentAppliedEvent(p *Payment, line *PaymentLine) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePaymentApplied, AggregateTypePayment, p.ID),
		PaymentID:        p.ID,
		PurchaseID:       line.PurchaseID,
		AppliedAmount:    line.AppliedAmount,
		AvailableBalance: p.AvailableBalance,
	}
}

// CreditNoteCreatedEvent is published when a credit note is created
type CreditNoteCreatedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID   uuid.UUID         `json:"credit_note_id"`
	Kind           CreditNoteKind    `json:"kind"`
	CounterpartyID uuid.UUID         `json:"counterparty_id"`
	Amount         valueobject.Money `json:"amount"`
}

// NewCreditNoteCreatedEvent creates a new CreditNoteCreatedEvent
func NewCreditNoteCreatedEvent(n *CreditNote) *CreditNoteCreatedEvent {
	return &CreditNoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditNoteCreated, AggregateTypeCreditNote, n.ID),
		CreditNoteID:    n.ID,
		Kind:            n.Kind,
		CounterpartyID:  n.CounterpartyID,
		Amount:          n.Amount,
	}
}

// CreditNoteAppliedEvent is published when a credit note application is added
type CreditNoteAppliedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID  uuid.UUID         `json:"credit_note_id"`
	TargetType    TargetType        `json:"target_type"`
	TargetID      uuid.UUID         `json:"target_id"`
	AppliedAmount valueobject.Money `json:"applied_amount"`
}

// NewCreditNoteAppliedEvent creates a new CreditNoteAppliedEvent
func NewCreditNoteAppliedEvent(n *CreditNote, app *Application) *CreditNoteAppliedEvent {
	return &CreditNoteAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditNoteApplied, AggregateTypeCreditNote, n.ID),
		CreditNoteID:    n.ID,
		TargetType:      app.Target.Type,
		TargetID:        app.Target.DocumentID,
		AppliedAmount:   app.AppliedAmount,
	}
}
