package partner

import (
	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeCounterparty = "Counterparty"

// Event type constants
const (
	EventTypeCounterpartyCreated = "CounterpartyCreated"
	EventTypeBalanceChanged      = "CounterpartyBalanceChanged"
)

// CounterpartyCreatedEvent is published when a counterparty is created
type CounterpartyCreatedEvent struct {
	shared.BaseDomainEvent
	CounterpartyID uuid.UUID        `json:"counterparty_id"`
	Name           string           `json:"name"`
	PartnerType    CounterpartyType `json:"partner_type"`
	PaymentTerm    PaymentTerm      `json:"payment_term"`
}

// NewCounterpartyCreatedEvent creates a new CounterpartyCreatedEvent
func NewCounterpartyCreatedEvent(cp *Counterparty) *CounterpartyCreatedEvent {
	return &CounterpartyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCounterpartyCreated, AggregateTypeCounterparty, cp.ID),
		CounterpartyID:  cp.ID,
		Name:            cp.Name,
		PartnerType:     cp.Type,
		PaymentTerm:     cp.PaymentTerm,
	}
}

// BalanceChangedEvent is published for every running-balance change
type BalanceChangedEvent struct {
	shared.BaseDomainEvent
	CounterpartyID uuid.UUID         `json:"counterparty_id"`
	EntryType      BalanceEntryType  `json:"entry_type"`
	Amount         valueobject.Money `json:"amount"`
	BalanceAfter   valueobject.Money `json:"balance_after"`
}

// NewBalanceChangedEvent creates a new BalanceChangedEvent
func NewBalanceChangedEvent(cp *Counterparty, entry *BalanceEntry) *BalanceChangedEvent {
	return &BalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBalanceChanged, AggregateTypeCounterparty, cp.ID),
		CounterpartyID:  cp.ID,
		EntryType:       entry.EntryType,
		Amount:          entry.Amount,
		BalanceAfter:    entry.BalanceAfter,
	}
}
