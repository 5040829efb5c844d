package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
)

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// FindByID finds a collection by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)

	// FindAll finds all collections matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Collection, error)

	// FindByCustomer finds collections for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Collection, error)

	// Save creates or updates a collection
	Save(ctx context.Context, collection *Collection) error

	// SaveWithLock updates a collection only if the stored version matches
	SaveWithLock(ctx context.Context, collection *Collection, expectedVersion int) error

	// Count counts collections matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll finds all payments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// FindBySupplier finds payments for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error

	// SaveWithLock updates a payment only if the stored version matches
	SaveWithLock(ctx context.Context, payment *Payment, expectedVersion int) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CreditNoteRepository defines the interface for credit note persistence.
// Credit notes have no delete operation.
type CreditNoteRepository interface {
	// FindByID finds a credit note by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CreditNote, error)

	// FindAll finds all credit notes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CreditNote, error)

	// FindByCounterparty finds credit notes for a counterparty
	FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]CreditNote, error)

	// Save creates or updates a credit note
	Save(ctx context.Context, note *CreditNote) error

	// Count counts credit notes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
