package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
)

// CounterpartyRepository defines the interface for counterparty persistence
type CounterpartyRepository interface {
	// FindByID finds a counterparty by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Counterparty, error)

	// FindAll finds all counterparties matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Counterparty, error)

	// FindByType finds all counterparties of the given type
	FindByType(ctx context.Context, cpType CounterpartyType, filter shared.Filter) ([]Counterparty, error)

	// Save creates or updates a counterparty
	Save(ctx context.Context, cp *Counterparty) error

	// SaveWithLock updates a counterparty only if the stored version matches
	SaveWithLock(ctx context.Context, cp *Counterparty, expectedVersion int) error

	// Count counts counterparties matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BalanceEntryRepository defines the interface for balance entry persistence
type BalanceEntryRepository interface {
	// Save persists a balance entry. Entries are append-only.
	Save(ctx context.Context, entry *BalanceEntry) error

	// FindByCounterparty finds entries for a counterparty, newest first
	FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]BalanceEntry, error)
}
