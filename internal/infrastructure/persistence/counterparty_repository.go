package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
)

// GormCounterpartyRepository implements CounterpartyRepository using GORM
type GormCounterpartyRepository struct {
	db *gorm.DB
}

// NewGormCounterpartyRepository creates a new GormCounterpartyRepository
func NewGormCounterpartyRepository(db *gorm.DB) *GormCounterpartyRepository {
	return &GormCounterpartyRepository{db: db}
}

// FindByID finds a counterparty by its ID
func (r *GormCounterpartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Counterparty, error) {
	var cp partner.Counterparty
	if err := session(ctx, r.db).First(&cp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// FindAll finds all counterparties matching the filter
func (r *GormCounterpartyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Counterparty, error) {
	var counterparties []partner.Counterparty
	query := r.applyConditions(session(ctx, r.db).Model(&partner.Counterparty{}), filter)
	query = applyListing(query, filter, "name ASC")

	if err := query.Find(&counterparties).Error; err != nil {
		return nil, err
	}
	return counterparties, nil
}

// FindByType finds all counterparties of the given type
func (r *GormCounterpartyRepository) FindByType(ctx context.Context, cpType partner.CounterpartyType, filter shared.Filter) ([]partner.Counterparty, error) {
	return r.FindAll(ctx, filter.WithFilter("type", cpType))
}

// Save creates or updates a counterparty
func (r *GormCounterpartyRepository) Save(ctx context.Context, cp *partner.Counterparty) error {
	return session(ctx, r.db).Save(cp).Error
}

// SaveWithLock updates a counterparty only if the stored version matches
// the expected one. A mismatch means a concurrent writer got there first.
func (r *GormCounterpartyRepository) SaveWithLock(ctx context.Context, cp *partner.Counterparty, expectedVersion int) error {
	result := session(ctx, r.db).Model(&partner.Counterparty{}).
		Where("id = ? AND version = ?", cp.ID, expectedVersion).
		Select("*").Updates(cp)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts counterparties matching the filter
func (r *GormCounterpartyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(session(ctx, r.db).Model(&partner.Counterparty{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCounterpartyRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR tax_id LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		case "payment_term":
			query = query.Where("payment_term = ?", value)
		}
	}
	return query
}

// GormBalanceEntryRepository implements BalanceEntryRepository using GORM
type GormBalanceEntryRepository struct {
	db *gorm.DB
}

// NewGormBalanceEntryRepository creates a new GormBalanceEntryRepository
func NewGormBalanceEntryRepository(db *gorm.DB) *GormBalanceEntryRepository {
	return &GormBalanceEntryRepository{db: db}
}

// Save persists a balance entry. Entries are append-only; updates are a
// programming error and surface as primary key conflicts.
func (r *GormBalanceEntryRepository) Save(ctx context.Context, entry *partner.BalanceEntry) error {
	return session(ctx, r.db).Create(entry).Error
}

// FindByCounterparty finds entries for a counterparty, newest first
func (r *GormBalanceEntryRepository) FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]partner.BalanceEntry, error) {
	var entries []partner.BalanceEntry
	query := session(ctx, r.db).Model(&partner.BalanceEntry{}).
		Where("counterparty_id = ?", counterpartyID)
	if entryType, ok := filter.Filters["entry_type"]; ok {
		query = query.Where("entry_type = ?", entryType)
	}
	query = applyListing(query, filter, "entry_date DESC")

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

var (
	_ partner.CounterpartyRepository = (*GormCounterpartyRepository)(nil)
	_ partner.BalanceEntryRepository = (*GormBalanceEntryRepository)(nil)
)
