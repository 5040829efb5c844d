package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/finance"
	"github.com/lupon/backend/internal/domain/shared"
)

// GormCreditNoteRepository implements CreditNoteRepository using GORM
type GormCreditNoteRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{db: db}
}

// FindByID finds a credit note by its ID
func (r *GormCreditNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CreditNote, error) {
	var note finance.CreditNote
	if err := session(ctx, r.db).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindAll finds all credit notes matching the filter
func (r *GormCreditNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CreditNote, error) {
	var notes []finance.CreditNote
	query := r.applyConditions(session(ctx, r.db).Model(&finance.CreditNote{}), filter)
	query = applyListing(query, filter, "note_date DESC")

	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByCounterparty finds credit notes for a counterparty
func (r *GormCreditNoteRepository) FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]finance.CreditNote, error) {
	return r.FindAll(ctx, filter.WithFilter("counterparty_id", counterpartyID))
}

// Save creates or updates a credit note
func (r *GormCreditNoteRepository) Save(ctx context.Context, note *finance.CreditNote) error {
	return session(ctx, r.db).Save(note).Error
}

// Count counts credit notes matching the filter
func (r *GormCreditNoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(session(ctx, r.db).Model(&finance.CreditNote{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCreditNoteRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("note_number LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "counterparty_id":
			query = query.Where("counterparty_id = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		}
	}
	return query
}

var _ finance.CreditNoteRepository = (*GormCreditNoteRepository)(nil)
