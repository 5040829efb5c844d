package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/finance"
	"github.com/lupon/backend/internal/domain/shared"
)

// GormCollectionRepository implements CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a collection by its ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Collection, error) {
	var collection finance.Collection
	if err := session(ctx, r.db).First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &collection, nil
}

// FindAll finds all collections matching the filter
func (r *GormCollectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Collection, error) {
	var collections []finance.Collection
	query := r.applyConditions(session(ctx, r.db).Model(&finance.Collection{}), filter)
	query = applyListing(query, filter, "collection_date DESC")

	if err := query.Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// FindByCustomer finds collections for a customer
func (r *GormCollectionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.Collection, error) {
	return r.FindAll(ctx, filter.WithFilter("customer_id", customerID))
}

// Save creates or updates a collection
func (r *GormCollectionRepository) Save(ctx context.Context, collection *finance.Collection) error {
	return session(ctx, r.db).Save(collection).Error
}

// SaveWithLock updates a collection only if the stored version matches
func (r *GormCollectionRepository) SaveWithLock(ctx context.Context, collection *finance.Collection, expectedVersion int) error {
	result := session(ctx, r.db).Model(&finance.Collection{}).
		Where("id = ? AND version = ?", collection.ID, expectedVersion).
		Select("*").Updates(collection)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts collections matching the filter
func (r *GormCollectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(session(ctx, r.db).Model(&finance.Collection{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCollectionRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("collection_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	return query
}

var _ finance.CollectionRepository = (*GormCollectionRepository)(nil)
