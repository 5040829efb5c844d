package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/shared"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Purchase, error) {
	var purchase billing.Purchase
	if err := session(ctx, r.db).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByPurchaseNumber finds a purchase by its number
func (r *GormPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*billing.Purchase, error) {
	var purchase billing.Purchase
	if err := session(ctx, r.db).First(&purchase, "purchase_number = ?", purchaseNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Purchase, error) {
	var purchases []billing.Purchase
	query := r.applyConditions(session(ctx, r.db).Model(&billing.Purchase{}), filter)
	query = applyListing(query, filter, "purchase_date DESC")

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindBySupplier finds purchases for a supplier
func (r *GormPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]billing.Purchase, error) {
	return r.FindAll(ctx, filter.WithFilter("supplier_id", supplierID))
}

// FindOpenBySupplier finds purchases with a positive pending balance
func (r *GormPurchaseRepository) FindOpenBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]billing.Purchase, error) {
	var purchases []billing.Purchase
	query := session(ctx, r.db).Model(&billing.Purchase{}).
		Where("supplier_id = ? AND pending_balance > 0", supplierID)
	query = applyListing(query, filter, "purchase_date ASC")

	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *billing.Purchase) error {
	return session(ctx, r.db).Save(purchase).Error
}

// SaveWithLock updates a purchase only if the stored version matches
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *billing.Purchase, expectedVersion int) error {
	result := session(ctx, r.db).Model(&billing.Purchase{}).
		Where("id = ? AND version = ?", purchase.ID, expectedVersion).
		Select("*").Updates(purchase)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(session(ctx, r.db).Model(&billing.Purchase{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("purchase_number LIKE ? OR supplier_name LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "purchase_state":
			query = query.Where("purchase_state = ?", value)
		case "payment_state":
			query = query.Where("payment_state = ?", value)
		}
	}
	return query
}

var _ billing.PurchaseRepository = (*GormPurchaseRepository)(nil)
