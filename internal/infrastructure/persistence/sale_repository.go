package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/shared"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Sale, error) {
	var sale billing.Sale
	if err := session(ctx, r.db).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindBySaleNumber finds a sale by its number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*billing.Sale, error) {
	var sale billing.Sale
	if err := session(ctx, r.db).First(&sale, "sale_number = ?", saleNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Sale, error) {
	var sales []billing.Sale
	query := r.applyConditions(session(ctx, r.db).Model(&billing.Sale{}), filter)
	query = applyListing(query, filter, "sale_date DESC")

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByCustomer finds sales for a customer
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Sale, error) {
	return r.FindAll(ctx, filter.WithFilter("customer_id", customerID))
}

// FindByPurchaseOrder finds sales linked to a purchase order
func (r *GormSaleRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]billing.Sale, error) {
	var sales []billing.Sale
	if err := session(ctx, r.db).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("sale_date DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindOpenByCustomer finds sales with a positive pending balance
func (r *GormSaleRepository) FindOpenByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Sale, error) {
	var sales []billing.Sale
	query := session(ctx, r.db).Model(&billing.Sale{}).
		Where("customer_id = ? AND pending_balance > 0", customerID)
	query = applyListing(query, filter, "sale_date ASC")

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *billing.Sale) error {
	return session(ctx, r.db).Save(sale).Error
}

// SaveWithLock updates a sale only if the stored version matches
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *billing.Sale, expectedVersion int) error {
	result := session(ctx, r.db).Model(&billing.Sale{}).
		Where("id = ? AND version = ?", sale.ID, expectedVersion).
		Select("*").Updates(sale)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(session(ctx, r.db).Model(&billing.Sale{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sale_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "commercial_state":
			query = query.Where("commercial_state = ?", value)
		case "delivery_state":
			query = query.Where("delivery_state = ?", value)
		case "collection_state":
			query = query.Where("collection_state = ?", value)
		}
	}
	return query
}

var _ billing.SaleRepository = (*GormSaleRepository)(nil)
