package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lupon/backend/internal/domain/finance"
	"github.com/lupon/backend/internal/domain/shared"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var payment finance.Payment
	if err := session(ctx, r.db).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	var payments []finance.Payment
	query := r.applyConditions(session(ctx, r.db).Model(&finance.Payment{}), filter)
	query = applyListing(query, filter, "payment_date DESC")

	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindBySupplier finds payments for a supplier
func (r *GormPaymentRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]finance.Payment, error) {
	return r.FindAll(ctx, filter.WithFilter("supplier_id", supplierID))
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return session(ctx, r.db).Save(payment).Error
}

// SaveWithLock updates a payment only if the stored version matches
func (r *GormPaymentRepository) SaveWithLock(ctx context.Context, payment *finance.Payment, expectedVersion int) error {
	result := session(ctx, r.db).Model(&finance.Payment{}).
		Where("id = ? AND version = ?", payment.ID, expectedVersion).
		Select("*").Updates(payment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(session(ctx, r.db).Model(&finance.Payment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("payment_number LIKE ? OR supplier_name LIKE ?", pattern, pattern)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	return query
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
