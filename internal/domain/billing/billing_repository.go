package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds all sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// FindByCustomer finds sales for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByPurchaseOrder finds sales linked to a purchase order
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]Sale, error)

	// FindOpenByCustomer finds sales with a positive pending balance
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock updates a sale only if the stored version matches
	SaveWithLock(ctx context.Context, sale *Sale, expectedVersion int) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	// FindByID finds a purchase by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByPurchaseNumber finds a purchase by its number
	FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)

	// FindAll finds all purchases matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)

	// FindBySupplier finds purchases for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Purchase, error)

	// FindOpenBySupplier finds purchases with a positive pending balance
	FindOpenBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Purchase, error)

	// Save creates or updates a purchase
	Save(ctx context.Context, purchase *Purchase) error

	// SaveWithLock updates a purchase only if the stored version matches
	SaveWithLock(ctx context.Context, purchase *Purchase, expectedVersion int) error

	// Count counts purchases matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
