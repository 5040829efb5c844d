package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/billing"
	"github.com/lupon/backend/internal/domain/finance"
	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

const sourceTypeCollection = "collection"

// CollectionService handles collections. Creating or amending a
// collection reduces the customer's running balance; applying lines
// only moves the collection's available balance against the sales'
// pending balances.
type CollectionService struct {
	collectionRepo   finance.CollectionRepository
	saleRepo         billing.SaleRepository
	counterpartyRepo partner.CounterpartyRepository
	balanceEntryRepo partner.BalanceEntryRepository
	uow              shared.UnitOfWork
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(
	collectionRepo finance.CollectionRepository,
	saleRepo billing.SaleRepository,
	counterpartyRepo partner.CounterpartyRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
	uow shared.UnitOfWork,
) *CollectionService {
	return &CollectionService{
		collectionRepo:   collectionRepo,
		saleRepo:         saleRepo,
		counterpartyRepo: counterpartyRepo,
		balanceEntryRepo: balanceEntryRepo,
		uow:              uow,
	}
}

// Create creates a new collection, reducing the customer's running
// balance by the collected amount. Any initial lines are applied in the
// same unit of work.
func (s *CollectionService) Create(ctx context.Context, req CreateCollectionRequest) (*CollectionResponse, error) {
	var collection *finance.Collection
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		customer, err := s.counterpartyRepo.FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsCustomer() {
			return shared.NewDomainError("NOT_A_CUSTOMER", "Collections require a customer counterparty")
		}
		customerExpected := customer.Version

		collection, err = finance.NewCollection(req.CollectionNumber, customer.ID, customer.Name,
			valueobject.NewMoneyFromFloat(req.Amount))
		if err != nil {
			return err
		}
		collection.Notes = req.Notes

		for _, line := range req.Lines {
			if err := s.applyLine(ctx, collection, line); err != nil {
				return err
			}
		}

		if err := s.collectionRepo.Save(ctx, collection); err != nil {
			return err
		}

		if !collection.Amount.IsZero() {
			entry, err := customer.Credit(collection.Amount, partner.BalanceEntryTypeCollection,
				partner.NewSourceRef(sourceTypeCollection, collection.ID))
			if err != nil {
				return err
			}
			if err := s.counterpartyRepo.SaveWithLock(ctx, customer, customerExpected); err != nil {
				return err
			}
			return s.balanceEntryRepo.Save(ctx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToCollectionResponse(collection)
	return &response, nil
}

// Apply applies more of a collection's available balance to sales. The
// running balance already moved when the collection was created, so
// only the collection and the sales change here.
func (s *CollectionService) Apply(ctx context.Context, collectionID uuid.UUID, req ApplyCollectionRequest) (*CollectionResponse, error) {
	var collection *finance.Collection
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		collection, err = s.collectionRepo.FindByID(ctx, collectionID)
		if err != nil {
			return err
		}
		expected := collection.Version

		for _, line := range req.Lines {
			if err := s.applyLine(ctx, collection, line); err != nil {
				return err
			}
		}

		return s.collectionRepo.SaveWithLock(ctx, collection, expected)
	})
	if err != nil {
		return nil, err
	}

	response := ToCollectionResponse(collection)
	return &response, nil
}

// Amend adds funds to a collection, reducing the customer's running
// balance by the added amount
func (s *CollectionService) Amend(ctx context.Context, collectionID uuid.UUID, req AmendRequest) (*CollectionResponse, error) {
	var collection *finance.Collection
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		collection, err = s.collectionRepo.FindByID(ctx, collectionID)
		if err != nil {
			return err
		}
		expected := collection.Version

		delta := valueobject.NewMoneyFromFloat(req.Amount)
		if err := collection.IncreaseAmount(delta); err != nil {
			return err
		}

		customer, err := s.counterpartyRepo.FindByID(ctx, collection.CustomerID)
		if err != nil {
			return err
		}
		customerExpected := customer.Version
		entry, err := customer.Credit(delta, partner.BalanceEntryTypeCollection,
			partner.NewSourceRef(sourceTypeCollection, collection.ID))
		if err != nil {
			return err
		}

		if err := s.collectionRepo.SaveWithLock(ctx, collection, expected); err != nil {
			return err
		}
		if err := s.counterpartyRepo.SaveWithLock(ctx, customer, customerExpected); err != nil {
			return err
		}
		return s.balanceEntryRepo.Save(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToCollectionResponse(collection)
	return &response, nil
}

// Get returns one collection by ID
func (s *CollectionService) Get(ctx context.Context, collectionID uuid.UUID) (*CollectionResponse, error) {
	collection, err := s.collectionRepo.FindByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	response := ToCollectionResponse(collection)
	return &response, nil
}

// List returns collections matching the filter
func (s *CollectionService) List(ctx context.Context, filter shared.Filter) ([]CollectionResponse, error) {
	collections, err := s.collectionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCollectionResponses(collections), nil
}

// ListByCustomer returns a customer's collections
func (s *CollectionService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]CollectionResponse, error) {
	collections, err := s.collectionRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return ToCollectionResponses(collections), nil
}

// applyLine applies one line against a sale: the sale must belong to
// the collection's customer and must not be cancelled. Both the sale's
// pending balance and the collection's available balance move.
func (s *CollectionService) applyLine(ctx context.Context, collection *finance.Collection, line CollectionLineRequest) error {
	sale, err := s.saleRepo.FindByID(ctx, line.SaleID)
	if err != nil {
		return err
	}
	if sale.CustomerID != collection.CustomerID {
		return shared.NewDomainError("CUSTOMER_MISMATCH", "Sale does not belong to the collection's customer")
	}
	saleExpected := sale.Version

	applied := valueobject.NewMoneyFromFloat(line.Amount)
	if _, err := collection.AddLine(sale.ID, applied); err != nil {
		return err
	}
	if err := sale.ApplyCollection(applied); err != nil {
		return err
	}

	return s.saleRepo.SaveWithLock(ctx, sale, saleExpected)
}
