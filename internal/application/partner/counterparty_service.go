package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/partner"
	"github.com/lupon/backend/internal/domain/shared"
)

// CounterpartyService handles counterparty operations
type CounterpartyService struct {
	counterpartyRepo partner.CounterpartyRepository
	balanceEntryRepo partner.BalanceEntryRepository
}

// NewCounterpartyService creates a new CounterpartyService
func NewCounterpartyService(
	counterpartyRepo partner.CounterpartyRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
) *CounterpartyService {
	return &CounterpartyService{
		counterpartyRepo: counterpartyRepo,
		balanceEntryRepo: balanceEntryRepo,
	}
}

// Create creates a new counterparty
func (s *CounterpartyService) Create(ctx context.Context, req CreateCounterpartyRequest) (*CounterpartyResponse, error) {
	cp, err := partner.NewCounterparty(
		partner.CounterpartyType(req.Type),
		req.Name,
		partner.PaymentTerm(req.PaymentTerm),
		req.CreditDays,
	)
	if err != nil {
		return nil, err
	}
	if req.TaxID != "" || req.Phone != "" || req.Address != "" {
		if err := cp.Update(req.Name, req.TaxID, req.Phone, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.counterpartyRepo.Save(ctx, cp); err != nil {
		return nil, err
	}

	response := ToCounterpartyResponse(cp)
	return &response, nil
}

// Update updates a counterparty's contact information
func (s *CounterpartyService) Update(ctx context.Context, id uuid.UUID, req UpdateCounterpartyRequest) (*CounterpartyResponse, error) {
	cp, err := s.counterpartyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cp.Update(req.Name, req.TaxID, req.Phone, req.Address); err != nil {
		return nil, err
	}

	if err := s.counterpartyRepo.Save(ctx, cp); err != nil {
		return nil, err
	}

	response := ToCounterpartyResponse(cp)
	return &response, nil
}

// ChangePaymentTerm changes the payment term, enforcing the term and
// credit-days coherence rule
func (s *CounterpartyService) ChangePaymentTerm(ctx context.Context, id uuid.UUID, req ChangePaymentTermRequest) (*CounterpartyResponse, error) {
	cp, err := s.counterpartyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cp.ChangePaymentTerm(partner.PaymentTerm(req.PaymentTerm), req.CreditDays); err != nil {
		return nil, err
	}

	if err := s.counterpartyRepo.Save(ctx, cp); err != nil {
		return nil, err
	}

	response := ToCounterpartyResponse(cp)
	return &response, nil
}

// Activate reopens a counterparty account for new documents
func (s *CounterpartyService) Activate(ctx context.Context, id uuid.UUID) (*CounterpartyResponse, error) {
	cp, err := s.counterpartyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cp.Activate(); err != nil {
		return nil, err
	}

	if err := s.counterpartyRepo.Save(ctx, cp); err != nil {
		return nil, err
	}

	response := ToCounterpartyResponse(cp)
	return &response, nil
}

// Deactivate closes a counterparty account to new documents. The
// running balance and its history are kept.
func (s *CounterpartyService) Deactivate(ctx context.Context, id uuid.UUID) (*CounterpartyResponse, error) {
	cp, err := s.counterpartyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := cp.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.counterpartyRepo.Save(ctx, cp); err != nil {
		return nil, err
	}

	response := ToCounterpartyResponse(cp)
	return &response, nil
}

// Get returns one counterparty by ID
func (s *CounterpartyService) Get(ctx context.Context, id uuid.UUID) (*CounterpartyResponse, error) {
	cp, err := s.counterpartyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCounterpartyResponse(cp)
	return &response, nil
}

// List returns counterparties matching the filter
func (s *CounterpartyService) List(ctx context.Context, filter shared.Filter) ([]CounterpartyResponse, error) {
	cps, err := s.counterpartyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCounterpartyResponses(cps), nil
}

// ListBalanceEntries returns the balance history for a counterparty
func (s *CounterpartyService) ListBalanceEntries(ctx context.Context, id uuid.UUID, filter shared.Filter) ([]BalanceEntryResponse, error) {
	if _, err := s.counterpartyRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.balanceEntryRepo.FindByCounterparty(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return ToBalanceEntryResponses(entries), nil
}
