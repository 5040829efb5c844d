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

const sourceTypeCreditNote = "credit_note"

// CreditNoteService handles credit notes. Every application reduces
// both the target document's pending balance and the counterparty's
// running balance, so the whole cascade runs in one unit of work.
type CreditNoteService struct {
	noteRepo         finance.CreditNoteRepository
	saleRepo         billing.SaleRepository
	purchaseRepo     billing.PurchaseRepository
	counterpartyRepo partner.CounterpartyRepository
	balanceEntryRepo partner.BalanceEntryRepository
	uow              shared.UnitOfWork
}

// NewCreditNoteService creates a new CreditNoteService
func NewCreditNoteService(
	noteRepo finance.CreditNoteRepository,
	saleRepo billing.SaleRepository,
	purchaseRepo billing.PurchaseRepository,
	counterpartyRepo partner.CounterpartyRepository,
	balanceEntryRepo partner.BalanceEntryRepository,
	uow shared.UnitOfWork,
) *CreditNoteService {
	return &CreditNoteService{
		noteRepo:         noteRepo,
		saleRepo:         saleRepo,
		purchaseRepo:     purchaseRepo,
		counterpartyRepo: counterpartyRepo,
		balanceEntryRepo: balanceEntryRepo,
		uow:              uow,
	}
}

// Create creates a credit note and applies it. A note is never
// committed without at least one application.
func (s *CreditNoteService) Create(ctx context.Context, req CreateCreditNoteRequest) (*CreditNoteResponse, error) {
	kind, err := finance.ParseCreditNoteKind(req.Kind)
	if err != nil {
		return nil, err
	}

	lines := make([]finance.CreditNoteLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, err := finance.NewCreditNoteLine(lineReq.ProductID, lineReq.ProductName, lineReq.Quantity,
			valueobject.NewMoneyFromFloat(lineReq.UnitPrice))
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	var note *finance.CreditNote
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		counterparty, err := s.counterpartyRepo.FindByID(ctx, req.CounterpartyID)
		if err != nil {
			return err
		}
		if err := validateCounterpartyKind(counterparty, kind); err != nil {
			return err
		}

		note, err = finance.NewCreditNote(req.NoteNumber, kind, counterparty.ID,
			valueobject.NewMoneyFromFloat(req.Amount), lines)
		if err != nil {
			return err
		}
		note.Reason = req.Reason

		if len(req.Applications) == 0 {
			return shared.NewDomainError("UNAPPLIED_NOTE", "Credit note requires at least one application")
		}
		for _, app := range req.Applications {
			if err := s.applyOne(ctx, note, counterparty, app); err != nil {
				return err
			}
		}

		return s.noteRepo.Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// Apply applies more of an existing credit note to documents
func (s *CreditNoteService) Apply(ctx context.Context, noteID uuid.UUID, req ApplyCreditNoteRequest) (*CreditNoteResponse, error) {
	var note *finance.CreditNote
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		note, err = s.noteRepo.FindByID(ctx, noteID)
		if err != nil {
			return err
		}

		counterparty, err := s.counterpartyRepo.FindByID(ctx, note.CounterpartyID)
		if err != nil {
			return err
		}

		for _, app := range req.Applications {
			if err := s.applyOne(ctx, note, counterparty, app); err != nil {
				return err
			}
		}

		return s.noteRepo.Save(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// Get returns one credit note by ID
func (s *CreditNoteService) Get(ctx context.Context, noteID uuid.UUID) (*CreditNoteResponse, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	response := ToCreditNoteResponse(note)
	return &response, nil
}

// List returns credit notes matching the filter
func (s *CreditNoteService) List(ctx context.Context, filter shared.Filter) ([]CreditNoteResponse, error) {
	notes, err := s.noteRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCreditNoteResponses(notes), nil
}

// ListByCounterparty returns a counterparty's credit notes
func (s *CreditNoteService) ListByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]CreditNoteResponse, error) {
	notes, err := s.noteRepo.FindByCounterparty(ctx, counterpartyID, filter)
	if err != nil {
		return nil, err
	}
	return ToCreditNoteResponses(notes), nil
}

// applyOne applies one amount against a target document. The target's
// pending balance and the counterparty's running balance both drop by
// the applied amount; a balance entry records the change.
func (s *CreditNoteService) applyOne(ctx context.Context, note *finance.CreditNote, counterparty *partner.Counterparty, req ApplicationRequest) error {
	applied := valueobject.NewMoneyFromFloat(req.Amount)

	var target finance.ApplicationTarget
	switch note.Kind {
	case finance.CreditNoteKindSale:
		sale, err := s.saleRepo.FindByID(ctx, req.DocumentID)
		if err != nil {
			return err
		}
		if sale.CustomerID != note.CounterpartyID {
			return shared.NewDomainError("COUNTERPARTY_MISMATCH", "Sale does not belong to the credit note's counterparty")
		}
		saleExpected := sale.Version
		target = finance.NewSaleTarget(sale.ID)
		if _, err := note.AddApplication(target, applied); err != nil {
			return err
		}
		if err := sale.ApplyCollection(applied); err != nil {
			return err
		}
		if err := s.saleRepo.SaveWithLock(ctx, sale, saleExpected); err != nil {
			return err
		}
	case finance.CreditNoteKindPurchase:
		purchase, err := s.purchaseRepo.FindByID(ctx, req.DocumentID)
		if err != nil {
			return err
		}
		if purchase.SupplierID != note.CounterpartyID {
			return shared.NewDomainError("COUNTERPARTY_MISMATCH", "Purchase does not belong to the credit note's counterparty")
		}
		purchaseExpected := purchase.Version
		target = finance.NewPurchaseTarget(purchase.ID)
		if _, err := note.AddApplication(target, applied); err != nil {
			return err
		}
		if err := purchase.ApplyPayment(applied); err != nil {
			return err
		}
		if err := s.purchaseRepo.SaveWithLock(ctx, purchase, purchaseExpected); err != nil {
			return err
		}
	default:
		return shared.NewDomainError("INVALID_KIND", "Credit note kind must be sale or purchase")
	}

	counterpartyExpected := counterparty.Version
	entry, err := counterparty.Credit(applied, partner.BalanceEntryTypeCreditNote,
		partner.NewSourceRef(sourceTypeCreditNote, note.ID))
	if err != nil {
		return err
	}
	if err := s.counterpartyRepo.SaveWithLock(ctx, counterparty, counterpartyExpected); err != nil {
		return err
	}
	return s.balanceEntryRepo.Save(ctx, entry)
}

// validateCounterpartyKind checks that the note's kind matches the
// counterparty's side of the ledger
func validateCounterpartyKind(cp *partner.Counterparty, kind finance.CreditNoteKind) error {
	switch kind {
	case finance.CreditNoteKindSale:
		if !cp.IsCustomer() {
			return shared.NewDomainError("NOT_A_CUSTOMER", "Sale credit notes require a customer counterparty")
		}
	case finance.CreditNoteKindPurchase:
		if !cp.IsSupplier() {
			return shared.NewDomainError("NOT_A_SUPPLIER", "Purchase credit notes require a supplier counterparty")
		}
	}
	return nil
}
