package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/finance"
)

// CollectionLineRequest applies part of a collection to one sale
type CollectionLineRequest struct {
	SaleID uuid.UUID `json:"sale_id" binding:"required"`
	Amount float64   `json:"amount" binding:"required,gt=0"`
}

// CreateCollectionRequest represents a request to create a collection.
// A zero amount opens an empty collection to be funded later.
type CreateCollectionRequest struct {
	CollectionNumber string                  `json:"collection_number" binding:"required,min=1,max=50"`
	CustomerID       uuid.UUID               `json:"customer_id" binding:"required"`
	Amount           float64                 `json:"amount" binding:"gte=0"`
	Lines            []CollectionLineRequest `json:"lines" binding:"omitempty,dive"`
	Notes            string                  `json:"notes" binding:"max=300"`
}

// ApplyCollectionRequest applies more of a collection to sales
type ApplyCollectionRequest struct {
	Lines []CollectionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AmendRequest adds funds to a collection or payment
type AmendRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// PaymentLineRequest applies part of a payment to one purchase
type PaymentLineRequest struct {
	PurchaseID uuid.UUID `json:"purchase_id" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
}

// CreatePaymentRequest represents a request to create a payment
type CreatePaymentRequest struct {
	PaymentNumber string               `json:"payment_number" binding:"required,min=1,max=50"`
	SupplierID    uuid.UUID            `json:"supplier_id" binding:"required"`
	Amount        float64              `json:"amount" binding:"gte=0"`
	Lines         []PaymentLineRequest `json:"lines" binding:"omitempty,dive"`
	Notes         string               `json:"notes" binding:"max=300"`
}

// ApplyPaymentRequest applies more of a payment to purchases
type ApplyPaymentRequest struct {
	Lines []PaymentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreditNoteLineRequest is an optional item line on a credit note
type CreditNoteLineRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name" binding:"required,max=200"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64   `json:"unit_price" binding:"required,gt=0"`
}

// ApplicationRequest applies part of a credit note to one document
type ApplicationRequest struct {
	DocumentID uuid.UUID `json:"document_id" binding:"required"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
}

// CreateCreditNoteRequest represents a request to create a credit note.
// At least one application is required; a note never exists unapplied.
type CreateCreditNoteRequest struct {
	NoteNumber     string                  `json:"note_number" binding:"required,min=1,max=50"`
	Kind           string                  `json:"kind" binding:"required,oneof=sale purchase"`
	CounterpartyID uuid.UUID               `json:"counterparty_id" binding:"required"`
	Amount         float64                 `json:"amount" binding:"required,gt=0"`
	Lines          []CreditNoteLineRequest `json:"lines" binding:"omitempty,dive"`
	Applications   []ApplicationRequest    `json:"applications" binding:"required,min=1,dive"`
	Reason         string                  `json:"reason" binding:"max=300"`
}

// ApplyCreditNoteRequest applies more of a credit note to documents
type ApplyCreditNoteRequest struct {
	Applications []ApplicationRequest `json:"applications" binding:"required,min=1,dive"`
}

// CollectionLineResponse represents one collection line in API responses
type CollectionLineResponse struct {
	ID            uuid.UUID `json:"id"`
	SaleID        uuid.UUID `json:"sale_id"`
	AppliedAmount string    `json:"applied_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// CollectionResponse represents a collection in API responses
type CollectionResponse struct {
	ID               uuid.UUID                `json:"id"`
	CollectionNumber string                   `json:"collection_number"`
	CustomerID       uuid.UUID                `json:"customer_id"`
	CustomerName     string                   `json:"customer_name"`
	Amount           string                   `json:"amount"`
	AvailableBalance string                   `json:"available_balance"`
	Lines            []CollectionLineResponse `json:"lines"`
	CollectionDate   time.Time                `json:"collection_date"`
	Notes            string                   `json:"notes,omitempty"`
	Version          int                      `json:"version"`
}

// ToCollectionResponse converts a domain collection
func ToCollectionResponse(c *finance.Collection) CollectionResponse {
	lines := make([]CollectionLineResponse, len(c.Lines))
	for i, line := range c.Lines {
		lines[i] = CollectionLineResponse{
			ID:            line.ID,
			SaleID:        line.SaleID,
			AppliedAmount: line.AppliedAmount.String(),
			CreatedAt:     line.CreatedAt,
		}
	}
	return CollectionResponse{
		ID:               c.ID,
		CollectionNumber: c.CollectionNumber,
		CustomerID:       c.CustomerID,
		CustomerName:     c.CustomerName,
		Amount:           c.Amount.String(),
		AvailableBalance: c.AvailableBalance.String(),
		Lines:            lines,
		CollectionDate:   c.CollectionDate,
		Notes:            c.Notes,
		Version:          c.Version,
	}
}

// ToCollectionResponses converts a list of collections
func ToCollectionResponses(collections []finance.Collection) []CollectionResponse {
	responses := make([]CollectionResponse, len(collections))
	for i := range collections {
		responses[i] = ToCollectionResponse(&collections[i])
	}
	return responses
}

// PaymentLineResponse represents one payment line in API responses
type PaymentLineResponse struct {
	ID            uuid.UUID `json:"id"`
	PurchaseID    uuid.UUID `json:"purchase_id"`
	AppliedAmount string    `json:"applied_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID               uuid.UUID             `json:"id"`
	PaymentNumber    string                `json:"payment_number"`
	SupplierID       uuid.UUID             `json:"supplier_id"`
	SupplierName     string                `json:"supplier_name"`
	Amount           string                `json:"amount"`
	AvailableBalance string                `json:"available_balance"`
	Lines            []PaymentLineResponse `json:"lines"`
	PaymentDate      time.Time             `json:"payment_date"`
	Notes            string                `json:"notes,omitempty"`
	Version          int                   `json:"version"`
}

// ToPaymentResponse converts a domain payment
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	lines := make([]PaymentLineResponse, len(p.Lines))
	for i, line := range p.Lines {
		lines[i] = PaymentLineResponse{
			ID:            line.ID,
			PurchaseID:    line.PurchaseID,
			AppliedAmount: line.AppliedAmount.String(),
			CreatedAt:     line.CreatedAt,
		}
	}
	return PaymentResponse{
		ID:               p.ID,
		PaymentNumber:    p.PaymentNumber,
		SupplierID:       p.SupplierID,
		SupplierName:     p.SupplierName,
		Amount:           p.Amount.String(),
		AvailableBalance: p.AvailableBalance.String(),
		Lines:            lines,
		PaymentDate:      p.PaymentDate,
		Notes:            p.Notes,
		Version:          p.Version,
	}
}

// ToPaymentResponses converts a list of payments
func ToPaymentResponses(payments []finance.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ApplicationResponse represents one credit note application
type ApplicationResponse struct {
	ID            uuid.UUID `json:"id"`
	TargetType    string    `json:"target_type"`
	DocumentID    uuid.UUID `json:"document_id"`
	AppliedAmount string    `json:"applied_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreditNoteLineResponse represents one credit note item line
type CreditNoteLineResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Total       string    `json:"total"`
}

// CreditNoteResponse represents a credit note in API responses
type CreditNoteResponse struct {
	ID              uuid.UUID                `json:"id"`
	NoteNumber      string                   `json:"note_number"`
	Kind            string                   `json:"kind"`
	CounterpartyID  uuid.UUID                `json:"counterparty_id"`
	Amount          string                   `json:"amount"`
	Lines           []CreditNoteLineResponse `json:"lines"`
	Subtotal        string                   `json:"subtotal"`
	Applications    []ApplicationResponse    `json:"applications"`
	AppliedTotal    string                   `json:"applied_total"`
	RemainingAmount string                   `json:"remaining_amount"`
	NoteDate        time.Time                `json:"note_date"`
	Reason          string                   `json:"reason,omitempty"`
	Version         int                      `json:"version"`
}

// ToCreditNoteResponse converts a domain credit note
func ToCreditNoteResponse(n *finance.CreditNote) CreditNoteResponse {
	lines := make([]CreditNoteLineResponse, len(n.Lines))
	for i, line := range n.Lines {
		lines[i] = CreditNoteLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.String(),
			Total:       line.Total.String(),
		}
	}
	apps := make([]ApplicationResponse, len(n.Applications))
	for i, app := range n.Applications {
		apps[i] = ApplicationResponse{
			ID:            app.ID,
			TargetType:    string(app.Target.Type),
			DocumentID:    app.Target.DocumentID,
			AppliedAmount: app.AppliedAmount.String(),
			CreatedAt:     app.CreatedAt,
		}
	}
	return CreditNoteResponse{
		ID:              n.ID,
		NoteNumber:      n.NoteNumber,
		Kind:            string(n.Kind),
		CounterpartyID:  n.CounterpartyID,
		Amount:          n.Amount.String(),
		Lines:           lines,
		Subtotal:        n.Subtotal.String(),
		Applications:    apps,
		AppliedTotal:    n.AppliedTotal().String(),
		RemainingAmount: n.RemainingAmount().String(),
		NoteDate:        n.NoteDate,
		Reason:          n.Reason,
		Version:         n.Version,
	}
}

// ToCreditNoteResponses converts a list of credit notes
func ToCreditNoteResponses(notes []finance.CreditNote) []CreditNoteResponse {
	responses := make([]CreditNoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToCreditNoteResponse(&notes[i])
	}
	return responses
}
