package finance

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// CreditNoteKind declares which side of the ledger a credit note
// settles against
type CreditNoteKind string

const (
	CreditNoteKindSale     CreditNoteKind = "sale"
	CreditNoteKindPurchase CreditNoteKind = "purchase"
)

// ParseCreditNoteKind normalizes a kind name to its canonical form
func ParseCreditNoteKind(s string) (CreditNoteKind, error) {
	kind := CreditNoteKind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", shared.NewDomainError("INVALID_KIND", "Unknown credit note kind: "+s)
	}
	return kind, nil
}

// IsValid checks if the kind is a valid CreditNoteKind
func (k CreditNoteKind) IsValid() bool {
	return k == CreditNoteKindSale || k == CreditNoteKindPurchase
}

// TargetType identifies the document type an application settles
type TargetType string

const (
	TargetTypeSale     TargetType = "sale"
	TargetTypePurchase TargetType = "purchase"
)

// ApplicationTarget is a tagged union referencing exactly one sale or
// exactly one purchase. Constructing it through NewSaleTarget or
// NewPurchaseTarget makes a both-or-neither reference unrepresentable.
type ApplicationTarget struct {
	Type       TargetType `json:"type"`
	DocumentID uuid.UUID  `json:"document_id"`
}

// NewSaleTarget creates a target referencing a sale
func NewSaleTarget(saleID uuid.UUID) ApplicationTarget {
	return ApplicationTarget{Type: TargetTypeSale, DocumentID: saleID}
}

// NewPurchaseTarget creates a target referencing a purchase
func NewPurchaseTarget(purchaseID uuid.UUID) ApplicationTarget {
	return ApplicationTarget{Type: TargetTypePurchase, DocumentID: purchaseID}
}

// MatchesKind reports whether the target type is the one the note's
// kind settles against
func (t ApplicationTarget) MatchesKind(kind CreditNoteKind) bool {
	switch kind {
	case CreditNoteKindSale:
		return t.Type == TargetTypeSale
	case CreditNoteKindPurchase:
		return t.Type == TargetTypePurchase
	}
	return false
}

// Application links part of a credit note to one target document
type Application struct {
	ID            uuid.UUID         `json:"id"`
	Target        ApplicationTarget `json:"target"`
	AppliedAmount valueobject.Money `json:"applied_amount"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Applications is the owned collection of applications, stored as JSONB
type Applications []Application

// Value implements driver.Valuer
func (a Applications) Value() (driver.Value, error) {
	if a == nil {
		a = Applications{}
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *Applications) Scan(value any) error {
	if value == nil {
		*a = Applications{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan applications from database value")
}

// AppliedTotal returns the sum of applied amounts
func (a Applications) AppliedTotal() valueobject.Money {
	total := valueobject.Zero
	for _, app := range a {
		total = total.Add(app.AppliedAmount)
	}
	return total
}

// CreditNoteLine is an optional item line on a credit note
type CreditNoteLine struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Total       valueobject.Money `json:"total"`
}

// NewCreditNoteLine creates a credit note item line
func NewCreditNoteLine(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*CreditNoteLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() || unitPrice.IsZero() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	return &CreditNoteLine{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       valueobject.LineTotal(quantity, unitPrice),
	}, nil
}

// CreditNoteLines is the owned collection of item lines, stored as JSONB
type CreditNoteLines []CreditNoteLine

// Value implements driver.Valuer
func (l CreditNoteLines) Value() (driver.Value, error) {
	if l == nil {
		l = CreditNoteLines{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *CreditNoteLines) Scan(value any) error {
	if value == nil {
		*l = CreditNoteLines{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return shared.NewDomainError("INVALID_SCAN", "Cannot scan credit note lines from database value")
}

// Subtotal returns the sum of line totals
func (l CreditNoteLines) Subtotal() valueobject.Money {
	total := valueobject.Zero
	for _, line := range l {
		total = total.Add(line.Total)
	}
	return total
}

// CreditNote represents a credit issued against sales or purchases.
// Credit notes are never deleted; the total applied can never exceed
// the note's amount, and every application must match the note's kind.
type CreditNote struct {
	shared.BaseAggregateRoot
	NoteNumber     string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Kind           CreditNoteKind    `gorm:"type:varchar(20);not null"`
	CounterpartyID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount         valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Lines          CreditNoteLines   `gorm:"type:jsonb"`
	Subtotal       valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Applications   Applications      `gorm:"type:jsonb"`
	NoteDate       time.Time         `gorm:"not null"`
	Reason         string            `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (CreditNote) TableName() string {
	return "credit_notes"
}

// NewCreditNote creates a new credit note. The amount is required and
// positive; item lines are optional.
func NewCreditNote(noteNumber string, kind CreditNoteKind, counterpartyID uuid.UUID, amount valueobject.Money, lines []CreditNoteLine) (*CreditNote, error) {
	if noteNumber == "" {
		return nil, shared.NewDomainError("INVALID_NOTE_NUMBER", "Credit note number cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Credit note kind must be sale or purchase")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Credit note amount must be positive")
	}

	owned := make(CreditNoteLines, len(lines))
	copy(owned, lines)

	note := &CreditNote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		NoteNumber:        noteNumber,
		Kind:              kind,
		CounterpartyID:    counterpartyID,
		Amount:            amount,
		Lines:             owned,
		Subtotal:          owned.Subtotal(),
		Applications:      make(Applications, 0),
		NoteDate:          time.Now(),
	}

	note.AddDomainEvent(NewCreditNoteCreatedEvent(note))

	return note, nil
}

// AddApplication applies part of the note to one target document. The
// target type must match the note's kind and the running applied total
// must stay within the note's amount.
func (n *CreditNote) AddApplication(target ApplicationTarget, applied valueobject.Money) (*Application, error) {
	if target.DocumentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Application target document cannot be empty")
	}
	if !target.MatchesKind(n.Kind) {
		return nil, shared.NewDomainError("KIND_MISMATCH", "Application target type does not match the credit note kind")
	}
	if applied.IsZero() || applied.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Applied amount must be positive")
	}
	if n.Applications.AppliedTotal().Add(applied).GreaterThan(n.Amount) {
		return nil, shared.NewDomainError("AMOUNT_EXCEEDED", "Total applied amount exceeds the credit note amount")
	}

	app := Application{
		ID:            uuid.New(),
		Target:        target,
		AppliedAmount: applied,
		CreatedAt:     time.Now(),
	}
	n.Applications = append(n.Applications, app)
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	n.AddDomainEvent(NewCreditNoteAppliedEvent(n, &app))

	return &app, nil
}

// AppliedTotal returns the total amount applied across all applications
func (n *CreditNote) AppliedTotal() valueobject.Money {
	return n.Applications.AppliedTotal()
}

// RemainingAmount returns the unapplied portion of the note's amount
func (n *CreditNote) RemainingAmount() valueobject.Money {
	return n.Amount.Sub(n.Applications.AppliedTotal())
}

// HasApplications reports whether at least one application exists.
// A committed note must always have one.
func (n *CreditNote) HasApplications() bool {
	return len(n.Applications) > 0
}
