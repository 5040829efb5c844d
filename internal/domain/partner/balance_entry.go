package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// BalanceEntryType identifies the event that changed a running balance
type BalanceEntryType string

const (
	// BalanceEntryTypeSale records a sale charging the customer
	BalanceEntryTypeSale BalanceEntryType = "SALE"
	// BalanceEntryTypeSaleCancelled records the reversal of a cancelled sale
	BalanceEntryTypeSaleCancelled BalanceEntryType = "SALE_CANCELLED"
	// BalanceEntryTypeCollection records money received from a customer
	BalanceEntryTypeCollection BalanceEntryType = "COLLECTION"
	// BalanceEntryTypePurchaseCancelled records the reversal of a cancelled purchase
	BalanceEntryTypePurchaseCancelled BalanceEntryType = "PURCHASE_CANCELLED"
	// BalanceEntryTypePayment records money paid to a supplier
	BalanceEntryTypePayment BalanceEntryType = "PAYMENT"
	// BalanceEntryTypeCreditNote records a credit note applied against a document
	BalanceEntryTypeCreditNote BalanceEntryType = "CREDIT_NOTE"
)

// String returns the string representation of the entry type
func (t BalanceEntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t BalanceEntryType) IsValid() bool {
	switch t {
	case BalanceEntryTypeSale,
		BalanceEntryTypeSaleCancelled,
		BalanceEntryTypeCollection,
		BalanceEntryTypePurchaseCancelled,
		BalanceEntryTypePayment,
		BalanceEntryTypeCreditNote:
		return true
	}
	return false
}

// SourceRef identifies the document that triggered a balance change
type SourceRef struct {
	DocumentType string    `gorm:"type:varchar(30)"`
	DocumentID   uuid.UUID `gorm:"type:uuid"`
}

// NewSourceRef creates a source reference
func NewSourceRef(documentType string, documentID uuid.UUID) SourceRef {
	return SourceRef{DocumentType: documentType, DocumentID: documentID}
}

// BalanceEntry is an immutable record of one running-balance change.
// Corrections are made with new entries, never by editing existing ones.
type BalanceEntry struct {
	shared.BaseEntity
	CounterpartyID uuid.UUID         `gorm:"type:uuid;not null;index"`
	EntryType      BalanceEntryType  `gorm:"type:varchar(30);not null"`
	Amount         valueobject.Money `gorm:"type:decimal(18,2);not null"` // signed change applied to the balance
	BalanceBefore  valueobject.Money `gorm:"type:decimal(18,2);not null"`
	BalanceAfter   valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Source         SourceRef         `gorm:"embedded;embeddedPrefix:source_"`
	EntryDate      time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BalanceEntry) TableName() string {
	return "balance_entries"
}

// NewBalanceEntry creates a balance entry for an applied change
func NewBalanceEntry(
	counterpartyID uuid.UUID,
	entryType BalanceEntryType,
	amount valueobject.Money,
	balanceBefore valueobject.Money,
	balanceAfter valueobject.Money,
	source SourceRef,
) *BalanceEntry {
	return &BalanceEntry{
		BaseEntity:     shared.NewBaseEntity(),
		CounterpartyID: counterpartyID,
		EntryType:      entryType,
		Amount:         amount,
		BalanceBefore:  balanceBefore,
		BalanceAfter:   balanceAfter,
		Source:         source,
		EntryDate:      time.Now(),
	}
}

// IsIncrease returns true if this entry increased the running balance
func (e *BalanceEntry) IsIncrease() bool {
	return e.BalanceAfter.GreaterThan(e.BalanceBefore)
}

// IsDecrease returns true if this entry decreased the running balance
func (e *BalanceEntry) IsDecrease() bool {
	return e.BalanceAfter.LessThan(e.BalanceBefore)
}
