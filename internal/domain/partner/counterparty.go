package partner

import (
	"time"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// CounterpartyType distinguishes customers from suppliers
type CounterpartyType string

const (
	CounterpartyTypeCustomer CounterpartyType = "customer"
	CounterpartyTypeSupplier CounterpartyType = "supplier"
)

// IsValid returns true if the counterparty type is valid
func (t CounterpartyType) IsValid() bool {
	return t == CounterpartyTypeCustomer || t == CounterpartyTypeSupplier
}

// PaymentTerm represents how a counterparty settles its documents
type PaymentTerm string

const (
	// PaymentTermCash settles immediately; no credit days
	PaymentTermCash PaymentTerm = "cash"
	// PaymentTermRunningAccount settles against the running balance
	// within the agreed credit days
	PaymentTermRunningAccount PaymentTerm = "running_account"
)

// IsValid returns true if the payment term is valid
func (t PaymentTerm) IsValid() bool {
	return t == PaymentTermCash || t == PaymentTermRunningAccount
}

// Counterparty represents a customer or supplier account with a signed
// running balance. It is the aggregate root for partner operations.
// The balance is only ever written through Charge and Credit; every
// change produces an immutable BalanceEntry.
type Counterparty struct {
	shared.BaseAggregateRoot
	Type           CounterpartyType  `gorm:"type:varchar(20);not null;index"`
	Name           string            `gorm:"type:varchar(200);not null"`
	TaxID          string            `gorm:"type:varchar(30);index"`
	Phone          string            `gorm:"type:varchar(30)"`
	Address        string            `gorm:"type:varchar(300)"`
	PaymentTerm    PaymentTerm       `gorm:"type:varchar(20);not null"`
	CreditDays     int               `gorm:"not null;default:0"`
	RunningBalance valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	Active         bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Counterparty) TableName() string {
	return "counterparties"
}

// NewCounterparty creates a new counterparty with a zero running balance
func NewCounterparty(cpType CounterpartyType, name string, term PaymentTerm, creditDays int) (*Counterparty, error) {
	if !cpType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Counterparty type must be customer or supplier")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Counterparty name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Counterparty name cannot exceed 200 characters")
	}
	if err := validatePaymentTerm(term, creditDays); err != nil {
		return nil, err
	}

	cp := &Counterparty{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              cpType,
		Name:              name,
		PaymentTerm:       term,
		CreditDays:        creditDays,
		RunningBalance:    valueobject.Zero,
		Active:            true,
	}

	cp.AddDomainEvent(NewCounterpartyCreatedEvent(cp))

	return cp, nil
}

// Update updates the counterparty's contact information
func (c *Counterparty) Update(name, taxID, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Counterparty name cannot be empty")
	}

	c.Name = name
	c.TaxID = taxID
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// ChangePaymentTerm changes the payment term, keeping term and credit
// days coherent
func (c *Counterparty) ChangePaymentTerm(term PaymentTerm, creditDays int) error {
	if err := validatePaymentTerm(term, creditDays); err != nil {
		return err
	}

	c.PaymentTerm = term
	c.CreditDays = creditDays
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Charge increases the running balance by amount, recording the change
func (c *Counterparty) Charge(amount valueobject.Money, entryType BalanceEntryType, source SourceRef) (*BalanceEntry, error) {
	return c.applyChange(amount, entryType, source)
}

// Credit decreases the running balance by amount, recording the change
func (c *Counterparty) Credit(amount valueobject.Money, entryType BalanceEntryType, source SourceRef) (*BalanceEntry, error) {
	return c.applyChange(amount.Neg(), entryType, source)
}

func (c *Counterparty) applyChange(delta valueobject.Money, entryType BalanceEntryType, source SourceRef) (*BalanceEntry, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid balance entry type")
	}

	before := c.RunningBalance
	c.RunningBalance = c.RunningBalance.Add(delta)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	entry := NewBalanceEntry(c.ID, entryType, delta, before, c.RunningBalance, source)

	c.AddDomainEvent(NewBalanceChangedEvent(c, entry))

	return entry, nil
}

// DueDate returns the settlement due date for a document issued at the
// given date: the document date plus the agreed credit days
func (c *Counterparty) DueDate(documentDate time.Time) time.Time {
	return documentDate.AddDate(0, 0, c.CreditDays)
}

// IsCustomer returns true if the counterparty is a customer
func (c *Counterparty) IsCustomer() bool {
	return c.Type == CounterpartyTypeCustomer
}

// IsSupplier returns true if the counterparty is a supplier
func (c *Counterparty) IsSupplier() bool {
	return c.Type == CounterpartyTypeSupplier
}

// Activate marks the counterparty as active
func (c *Counterparty) Activate() error {
	if c.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Counterparty is already active")
	}
	c.Active = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the counterparty as inactive
func (c *Counterparty) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Counterparty is already inactive")
	}
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// validatePaymentTerm checks the term/credit-days coherence rule:
// cash requires zero credit days, running account requires positive
// credit days.
func validatePaymentTerm(term PaymentTerm, creditDays int) error {
	if !term.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TERM", "Payment term must be cash or running_account")
	}
	if term == PaymentTermCash && creditDays != 0 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Cash counterparties cannot have credit days")
	}
	if term == PaymentTermRunningAccount && creditDays <= 0 {
		return shared.NewDomainError("INVALID_CREDIT_DAYS", "Running-account counterparties require positive credit days")
	}
	return nil
}
