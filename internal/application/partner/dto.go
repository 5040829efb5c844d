package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/lupon/backend/internal/domain/partner"
)

// CreateCounterpartyRequest represents a request to create a counterparty
type CreateCounterpartyRequest struct {
	Type        string `json:"type" binding:"required,oneof=customer supplier"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	TaxID       string `json:"tax_id" binding:"max=30"`
	Phone       string `json:"phone" binding:"max=30"`
	Address     string `json:"address" binding:"max=300"`
	PaymentTerm string `json:"payment_term" binding:"required,oneof=cash running_account"`
	CreditDays  int    `json:"credit_days" binding:"gte=0"`
}

// UpdateCounterpartyRequest represents a request to update contact info
type UpdateCounterpartyRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" binding:"max=30"`
	Phone   string `json:"phone" binding:"max=30"`
	Address string `json:"address" binding:"max=300"`
}

// ChangePaymentTermRequest represents a request to change the payment term
type ChangePaymentTermRequest struct {
	PaymentTerm string `json:"payment_term" binding:"required,oneof=cash running_account"`
	CreditDays  int    `json:"credit_days" binding:"gte=0"`
}

// CounterpartyResponse represents a counterparty in API responses
type CounterpartyResponse struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Name           string    `json:"name"`
	TaxID          string    `json:"tax_id"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	PaymentTerm    string    `json:"payment_term"`
	CreditDays     int       `json:"credit_days"`
	RunningBalance string    `json:"running_balance"`
	Active         bool      `json:"active"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToCounterpartyResponse converts a domain counterparty to its API representation
func ToCounterpartyResponse(cp *partner.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		ID:             cp.ID,
		Type:           string(cp.Type),
		Name:           cp.Name,
		TaxID:          cp.TaxID,
		Phone:          cp.Phone,
		Address:        cp.Address,
		PaymentTerm:    string(cp.PaymentTerm),
		CreditDays:     cp.CreditDays,
		RunningBalance: cp.RunningBalance.String(),
		Active:         cp.Active,
		Version:        cp.Version,
		CreatedAt:      cp.CreatedAt,
		UpdatedAt:      cp.UpdatedAt,
	}
}

// ToCounterpartyResponses converts a list of counterparties
func ToCounterpartyResponses(cps []partner.Counterparty) []CounterpartyResponse {
	responses := make([]CounterpartyResponse, len(cps))
	for i := range cps {
		responses[i] = ToCounterpartyResponse(&cps[i])
	}
	return responses
}

// BalanceEntryResponse represents one running-balance change in API responses
type BalanceEntryResponse struct {
	ID            uuid.UUID `json:"id"`
	EntryType     string    `json:"entry_type"`
	Amount        string    `json:"amount"`
	BalanceBefore string    `json:"balance_before"`
	BalanceAfter  string    `json:"balance_after"`
	SourceType    string    `json:"source_type"`
	SourceID      uuid.UUID `json:"source_id"`
	EntryDate     time.Time `json:"entry_date"`
}

// ToBalanceEntryResponse converts a domain balance entry
func ToBalanceEntryResponse(e *partner.BalanceEntry) BalanceEntryResponse {
	return BalanceEntryResponse{
		ID:            e.ID,
		EntryType:     e.EntryType.String(),
		Amount:        e.Amount.String(),
		BalanceBefore: e.BalanceBefore.String(),
		BalanceAfter:  e.BalanceAfter.String(),
		SourceType:    e.Source.DocumentType,
		SourceID:      e.Source.DocumentID,
		EntryDate:     e.EntryDate,
	}
}

// ToBalanceEntryResponses converts a list of balance entries
func ToBalanceEntryResponses(entries []partner.BalanceEntry) []BalanceEntryResponse {
	responses := make([]BalanceEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToBalanceEntryResponse(&entries[i])
	}
	return responses
}
