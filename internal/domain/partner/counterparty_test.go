package partner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

func TestNewCounterparty(t *testing.T) {
	cp, err := NewCounterparty(CounterpartyTypeCustomer, "Almacen Don Jorge", PaymentTermRunningAccount, 30)
	require.NoError(t, err)

	assert.Equal(t, CounterpartyTypeCustomer, cp.Type)
	assert.Equal(t, 30, cp.CreditDays)
	assert.True(t, cp.RunningBalance.IsZero())
	assert.True(t, cp.Active)
	assert.Len(t, cp.GetDomainEvents(), 1)
}

func TestNewCounterparty_PaymentTermCoherence(t *testing.T) {
	tests := []struct {
		name       string
		term       PaymentTerm
		creditDays int
		wantErr    bool
	}{
		{"cash with zero days", PaymentTermCash, 0, false},
		{"cash with credit days rejected", PaymentTermCash, 15, true},
		{"running account with days", PaymentTermRunningAccount, 30, false},
		{"running account without days rejected", PaymentTermRunningAccount, 0, true},
		{"running account negative days rejected", PaymentTermRunningAccount, -5, true},
		{"unknown term rejected", PaymentTerm("deferred"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCounterparty(CounterpartyTypeCustomer, "Test", tt.term, tt.creditDays)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCounterparty_ChangePaymentTerm(t *testing.T) {
	cp, err := NewCounterparty(CounterpartyTypeCustomer, "Test", PaymentTermCash, 0)
	require.NoError(t, err)

	assert.Error(t, cp.ChangePaymentTerm(PaymentTermRunningAccount, 0))

	require.NoError(t, cp.ChangePaymentTerm(PaymentTermRunningAccount, 15))
	assert.Equal(t, 15, cp.CreditDays)
}

func TestCounterparty_ChargeAndCredit(t *testing.T) {
	cp, err := NewCounterparty(CounterpartyTypeCustomer, "Test", PaymentTermRunningAccount, 30)
	require.NoError(t, err)

	source := NewSourceRef("Sale", uuid.New())

	entry, err := cp.Charge(valueobject.NewMoneyFromFloat(300), BalanceEntryTypeSale, source)
	require.NoError(t, err)
	assert.Equal(t, "300.00", cp.RunningBalance.String())
	assert.Equal(t, "0.00", entry.BalanceBefore.String())
	assert.Equal(t, "300.00", entry.BalanceAfter.String())
	assert.True(t, entry.IsIncrease())

	entry, err = cp.Credit(valueobject.NewMoneyFromFloat(120), BalanceEntryTypeCollection, source)
	require.NoError(t, err)
	assert.Equal(t, "180.00", cp.RunningBalance.String())
	assert.True(t, entry.IsDecrease())

	// the balance is signed and may go below zero
	_, err = cp.Credit(valueobject.NewMoneyFromFloat(500), BalanceEntryTypeCollection, source)
	require.NoError(t, err)
	assert.Equal(t, "-320.00", cp.RunningBalance.String())

	_, err = cp.Charge(valueobject.NewMoneyFromFloat(10), BalanceEntryType("BONUS"), source)
	assert.Error(t, err)
}

func TestCounterparty_DueDate(t *testing.T) {
	cp, err := NewCounterparty(CounterpartyTypeCustomer, "Test", PaymentTermRunningAccount, 30)
	require.NoError(t, err)

	docDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), cp.DueDate(docDate))

	cash, err := NewCounterparty(CounterpartyTypeSupplier, "Cash supplier", PaymentTermCash, 0)
	require.NoError(t, err)
	assert.Equal(t, docDate, cash.DueDate(docDate))
}

func TestCounterparty_ActivateDeactivate(t *testing.T) {
	cp, err := NewCounterparty(CounterpartyTypeSupplier, "Distribuidora Sur", PaymentTermCash, 0)
	require.NoError(t, err)

	assert.Error(t, cp.Activate())
	require.NoError(t, cp.Deactivate())
	assert.Error(t, cp.Deactivate())
	require.NoError(t, cp.Activate())
}
