package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/lupon/backend/internal/domain/shared"
	"github.com/lupon/backend/internal/domain/shared/valueobject"
)

// PriceRounding selects how derived sale prices are rounded.
type PriceRounding string

const (
	// PriceRoundingHalfUp rounds derived prices half-up to two decimals.
	// This is the canonical policy.
	PriceRoundingHalfUp PriceRounding = "half_up"
	// PriceRoundingUp500 rounds derived prices up to the next multiple of 500.
	PriceRoundingUp500 PriceRounding = "up_500"
)

// IsValid checks if the rounding policy is a valid value
func (r PriceRounding) IsValid() bool {
	return r == PriceRoundingHalfUp || r == PriceRoundingUp500
}

// Fixed markup multipliers over the purchase price
var (
	retailMultiplier             = decimal.NewFromFloat(1.15)
	wholesaleMultiplier          = decimal.NewFromFloat(1.10)
	promotionalMultiplier        = decimal.NewFromFloat(1.12)
	wholesaleExclusiveMultiplier = decimal.NewFromFloat(1.08)

	roundingStep = decimal.NewFromInt(500)
)

// PriceSet holds the sale prices derived from a purchase price
type PriceSet struct {
	Retail             valueobject.Money
	Wholesale          valueobject.Money
	Promotional        valueobject.Money
	WholesaleExclusive valueobject.Money
}

// DerivePrices computes the sale prices for a purchase price under the
// given rounding policy. Pure function, total for any non-negative input.
func DerivePrices(purchasePrice valueobject.Money, rounding PriceRounding) PriceSet {
	round := func(m valueobject.Money) valueobject.Money {
		if rounding == PriceRoundingUp500 {
			return m.RoundUpToStep(roundingStep)
		}
		return m
	}
	return PriceSet{
		Retail:             round(purchasePrice.Mul(retailMultiplier)),
		Wholesale:          round(purchasePrice.Mul(wholesaleMultiplier)),
		Promotional:        round(purchasePrice.Mul(promotionalMultiplier)),
		WholesaleExclusive: round(purchasePrice.Mul(wholesaleExclusiveMultiplier)),
	}
}

func validatePriceRounding(rounding PriceRounding) error {
	if !rounding.IsValid() {
		return shared.NewDomainError("INVALID_ROUNDING_POLICY", "Price rounding policy must be half_up or up_500")
	}
	return nil
}
