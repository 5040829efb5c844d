package valueobject

import "github.com/shopspring/decimal"

// LineTotal computes quantity times unit price for a document line,
// rounded half-up to two decimal places
func LineTotal(quantity int64, unitPrice Money) Money {
	return NewMoney(unitPrice.Amount().Mul(decimal.NewFromInt(quantity)))
}

// Sum adds a list of amounts
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
