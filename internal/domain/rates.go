package domain

import "github.com/shopspring/decimal"

// RateTable holds one snapshot of exchange rates, all quoted against Base:
// Rates[c] is how many units of c equal one unit of Base. Cross rates
// between two non-base currencies fall out of the quotient, so one table
// covers every pair the dashboard can ask for.
type RateTable struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// Convert re-expresses amount from one currency in another. Multiplication
// happens before division so amounts that convert evenly stay exact. The
// second return is false when the table cannot serve the pair.
func (rt RateTable) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return amount, true
	}
	rFrom, ok := rt.lookup(from)
	if !ok {
		return decimal.Decimal{}, false
	}
	rTo, ok := rt.lookup(to)
	if !ok {
		return decimal.Decimal{}, false
	}
	if rFrom.IsZero() {
		return decimal.Decimal{}, false
	}
	return amount.Mul(rTo).Div(rFrom), true
}

func (rt RateTable) lookup(code string) (decimal.Decimal, bool) {
	if v, ok := rt.Rates[code]; ok {
		return v, true
	}
	// providers sometimes omit the base from its own table
	if code == rt.Base {
		return decimal.NewFromInt(1), true
	}
	return decimal.Decimal{}, false
}
