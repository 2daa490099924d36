package fifotax

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency of every amount computed by this
// package. Quotes in other currencies are converted before they reach it.
const ReportingCurrency = "EUR"

// Money represents a monetary value, for display.
//
// Computations are done in float64 like the export they come from, Money
// only rounds and formats the result.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// EUR creates a Money value in the reporting currency.
func EUR(value float64) Money {
	return Money{value: decimal.NewFromFloat(value), cur: ReportingCurrency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, rounded to
// the currency's fraction.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}
