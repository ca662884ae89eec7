package coinledger

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value for display in reports.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M creates a display value from a raw ledger number and a currency code.
func M(value float64, currency string) Money {
	return Money{value: decimal.NewFromFloat(value), cur: strings.ToUpper(currency)}
}

// currency returns the money's currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String renders the value with its currency formatter.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// AsFloat returns the raw value.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }
