package model

import "github.com/shopspring/decimal"

// Money is a fixed-point amount that always serializes with two
// fractional digits, so 22.5 goes over the wire as "22.50". It embeds
// decimal.Decimal, keeping its arithmetic and database mapping.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal as a monetary amount
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
