package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a euro amount kept at full precision until it is rounded for display.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// ParseNumber reads a plain number as published in tax tables: surrounding spaces are
// ignored, a decimal comma is accepted ("0,145") and a trailing "%" divides by 100.
// Thousands separators and currency symbols are not accepted.
func ParseNumber(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	percent := strings.HasSuffix(v, "%")
	v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	if strings.Count(v, ",") == 1 && !strings.Contains(v, ".") {
		v = strings.Replace(v, ",", ".", 1)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	if percent {
		d = d.Div(decimal.NewFromInt(100))
	}
	return d, nil
}

// Round rounds to cents, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the amount with exactly two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount the way the reports print it, e.g. "1234.50 €" or "-12.00 €".
func (m Money) Format() string {
	return m.String() + " €"
}

// Rate renders a fraction as a percentage with the given number of decimals.
func Rate(fraction decimal.Decimal, places int32) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}
