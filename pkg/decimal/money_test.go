package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoneyFromDecimal(stddec.RequireFromString("12.345"))
	if m.String() != "12.35" { // rounded for display
		t.Fatalf("display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"7703", "7703"},
		{" 0.13 ", "0.13"},
		{"0,145", "0.145"},
		{"14,5%", "0.145"},
		{"48%", "0.48"},
		{"-12.5", "-12.5"},
	}
	for _, c := range cases {
		got, err := ParseNumber(c.in)
		if err != nil {
			t.Fatalf("ParseNumber(%q) unexpected error: %v", c.in, err)
		}
		if !got.Equal(stddec.RequireFromString(c.out)) {
			t.Fatalf("ParseNumber(%q) got %s want %s", c.in, got, c.out)
		}
	}

	for _, bad := range []string{"", "abc", "1.234,56", "€10", "1,2,3"} {
		if _, err := ParseNumber(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"-2.345", "-2.35"},
		{"738.352", "738.35"},
	}
	for _, c := range cases {
		m := NewMoneyFromDecimal(stddec.RequireFromString(c.in))
		if got := m.Round().String(); got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestStringAndFormat(t *testing.T) {
	m := NewMoneyFromDecimal(stddec.RequireFromString("1234.5"))
	if got := m.String(); got != "1234.50" {
		t.Fatalf("String got %s", got)
	}
	if got := m.Format(); got != "1234.50 €" {
		t.Fatalf("Format got %s", got)
	}
	if got := NewMoneyFromDecimal(stddec.NewFromInt(-12)).Format(); got != "-12.00 €" {
		t.Fatalf("Format negative got %s", got)
	}
}

func TestRate(t *testing.T) {
	if got := Rate(stddec.RequireFromString("0.145"), 1); got != "14.5%" {
		t.Fatalf("Rate got %s", got)
	}
	if got := Rate(stddec.RequireFromString("0.29982"), 3); got != "29.982%" {
		t.Fatalf("Rate got %s", got)
	}
}
