package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/irs-calculator/internal/calculation"
	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/rpgo/irs-calculator/internal/tables"
	money "github.com/rpgo/irs-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// bracket_trace prints, for each taxable base given on the command line, the bracket
// row the lookup selects and the tax it produces for a single person.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: bracket_trace <table> <base> [base...]")
		return
	}
	table, err := tables.Load(context.Background(), os.Args[1])
	if err != nil {
		panic(err)
	}
	// no exemption, so the category A income is the taxable base itself
	rules := domain.TaxRules{ExemptThreshold: decimal.Zero, CategoryBTaxableShare: domain.DefaultCategoryBTaxableShare}

	fmt.Printf("%-14s %5s %14s %9s %9s %14s\n", "base", "row", "cap", "average", "marginal", "tax")
	for _, arg := range os.Args[2:] {
		base, err := money.ParseNumber(arg)
		if err != nil {
			panic(err)
		}
		c, err := calc.NewTaxCalculator(table, rules)
		if err != nil {
			panic(err)
		}
		if err := c.AddPreviousIncome(domain.CategoryA, base, decimal.Zero); err != nil {
			panic(err)
		}
		est, err := c.CalculatePayableTax()
		if err != nil {
			fmt.Printf("%-14s %v\n", arg, err)
			continue
		}
		fmt.Printf("%-14s %5d %14s %9s %9s %14s\n", base.String(), est.BracketIndex, est.BracketCap.StringFixed(2),
			money.Rate(est.AverageRate, 3), money.Rate(est.MarginalRate, 3), est.HouseholdTax.StringFixed(4))
	}
}
