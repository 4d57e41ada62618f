package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rpgo/irs-calculator/internal/calculation"
	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/rpgo/irs-calculator/internal/tables"
	"github.com/rpgo/irs-calculator/pkg/dateutil"
	money "github.com/rpgo/irs-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// project_months shows how the same monthly salary projects into a different
// year-end result depending on the month the estimate is made in.
func main() {
	tablePath := "data/tabela_irs.csv"
	if len(os.Args) > 1 {
		tablePath = os.Args[1]
	}
	table, err := tables.Load(context.Background(), tablePath)
	if err != nil {
		panic(err)
	}

	monthly := decimal.NewFromInt(2000)
	withholding := decimal.NewFromFloat(0.15)
	year := time.Now().Year()

	fmt.Printf("Monthly category A salary %s, %s withheld\n", money.NewMoneyFromDecimal(monthly).Format(), money.Rate(withholding, 0))
	for m := time.January; m <= time.December; m++ {
		at := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		c, err := calculation.NewTaxCalculator(table, domain.DefaultTaxRules(), calculation.WithClock(func() time.Time { return at }))
		if err != nil {
			panic(err)
		}
		// months already paid
		elapsed := decimal.NewFromInt(int64(dateutil.ElapsedMonths(at)))
		if err := c.AddPreviousIncome(domain.CategoryA, monthly.Mul(elapsed), monthly.Mul(elapsed).Mul(withholding)); err != nil {
			panic(err)
		}
		if err := c.AddExpectedIncome(domain.CategoryA, monthly, withholding); err != nil {
			panic(err)
		}
		est, err := c.CalculatePayableTax()
		if err != nil {
			fmt.Printf("%-9s %v\n", m, err)
			continue
		}
		fmt.Printf("%-9s remaining=%2d income=%s payable=%s\n", m, c.RemainingMonths(),
			money.NewMoneyFromDecimal(c.Income(domain.CategoryA)).Format(), money.NewMoneyFromDecimal(est.Payable).Format())
	}
}
