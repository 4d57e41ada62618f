package output

import (
	"fmt"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Totals sums member incomes and withholding, for the joint rows of the reports.
type Totals struct {
	IncomeA     decimal.Decimal
	IncomeB     decimal.Decimal
	TaxWithheld decimal.Decimal
}

// SumMembers adds up the income of every member in the report.
func SumMembers(report *domain.EstimateReport) Totals {
	return lo.Reduce(report.Members, func(t Totals, m domain.MemberEstimate, _ int) Totals {
		return Totals{
			IncomeA:     t.IncomeA.Add(m.IncomeA),
			IncomeB:     t.IncomeB.Add(m.IncomeB),
			TaxWithheld: t.TaxWithheld.Add(m.TaxWithheld),
		}
	}, Totals{})
}

// DescribeRecommendation renders the filing recommendation as a sentence, or "" when there is none.
func DescribeRecommendation(report *domain.EstimateReport) string {
	rec := report.Recommendation
	if rec == nil {
		return ""
	}
	if rec.Savings.IsZero() {
		return fmt.Sprintf("Joint and separate filing cost the same (%s)", FormatCurrency(rec.JointPayable))
	}
	if rec.Filing == "separate" {
		return fmt.Sprintf("File separately: %s instead of %s jointly (saves %s)",
			FormatCurrency(rec.SeparateTotal), FormatCurrency(rec.JointPayable), FormatCurrency(rec.Savings))
	}
	return fmt.Sprintf("File jointly: %s instead of %s separately (saves %s)",
		FormatCurrency(rec.JointPayable), FormatCurrency(rec.SeparateTotal), FormatCurrency(rec.Savings))
}
