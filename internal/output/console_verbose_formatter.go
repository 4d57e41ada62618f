package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "IRS ESTIMATE: %s\n", householdTitle(report))
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(report.Members) > 1 {
		fmt.Fprintln(&buf, "FILING SEPARATELY")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		for _, m := range report.Members {
			fmt.Fprintf(&buf, "%s\n", m.Name)
			writeIncome(&buf, m.IncomeA, m.IncomeB, m.TaxWithheld)
			if m.Estimate == nil {
				fmt.Fprintf(&buf, "  Not computable:       %s\n", m.Error)
				continue
			}
			writeEstimate(&buf, *m.Estimate)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "FILING JOINTLY (%d %s)\n", report.Joint.HouseholdSize, plural(report.Joint.HouseholdSize, "person", "people"))
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	totals := SumMembers(report)
	writeIncome(&buf, totals.IncomeA, totals.IncomeB, totals.TaxWithheld)
	writeEstimate(&buf, report.Joint)

	if s := DescribeRecommendation(report); s != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "RECOMMENDATION: %s\n", s)
	}
	return buf.Bytes(), nil
}

func writeIncome(w io.Writer, a, b, withheld decimal.Decimal) {
	fmt.Fprintf(w, "  Category A income:    %s\n", FormatCurrency(a))
	fmt.Fprintf(w, "  Category B income:    %s\n", FormatCurrency(b))
	fmt.Fprintf(w, "  Tax withheld:         %s\n", FormatCurrency(withheld))
}

func writeEstimate(w io.Writer, e domain.Estimate) {
	fmt.Fprintf(w, "  Taxable base/person:  %s\n", FormatCurrency(e.TaxableBase))
	fmt.Fprintf(w, "  Bracket:              %d (cap %s, average %s, marginal %s)\n",
		e.BracketIndex, FormatCurrency(e.BracketCap), FormatPercentage(e.AverageRate), FormatPercentage(e.MarginalRate))
	fmt.Fprintf(w, "  Tax due:              %s\n", FormatCurrency(e.HouseholdTax))
	fmt.Fprintf(w, "  Result:               %s\n", FormatPayable(e))
}

func householdTitle(report *domain.EstimateReport) string {
	if report.Household == "" {
		return "(unnamed household)"
	}
	return report.Household
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
