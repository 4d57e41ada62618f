package output

import (
	"fmt"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// GenerateAssumptions lists the rules and projections behind a report, for the detailed outputs.
func GenerateAssumptions(report *domain.EstimateReport) []string {
	return []string{
		fmt.Sprintf("Tax year: %d", report.TaxYear),
		fmt.Sprintf("Bracket table: %s", report.TableName),
		fmt.Sprintf("Exempt threshold per person: %s", FormatCurrency(report.Rules.ExemptThreshold)),
		fmt.Sprintf("Category B taxable share: %s", FormatPercentage(report.Rules.CategoryBTaxableShare)),
		fmt.Sprintf("Expected monthly incomes projected over %d remaining months (including this one)", report.RemainingMonths),
		"Tax is computed per person on the household's average base and multiplied by household size",
	}
}
