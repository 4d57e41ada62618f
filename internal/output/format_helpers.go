package output

import (
	"strconv"

	"github.com/rpgo/irs-calculator/internal/domain"
	money "github.com/rpgo/irs-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as a euro amount with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a fraction (0.145) as a percentage with 2 decimals (14.50%).
func FormatPercentage(fraction decimal.Decimal) string { return money.Rate(fraction, 2) }

// FormatPayable labels a payable amount as tax owed or a refund.
func FormatPayable(e domain.Estimate) string {
	if e.IsRefund() {
		return "Refund " + FormatCurrency(e.Payable.Neg())
	}
	return "Owed " + FormatCurrency(e.Payable)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
