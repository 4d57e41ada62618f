package calculation

import (
	"sort"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// findBracket returns the index of the last row whose threshold is strictly below base.
// The row after it must exist because it supplies the marginal rate for the excess.
// A base equal to a threshold therefore belongs to the bracket above that threshold's row.
func findBracket(table *domain.BracketTable, base decimal.Decimal) (int, error) {
	n := table.Len()
	// first row not below base; thresholds are strictly ascending
	j := sort.Search(n, func(k int) bool { return table.Threshold(k).GreaterThanOrEqual(base) })
	i := j - 1
	if i < 0 || i+1 >= n {
		return -1, &BracketLookupError{Base: base, Lowest: table.Lowest(), Highest: table.Highest()}
	}
	return i, nil
}

// progressiveTax applies the table to a single person's taxable base.
// The part up to the bracket cap is taxed at the cap's average rate and the excess
// at the next row's marginal rate.
func progressiveTax(table *domain.BracketTable, base decimal.Decimal) (tax decimal.Decimal, i int, err error) {
	i, err = findBracket(table, base)
	if err != nil {
		return decimal.Zero, -1, err
	}
	row := table.Row(i)
	next := table.Row(i + 1)
	tax = row.RateAtThreshold.Mul(row.MaxThreshold).Add(next.MarginalRate.Mul(base.Sub(row.MaxThreshold)))
	return tax, i, nil
}
