package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrConfiguration marks a bracket table or rule set that cannot be used for calculation.
var ErrConfiguration = errors.New("invalid tax configuration")

// BracketRow is one line of a published progressive tax table.
//
// MaxThreshold is the upper bound of taxable income for the bracket,
// RateAtThreshold the average rate paid by someone earning exactly MaxThreshold,
// and MarginalRate the rate applied to income between the previous row's
// MaxThreshold and this one.
type BracketRow struct {
	MinThreshold    decimal.Decimal `yaml:"min" json:"min"`
	MaxThreshold    decimal.Decimal `yaml:"max" json:"max"`
	MarginalRate    decimal.Decimal `yaml:"marginal_rate" json:"marginal_rate"`
	RateAtThreshold decimal.Decimal `yaml:"average_rate" json:"average_rate"`
}

// BracketTable is an immutable, threshold-ordered bracket table shared by every calculator.
type BracketTable struct {
	name string
	rows []BracketRow
}

// NewBracketTable validates rows and returns a table that owns a private copy of them.
// Thresholds must be strictly increasing and at least two rows are required, since the
// marginal rate of a bracket is always read from the row after it.
func NewBracketTable(name string, rows []BracketRow) (*BracketTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: bracket table %q needs at least 2 rows, got %d", ErrConfiguration, name, len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if !rows[i].MaxThreshold.GreaterThan(rows[i-1].MaxThreshold) {
			return nil, fmt.Errorf("%w: bracket table %q is not strictly ascending at row %d (%s after %s)",
				ErrConfiguration, name, i, rows[i].MaxThreshold, rows[i-1].MaxThreshold)
		}
	}
	for i, r := range rows {
		if r.MarginalRate.IsNegative() || r.RateAtThreshold.IsNegative() {
			return nil, fmt.Errorf("%w: bracket table %q has a negative rate at row %d", ErrConfiguration, name, i)
		}
	}
	cp := make([]BracketRow, len(rows))
	copy(cp, rows)
	return &BracketTable{name: name, rows: cp}, nil
}

// Name identifies where the table was loaded from.
func (t *BracketTable) Name() string { return t.name }

// Len returns the number of rows.
func (t *BracketTable) Len() int { return len(t.rows) }

// Row returns row i. It panics when i is out of range, like a slice index.
func (t *BracketTable) Row(i int) BracketRow { return t.rows[i] }

// Threshold returns the MaxThreshold of row i.
func (t *BracketTable) Threshold(i int) decimal.Decimal { return t.rows[i].MaxThreshold }

// Rows returns a copy of the table rows.
func (t *BracketTable) Rows() []BracketRow {
	cp := make([]BracketRow, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Lowest returns the smallest threshold; taxable bases at or below it cannot be looked up.
func (t *BracketTable) Lowest() decimal.Decimal { return t.rows[0].MaxThreshold }

// Highest returns the largest threshold; taxable bases above it cannot be looked up.
func (t *BracketTable) Highest() decimal.Decimal { return t.rows[len(t.rows)-1].MaxThreshold }
