package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrConfiguration is returned when the bracket table or rules are missing or unusable.
var ErrConfiguration = domain.ErrConfiguration

// ErrBracketLookup is returned when a taxable base falls outside the bracket table.
var ErrBracketLookup = errors.New("taxable base outside bracket table")

// BracketLookupError carries the base that could not be placed and the table's range.
type BracketLookupError struct {
	Base    decimal.Decimal
	Lowest  decimal.Decimal
	Highest decimal.Decimal
}

func (e *BracketLookupError) Error() string {
	if e.Base.LessThanOrEqual(e.Lowest) {
		return fmt.Sprintf("%s: %s is not above the lowest threshold %s", ErrBracketLookup, e.Base.StringFixed(2), e.Lowest.StringFixed(2))
	}
	return fmt.Sprintf("%s: %s exceeds the highest threshold %s", ErrBracketLookup, e.Base.StringFixed(2), e.Highest.StringFixed(2))
}

func (e *BracketLookupError) Unwrap() error { return ErrBracketLookup }
