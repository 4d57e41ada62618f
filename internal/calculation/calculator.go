package calculation

import (
	"fmt"
	"time"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/rpgo/irs-calculator/pkg/dateutil"
	money "github.com/rpgo/irs-calculator/pkg/decimal"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// State tells whether the memoized estimate reflects the current totals.
type State int

const (
	// Accumulating means income was added (or nothing computed yet) since the last estimate.
	Accumulating State = iota
	// Computed means LastEstimate matches the current totals.
	Computed
)

func (s State) String() string {
	if s == Computed {
		return "computed"
	}
	return "accumulating"
}

// TaxCalculator accumulates one person's (or one household's) income for the current
// tax year and computes the payable tax against a shared bracket table.
//
// A TaxCalculator is not safe for concurrent mutation. The bracket table it reads
// is immutable and may be shared freely.
type TaxCalculator struct {
	table  *domain.BracketTable
	rules  domain.TaxRules
	logger Logger

	taxYear         int
	remainingMonths int
	taxWithheld     decimal.Decimal
	householdSize   int
	incomeA         decimal.Decimal
	incomeB         decimal.Decimal

	last  *domain.Estimate
	state State
}

// Option configures a TaxCalculator.
type Option func(*calculatorOptions)

type calculatorOptions struct {
	logger Logger
	now    func() time.Time
}

// WithLogger sets the logger used for calculation traces.
func WithLogger(l Logger) Option {
	return func(o *calculatorOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the clock used to derive the remaining months.
func WithClock(now func() time.Time) Option {
	return func(o *calculatorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewTaxCalculator creates a calculator for a single individual.
func NewTaxCalculator(table *domain.BracketTable, rules domain.TaxRules, opts ...Option) (*TaxCalculator, error) {
	if table == nil || table.Len() < 2 {
		return nil, fmt.Errorf("%w: bracket table is not loaded", ErrConfiguration)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	o := calculatorOptions{logger: NopLogger{}, now: nowFunc}
	for _, opt := range opts {
		opt(&o)
	}
	now := o.now()
	return &TaxCalculator{
		table:           table,
		rules:           rules,
		logger:          o.logger,
		taxYear:         dateutil.TaxYear(now),
		remainingMonths: remainingMonthsAt(now),
		householdSize:   1,
	}, nil
}

// AddPreviousIncome records income already received in category and tax already withheld on it.
// Signs are not checked; corrections can be entered as negative amounts.
func (c *TaxCalculator) AddPreviousIncome(category domain.IncomeCategory, gained, deducted decimal.Decimal) error {
	if err := c.addToCategory(category, gained); err != nil {
		return err
	}
	c.taxWithheld = c.taxWithheld.Add(deducted)
	return nil
}

// AddExpectedIncome projects monthlyGain over the remaining months of the year and
// withholds deductionFraction of it.
func (c *TaxCalculator) AddExpectedIncome(category domain.IncomeCategory, monthlyGain, deductionFraction decimal.Decimal) error {
	expected := monthlyGain.Mul(decimal.NewFromInt(int64(c.remainingMonths)))
	if err := c.addToCategory(category, expected); err != nil {
		return err
	}
	c.taxWithheld = c.taxWithheld.Add(expected.Mul(deductionFraction))
	return nil
}

func (c *TaxCalculator) addToCategory(category domain.IncomeCategory, amount decimal.Decimal) error {
	switch category {
	case domain.CategoryA:
		c.incomeA = c.incomeA.Add(amount)
	case domain.CategoryB:
		c.incomeB = c.incomeB.Add(amount)
	default:
		return fmt.Errorf("unknown income category %q", category)
	}
	c.state = Accumulating
	return nil
}

// Merge returns a new calculator for the joint household of c and other.
// Neither operand is modified. Household sizes add up, so merging households that
// were themselves merged counts every person once.
// The result uses c's table, rules and year position; other's are not compared.
// Use Combine to reject members built on a different table or rules.
func (c *TaxCalculator) Merge(other *TaxCalculator) *TaxCalculator {
	joint := c.fresh()
	joint.taxWithheld = c.taxWithheld
	joint.incomeA = c.incomeA
	joint.incomeB = c.incomeB
	joint.householdSize = c.householdSize
	if other != nil {
		joint.taxWithheld = joint.taxWithheld.Add(other.taxWithheld)
		joint.incomeA = joint.incomeA.Add(other.incomeA)
		joint.incomeB = joint.incomeB.Add(other.incomeB)
		joint.householdSize += other.householdSize
	}
	return joint
}

// fresh returns an empty calculator sharing c's table, rules, logger and year position.
func (c *TaxCalculator) fresh() *TaxCalculator {
	return &TaxCalculator{
		table:           c.table,
		rules:           c.rules,
		logger:          c.logger,
		taxYear:         c.taxYear,
		remainingMonths: c.remainingMonths,
	}
}

// Combine builds the joint filing of all members. Members must share the same bracket
// table and the same tax rules.
func Combine(members ...*TaxCalculator) (*TaxCalculator, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("combine needs at least one member")
	}
	if lo.Contains(members, nil) {
		return nil, fmt.Errorf("combine: nil member")
	}
	table := members[0].table
	if lo.SomeBy(members, func(m *TaxCalculator) bool { return m.table != table }) {
		return nil, fmt.Errorf("%w: household members use different bracket tables", ErrConfiguration)
	}
	rules := members[0].rules
	if lo.SomeBy(members, func(m *TaxCalculator) bool { return !m.rules.Equal(rules) }) {
		return nil, fmt.Errorf("%w: household members use different tax rules", ErrConfiguration)
	}
	return lo.Reduce(members[1:], func(agg *TaxCalculator, m *TaxCalculator, _ int) *TaxCalculator {
		return agg.Merge(m)
	}, members[0].Merge(nil)), nil
}

// CalculatePayableTax computes the tax still payable (negative for a refund), rounded to cents.
// It always works from the current totals and records the result for LastEstimate.
func (c *TaxCalculator) CalculatePayableTax() (domain.Estimate, error) {
	size := decimal.NewFromInt(int64(c.householdSize))
	exempt := c.rules.ExemptThreshold.Mul(size)
	base := decimal.Max(c.incomeA.Sub(exempt), decimal.Zero).Add(c.rules.CategoryBTaxableShare.Mul(c.incomeB))
	perPerson := base.Div(size)

	perPersonTax, i, err := progressiveTax(c.table, perPerson)
	if err != nil {
		c.logger.Warnf("bracket lookup failed for household of %d: %v", c.householdSize, err)
		return domain.Estimate{}, err
	}
	householdTax := perPersonTax.Mul(size)
	row := c.table.Row(i)

	est := domain.Estimate{
		Payable:       money.NewMoneyFromDecimal(householdTax.Sub(c.taxWithheld)).Round().Decimal,
		TaxableBase:   perPerson,
		PerPersonTax:  perPersonTax,
		HouseholdTax:  householdTax,
		TaxWithheld:   c.taxWithheld,
		HouseholdSize: c.householdSize,
		BracketIndex:  i,
		BracketCap:    row.MaxThreshold,
		AverageRate:   row.RateAtThreshold,
		MarginalRate:  c.table.Row(i + 1).MarginalRate,
	}
	c.logger.Debugf("household of %d: base %s in bracket %d, tax %s, withheld %s, payable %s",
		c.householdSize, perPerson.StringFixed(2), i, householdTax.StringFixed(2), c.taxWithheld.StringFixed(2), est.Payable.StringFixed(2))

	c.last = &est
	c.state = Computed
	return est, nil
}

// LastEstimate returns the result of the most recent successful CalculatePayableTax.
func (c *TaxCalculator) LastEstimate() (domain.Estimate, bool) {
	if c.last == nil {
		return domain.Estimate{}, false
	}
	return *c.last, true
}

// TaxableBase is the per-person taxable base of the last estimate.
func (c *TaxCalculator) TaxableBase() decimal.Decimal {
	if c.last == nil {
		return decimal.Zero
	}
	return c.last.TaxableBase
}

// HouseholdTax is the gross household tax of the last estimate.
func (c *TaxCalculator) HouseholdTax() decimal.Decimal {
	if c.last == nil {
		return decimal.Zero
	}
	return c.last.HouseholdTax
}

// State reports whether LastEstimate is current.
func (c *TaxCalculator) State() State { return c.state }

// TaxYear is the year the calculator was created in.
func (c *TaxCalculator) TaxYear() int { return c.taxYear }

// RemainingMonths is the number of months, current one included, left in the tax year.
func (c *TaxCalculator) RemainingMonths() int { return c.remainingMonths }

// TaxWithheld is the cumulative tax already withheld.
func (c *TaxCalculator) TaxWithheld() decimal.Decimal { return c.taxWithheld }

// HouseholdSize is the number of individuals aggregated into c.
func (c *TaxCalculator) HouseholdSize() int { return c.householdSize }

// Income returns the cumulative income of a category; unknown categories report zero.
func (c *TaxCalculator) Income(category domain.IncomeCategory) decimal.Decimal {
	switch category {
	case domain.CategoryA:
		return c.incomeA
	case domain.CategoryB:
		return c.incomeB
	}
	return decimal.Zero
}

// Table returns the bracket table the calculator reads.
func (c *TaxCalculator) Table() *domain.BracketTable { return c.table }
