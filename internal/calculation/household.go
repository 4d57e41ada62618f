package calculation

import (
	"fmt"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// HouseholdEngine turns household input into an estimate report. It holds only the
// shared table and a logger, so one engine can serve many goroutines.
type HouseholdEngine struct {
	Table  *domain.BracketTable
	Logger Logger
	// Options are passed to every calculator the engine creates.
	Options []Option
}

// NewHouseholdEngine creates an engine over a loaded bracket table.
func NewHouseholdEngine(table *domain.BracketTable, logger Logger) *HouseholdEngine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &HouseholdEngine{Table: table, Logger: logger}
}

// NewMemberCalculator builds a calculator holding every income record of one member.
func (he *HouseholdEngine) NewMemberCalculator(m domain.Member, rules domain.TaxRules) (*TaxCalculator, error) {
	opts := append([]Option{WithLogger(he.Logger)}, he.Options...)
	calc, err := NewTaxCalculator(he.Table, rules, opts...)
	if err != nil {
		return nil, err
	}
	for i, p := range m.Previous {
		if err := calc.AddPreviousIncome(p.Category, p.Gained, p.Deducted); err != nil {
			return nil, fmt.Errorf("member %s previous[%d]: %w", m.Name, i, err)
		}
	}
	for i, e := range m.Expected {
		if err := calc.AddExpectedIncome(e.Category, e.MonthlyGain, e.DeductionFraction); err != nil {
			return nil, fmt.Errorf("member %s expected[%d]: %w", m.Name, i, err)
		}
	}
	return calc, nil
}

// Run estimates the household filing jointly, and each member filing alone.
// A member whose separate base falls outside the table is reported with an error
// instead of failing the report; the joint estimate must succeed.
// A household with no taxable income has a joint base of zero, which is below every
// table row, so Run fails with ErrBracketLookup.
func (he *HouseholdEngine) Run(h *domain.Household) (*domain.EstimateReport, error) {
	if h == nil || len(h.Members) == 0 {
		return nil, fmt.Errorf("household has no members")
	}
	rules := h.EffectiveRules()

	calcs := make([]*TaxCalculator, 0, len(h.Members))
	for _, m := range h.Members {
		calc, err := he.NewMemberCalculator(m, rules)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}

	members := lo.Map(h.Members, func(m domain.Member, i int) domain.MemberEstimate {
		calc := calcs[i]
		me := domain.MemberEstimate{
			Name:        m.Name,
			IncomeA:     calc.Income(domain.CategoryA),
			IncomeB:     calc.Income(domain.CategoryB),
			TaxWithheld: calc.TaxWithheld(),
		}
		est, err := calc.CalculatePayableTax()
		if err != nil {
			me.Error = err.Error()
			return me
		}
		me.Estimate = &est
		return me
	})

	joint, err := Combine(calcs...)
	if err != nil {
		return nil, err
	}
	jointEst, err := joint.CalculatePayableTax()
	if err != nil {
		return nil, fmt.Errorf("household %s: %w", h.Name, err)
	}
	he.Logger.Infof("household %s (%d members): payable %s", h.Name, jointEst.HouseholdSize, jointEst.Payable.StringFixed(2))

	report := &domain.EstimateReport{
		Household:       h.Name,
		TableName:       he.Table.Name(),
		GeneratedAt:     nowFunc(),
		TaxYear:         joint.TaxYear(),
		RemainingMonths: joint.RemainingMonths(),
		Rules:           rules,
		Members:         members,
		Joint:           jointEst,
	}
	if len(members) > 1 {
		report.Recommendation = RecommendFiling(jointEst, members)
	}
	return report, nil
}

// RecommendFiling compares joint filing against the sum of separate filings.
// It returns nil when any member has no separate estimate.
func RecommendFiling(joint domain.Estimate, members []domain.MemberEstimate) *domain.FilingRecommendation {
	if lo.SomeBy(members, func(m domain.MemberEstimate) bool { return m.Estimate == nil }) {
		return nil
	}
	separate := lo.Reduce(members, func(sum decimal.Decimal, m domain.MemberEstimate, _ int) decimal.Decimal {
		return sum.Add(m.Estimate.Payable)
	}, decimal.Zero)

	rec := &domain.FilingRecommendation{
		Filing:        "joint",
		JointPayable:  joint.Payable,
		SeparateTotal: separate,
		Savings:       separate.Sub(joint.Payable),
	}
	if separate.LessThan(joint.Payable) {
		rec.Filing = "separate"
		rec.Savings = joint.Payable.Sub(separate)
	}
	return rec
}
