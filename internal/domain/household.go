package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Household is one input file: the people filing together and their income records.
type Household struct {
	Name    string    `yaml:"name" json:"name"`
	Table   string    `yaml:"table,omitempty" json:"table,omitempty"`
	Rules   *TaxRules `yaml:"rules,omitempty" json:"rules,omitempty"`
	Members []Member  `yaml:"members" json:"members"`
}

// Member is a single individual of a household.
type Member struct {
	Name     string           `yaml:"name" json:"name"`
	Previous []PreviousIncome `yaml:"previous,omitempty" json:"previous,omitempty"`
	Expected []ExpectedIncome `yaml:"expected,omitempty" json:"expected,omitempty"`
}

// PreviousIncome is income already received this year and the tax already withheld on it.
type PreviousIncome struct {
	Category IncomeCategory  `yaml:"category" json:"category"`
	Gained   decimal.Decimal `yaml:"gained" json:"gained"`
	Deducted decimal.Decimal `yaml:"deducted" json:"deducted"`
}

// ExpectedIncome is a recurring monthly income projected over the rest of the year.
type ExpectedIncome struct {
	Category          IncomeCategory  `yaml:"category" json:"category"`
	MonthlyGain       decimal.Decimal `yaml:"monthly_gain" json:"monthly_gain"`
	DeductionFraction decimal.Decimal `yaml:"deduction_fraction" json:"deduction_fraction"`
}

// EffectiveRules returns the household's rules or the defaults when none are given.
func (h *Household) EffectiveRules() TaxRules {
	if h.Rules == nil {
		return DefaultTaxRules()
	}
	return *h.Rules
}

// MemberEstimate is the separate-filing view of a single member.
type MemberEstimate struct {
	Name        string          `json:"name"`
	IncomeA     decimal.Decimal `json:"income_a"`
	IncomeB     decimal.Decimal `json:"income_b"`
	TaxWithheld decimal.Decimal `json:"tax_withheld"`
	Estimate    *Estimate       `json:"estimate,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// FilingRecommendation compares joint filing with every member filing alone.
type FilingRecommendation struct {
	Filing        string          `json:"filing"` // "joint" or "separate"
	JointPayable  decimal.Decimal `json:"joint_payable"`
	SeparateTotal decimal.Decimal `json:"separate_total"`
	Savings       decimal.Decimal `json:"savings"`
}

// EstimateReport is everything the formatters render for one household.
type EstimateReport struct {
	Household       string                `json:"household"`
	TableName       string                `json:"table"`
	GeneratedAt     time.Time             `json:"generated_at"`
	TaxYear         int                   `json:"tax_year"`
	RemainingMonths int                   `json:"remaining_months"`
	Rules           TaxRules              `json:"rules"`
	Members         []MemberEstimate      `json:"members"`
	Joint           Estimate              `json:"joint"`
	Recommendation  *FilingRecommendation `json:"recommendation,omitempty"`
}
