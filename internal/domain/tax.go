package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// IncomeCategory distinguishes earned income from self-employment income.
type IncomeCategory string

const (
	// CategoryA is employment income, fully taxable above the exemption.
	CategoryA IncomeCategory = "A"
	// CategoryB is self-employment income, taxed on a fixed share.
	CategoryB IncomeCategory = "B"
)

// ParseIncomeCategory accepts "A"/"B" in any case, with or without a "cat" prefix.
func ParseIncomeCategory(s string) (IncomeCategory, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "CATEGORY")
	v = strings.TrimPrefix(v, "CAT")
	v = strings.TrimSpace(strings.TrimLeft(v, " _-"))
	switch IncomeCategory(v) {
	case CategoryA, CategoryB:
		return IncomeCategory(v), nil
	}
	return "", fmt.Errorf("unknown income category %q", s)
}

// UnmarshalYAML lets input files write the category in the relaxed forms ParseIncomeCategory accepts.
func (c *IncomeCategory) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseIncomeCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Statutory defaults. The exemption is the yearly minimum-subsistence amount
// derived from the monthly social support index (IAS).
var (
	DefaultIASMonthly            = decimal.NewFromFloat(438.81)
	DefaultExemptionFactor       = decimal.NewFromFloat(0.72)
	DefaultCategoryBTaxableShare = decimal.NewFromFloat(0.75)
)

// TaxRules holds the constants most likely to change from one tax year to the next.
type TaxRules struct {
	ExemptThreshold       decimal.Decimal `yaml:"exempt_threshold" json:"exempt_threshold"`
	CategoryBTaxableShare decimal.Decimal `yaml:"category_b_taxable_share" json:"category_b_taxable_share"`
}

// DefaultTaxRules returns the rules in force when nothing is configured.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		ExemptThreshold:       DefaultIASMonthly.Mul(decimal.NewFromInt(12)).Mul(DefaultExemptionFactor),
		CategoryBTaxableShare: DefaultCategoryBTaxableShare,
	}
}

// Equal reports whether both rules hold the same values.
func (r TaxRules) Equal(o TaxRules) bool {
	return r.ExemptThreshold.Equal(o.ExemptThreshold) && r.CategoryBTaxableShare.Equal(o.CategoryBTaxableShare)
}

// Validate checks the rules are usable.
func (r TaxRules) Validate() error {
	if r.ExemptThreshold.IsNegative() {
		return fmt.Errorf("%w: exempt threshold cannot be negative", ErrConfiguration)
	}
	if r.CategoryBTaxableShare.IsNegative() || r.CategoryBTaxableShare.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: category B taxable share must be between 0 and 1", ErrConfiguration)
	}
	return nil
}

// UnmarshalYAML fills omitted fields with the defaults, so a partial rules block only overrides what it names.
func (r *TaxRules) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		ExemptThreshold       *string `yaml:"exempt_threshold,omitempty"`
		CategoryBTaxableShare *string `yaml:"category_b_taxable_share,omitempty"`
	}
	var tmp Alias
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*r = DefaultTaxRules()
	if tmp.ExemptThreshold != nil {
		v, err := decimal.NewFromString(*tmp.ExemptThreshold)
		if err != nil {
			return fmt.Errorf("invalid exempt_threshold: %w", err)
		}
		r.ExemptThreshold = v
	}
	if tmp.CategoryBTaxableShare != nil {
		v, err := decimal.NewFromString(*tmp.CategoryBTaxableShare)
		if err != nil {
			return fmt.Errorf("invalid category_b_taxable_share: %w", err)
		}
		r.CategoryBTaxableShare = v
	}
	return nil
}

// Estimate is the outcome of one payable-tax computation.
type Estimate struct {
	// Payable is positive when tax is owed and negative when a refund is due.
	Payable       decimal.Decimal `json:"payable"`
	TaxableBase   decimal.Decimal `json:"taxable_base"` // per person
	PerPersonTax  decimal.Decimal `json:"per_person_tax"`
	HouseholdTax  decimal.Decimal `json:"household_tax"`
	TaxWithheld   decimal.Decimal `json:"tax_withheld"`
	HouseholdSize int             `json:"household_size"`

	BracketIndex int             `json:"bracket_index"`
	BracketCap   decimal.Decimal `json:"bracket_cap"`
	AverageRate  decimal.Decimal `json:"average_rate"`
	MarginalRate decimal.Decimal `json:"marginal_rate"`
}

// IsRefund reports whether more tax was withheld than is due.
func (e Estimate) IsRefund() bool { return e.Payable.IsNegative() }
