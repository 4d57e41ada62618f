package config

import (
	"fmt"
	"os"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of household input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Household, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	household, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return household, nil
}

// Parse decodes and validates household YAML.
func (ip *InputParser) Parse(data []byte) (*domain.Household, error) {
	var household domain.Household
	if err := yaml.Unmarshal(data, &household); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateHousehold(&household); err != nil {
		return nil, fmt.Errorf("household validation failed: %w", err)
	}
	return &household, nil
}

// ValidateHousehold validates the loaded household
func (ip *InputParser) ValidateHousehold(h *domain.Household) error {
	if len(h.Members) == 0 {
		return fmt.Errorf("no members provided")
	}
	if h.Rules != nil {
		if err := h.Rules.Validate(); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
	}

	seen := make(map[string]bool, len(h.Members))
	for i := range h.Members {
		m := &h.Members[i]
		if m.Name == "" {
			return fmt.Errorf("member %d: name is required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("member %s is listed twice", m.Name)
		}
		seen[m.Name] = true
		if err := ip.validateMember(m); err != nil {
			return fmt.Errorf("member %s validation failed: %w", m.Name, err)
		}
	}
	return nil
}

// validateMember checks categories and withholding fractions. Amounts may be negative
// so that corrections can be entered.
func (ip *InputParser) validateMember(m *domain.Member) error {
	for i, p := range m.Previous {
		if err := validateCategory(p.Category); err != nil {
			return fmt.Errorf("previous[%d]: %w", i, err)
		}
	}
	for i, e := range m.Expected {
		if err := validateCategory(e.Category); err != nil {
			return fmt.Errorf("expected[%d]: %w", i, err)
		}
		if e.DeductionFraction.LessThan(decimal.Zero) || e.DeductionFraction.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("expected[%d]: deduction fraction must be between 0 and 1", i)
		}
	}
	return nil
}

func validateCategory(c domain.IncomeCategory) error {
	switch c {
	case domain.CategoryA, domain.CategoryB:
		return nil
	case "":
		return fmt.Errorf("category is required")
	}
	return fmt.Errorf("unknown income category %q", c)
}

// CreateExampleHousehold returns a two-member household suitable as a starting template.
func (ip *InputParser) CreateExampleHousehold() *domain.Household {
	rules := domain.DefaultTaxRules()
	return &domain.Household{
		Name:  "Example household",
		Table: "data/tabela_irs.csv",
		Rules: &rules,
		Members: []domain.Member{
			{
				Name: "Ana",
				Previous: []domain.PreviousIncome{
					{Category: domain.CategoryA, Gained: decimal.NewFromInt(10000), Deducted: decimal.NewFromInt(2000)},
				},
				Expected: []domain.ExpectedIncome{
					{Category: domain.CategoryB, MonthlyGain: decimal.NewFromInt(1500), DeductionFraction: decimal.NewFromFloat(0.2)},
				},
			},
			{
				Name: "Rui",
				Previous: []domain.PreviousIncome{
					{Category: domain.CategoryB, Gained: decimal.NewFromInt(10000), Deducted: decimal.NewFromInt(3000)},
				},
			},
		},
	}
}

// MarshalHousehold renders a household in the format LoadFromFile reads.
func MarshalHousehold(h *domain.Household) ([]byte, error) {
	return yaml.Marshal(h)
}
