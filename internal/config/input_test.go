package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdYAML = `name: Silva
table: data/tabela_irs.csv
rules:
  category_b_taxable_share: 0.7
members:
  - name: Ana
    previous:
      - category: A
        gained: 10000
        deducted: 2000
    expected:
      - category: cat_b
        monthly_gain: 1500
        deduction_fraction: 0.25
  - name: Rui
    previous:
      - category: "Category B"
        gained: 8000
        deducted: 1500
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "household.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	h, err := parser.LoadFromFile(writeTemp(t, householdYAML))
	require.NoError(t, err)

	assert.Equal(t, "Silva", h.Name)
	assert.Equal(t, "data/tabela_irs.csv", h.Table)
	require.Len(t, h.Members, 2)

	ana := h.Members[0]
	require.Len(t, ana.Previous, 1)
	assert.Equal(t, domain.CategoryA, ana.Previous[0].Category)
	assert.True(t, ana.Previous[0].Gained.Equal(decimal.NewFromInt(10000)))
	require.Len(t, ana.Expected, 1)
	assert.Equal(t, domain.CategoryB, ana.Expected[0].Category)
	assert.True(t, ana.Expected[0].DeductionFraction.Equal(decimal.RequireFromString("0.25")))
	assert.Equal(t, domain.CategoryB, h.Members[1].Previous[0].Category)

	rules := h.EffectiveRules()
	assert.True(t, rules.CategoryBTaxableShare.Equal(decimal.RequireFromString("0.7")))
	assert.True(t, rules.ExemptThreshold.Equal(domain.DefaultTaxRules().ExemptThreshold), "omitted rules keep defaults")
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	h, err := parser.LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, h)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(writeTemp(t, "members: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_UnknownCategory(t *testing.T) {
	src := "members:\n  - name: Ana\n    previous:\n      - category: C\n        gained: 1\n        deducted: 0\n"
	_, err := NewInputParser().Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown income category")
}

func TestValidateHousehold(t *testing.T) {
	parser := NewInputParser()
	valid := func() *domain.Household { return parser.CreateExampleHousehold() }

	testCases := []struct {
		name    string
		mutate  func(h *domain.Household)
		message string
	}{
		{"valid", func(h *domain.Household) {}, ""},
		{"no members", func(h *domain.Household) { h.Members = nil }, "no members provided"},
		{"missing name", func(h *domain.Household) { h.Members[1].Name = "" }, "name is required"},
		{"duplicate name", func(h *domain.Household) { h.Members[1].Name = "Ana" }, "listed twice"},
		{"missing category", func(h *domain.Household) { h.Members[0].Previous[0].Category = "" }, "category is required"},
		{"fraction above one", func(h *domain.Household) {
			h.Members[0].Expected[0].DeductionFraction = decimal.RequireFromString("1.2")
		}, "between 0 and 1"},
		{"negative fraction", func(h *domain.Household) {
			h.Members[0].Expected[0].DeductionFraction = decimal.RequireFromString("-0.1")
		}, "between 0 and 1"},
		{"bad rules", func(h *domain.Household) { h.Rules.CategoryBTaxableShare = decimal.NewFromInt(2) }, "rules"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := valid()
			tc.mutate(h)
			err := parser.ValidateHousehold(h)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestNegativeAmountsAllowed(t *testing.T) {
	h := NewInputParser().CreateExampleHousehold()
	h.Members[0].Previous[0].Gained = decimal.NewFromInt(-500)
	assert.NoError(t, NewInputParser().ValidateHousehold(h))
}

func TestExampleHouseholdRoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleHousehold()

	data, err := MarshalHousehold(example)
	require.NoError(t, err)

	back, err := parser.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, example.Name, back.Name)
	require.Len(t, back.Members, len(example.Members))
	assert.True(t, back.Members[0].Expected[0].MonthlyGain.Equal(example.Members[0].Expected[0].MonthlyGain))
	assert.True(t, back.EffectiveRules().ExemptThreshold.Equal(example.EffectiveRules().ExemptThreshold))
}
