package output

import (
	"strings"
	"testing"
)

func TestSumMembers(t *testing.T) {
	totals := SumMembers(buildTestReport())
	if !totals.IncomeA.Equal(dec("40000")) || !totals.IncomeB.Equal(dec("20000")) {
		t.Fatalf("unexpected income totals: %+v", totals)
	}
	if !totals.TaxWithheld.Equal(dec("4800")) {
		t.Fatalf("unexpected withholding total: %s", totals.TaxWithheld)
	}
}

func TestDescribeRecommendation(t *testing.T) {
	report := buildTestReport()
	if s := DescribeRecommendation(report); !strings.HasPrefix(s, "File jointly") {
		t.Fatalf("expected joint recommendation, got %q", s)
	}

	report.Recommendation.Filing = "separate"
	if s := DescribeRecommendation(report); !strings.HasPrefix(s, "File separately") {
		t.Fatalf("expected separate recommendation, got %q", s)
	}

	report.Recommendation.Savings = dec("0")
	if s := DescribeRecommendation(report); !strings.HasPrefix(s, "Joint and separate filing cost the same") {
		t.Fatalf("expected tie, got %q", s)
	}

	report.Recommendation = nil
	if s := DescribeRecommendation(report); s != "" {
		t.Fatalf("expected no recommendation, got %q", s)
	}
}

func TestGenerateAssumptions(t *testing.T) {
	lines := GenerateAssumptions(buildTestReport())
	if len(lines) == 0 || lines[0] != "Tax year: 2026" {
		t.Fatalf("unexpected first assumption: %q", lines)
	}
	if !strings.Contains(strings.Join(lines, "\n"), "over 3 remaining months") {
		t.Fatalf("missing projection assumption: %q", lines)
	}
}
