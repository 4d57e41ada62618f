package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport() *domain.EstimateReport {
	ana := domain.Estimate{
		Payable: dec("7600"), TaxableBase: dec("40000"), PerPersonTax: dec("9600"), HouseholdTax: dec("9600"),
		TaxWithheld: dec("2000"), HouseholdSize: 1, BracketIndex: 1, BracketCap: dec("20000"),
		AverageRate: dec("0.20"), MarginalRate: dec("0.28"),
	}
	rui := domain.Estimate{
		Payable: dec("1200"), TaxableBase: dec("20000.01"), PerPersonTax: dec("4000"), HouseholdTax: dec("4000"),
		TaxWithheld: dec("2800"), HouseholdSize: 1, BracketIndex: 1, BracketCap: dec("20000"),
		AverageRate: dec("0.20"), MarginalRate: dec("0.28"),
	}
	return &domain.EstimateReport{
		Household:       "Silva",
		TableName:       "testdata/table.csv",
		GeneratedAt:     time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		TaxYear:         2026,
		RemainingMonths: 3,
		Rules:           domain.DefaultTaxRules(),
		Members: []domain.MemberEstimate{
			{Name: "Ana", IncomeA: dec("40000"), TaxWithheld: dec("2000"), Estimate: &ana},
			{Name: "Rui", IncomeB: dec("20000"), TaxWithheld: dec("2800"), Estimate: &rui},
		},
		Joint: domain.Estimate{
			Payable: dec("6800"), TaxableBase: dec("30000"), PerPersonTax: dec("6800"), HouseholdTax: dec("13600"),
			TaxWithheld: dec("6800"), HouseholdSize: 2, BracketIndex: 1, BracketCap: dec("20000"),
			AverageRate: dec("0.20"), MarginalRate: dec("0.28"),
		},
		Recommendation: &domain.FilingRecommendation{
			Filing: "joint", JointPayable: dec("6800"), SeparateTotal: dec("8800"), Savings: dec("2000"),
		},
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Recommended: File jointly") {
		t.Fatalf("expected joint recommendation, got: %s", content)
	}
	if !strings.Contains(content, "Ana: Owed 7600.00 €") {
		t.Fatalf("expected member line for Ana, got: %s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"FILING SEPARATELY",
		"FILING JOINTLY (2 people)",
		"Category A income:    40000.00 €",
		"Bracket:              1 (cap 20000.00 €, average 20.00%, marginal 28.00%)",
		"Exempt threshold per person: 3791.32 €",
		"RECOMMENDATION: File jointly: 6800.00 € instead of 8800.00 € separately (saves 2000.00 €)",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in console output, got:\n%s", want, content)
		}
	}
}

func TestConsoleVerboseFormatter_RefundAndMissingMember(t *testing.T) {
	report := buildTestReport()
	report.Joint.Payable = dec("-150.25")
	report.Members[1].Estimate = nil
	report.Members[1].Error = "bracket lookup failed"
	report.Recommendation = nil

	out, err := ConsoleVerboseFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Refund 150.25 €") {
		t.Fatalf("expected refund line, got:\n%s", content)
	}
	if !strings.Contains(content, "Not computable:       bracket lookup failed") {
		t.Fatalf("expected member error, got:\n%s", content)
	}
	if strings.Contains(content, "RECOMMENDATION") {
		t.Fatalf("no recommendation expected, got:\n%s", content)
	}
}

func TestCSVSummarizerRows(t *testing.T) {
	f := CSVSummarizer{}
	out, err := f.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header+2 members+joint), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Silva,Ana,1,") || !strings.HasPrefix(lines[2], "Silva,Rui,1,") {
		t.Fatalf("member rows out of order: %v", lines)
	}
	if lines[3] != "Silva,joint,2,40000.00,20000.00,4800.00,30000.00,13600.00,6800.00," {
		t.Fatalf("unexpected joint row: %s", lines[3])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[3], ",6800.00,false") {
		t.Fatalf("unexpected joint row: %s", lines[3])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded domain.EstimateReport
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Joint.Payable.Equal(dec("6800")) || decoded.Recommendation == nil || decoded.Recommendation.Filing != "joint" {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}
	report := buildTestReport()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Key Assumptions", "<td>Ana</td>", "Joint (2)", "Owed 6800.00 €", "File jointly"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

func TestHTMLEscapesNames(t *testing.T) {
	report := buildTestReport()
	report.Members[0].Name = "<script>"
	out, err := HTMLFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	if strings.Contains(string(out), "<td><script></td>") {
		t.Fatalf("member name was not escaped")
	}
}

func TestFormatterAliasResolution(t *testing.T) {
	f := GetFormatterByName("console-verbose")
	if f == nil {
		t.Fatalf("alias console-verbose did not resolve to a formatter")
	}
	if f.Name() != "console" {
		t.Fatalf("alias resolved to %q, want 'console'", f.Name())
	}
	if f := GetFormatterByName(" JSON "); f == nil || f.Name() != "json" {
		t.Fatalf("format names should be case-insensitive")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"console":      "txt",
		"summary":      "txt",
		"csv":          "csv",
		"csv-detailed": "csv",
		"json":         "json",
		"html-report":  "html",
	}
	for format, want := range cases {
		if got := ExtensionFor(format); got != want {
			t.Fatalf("ExtensionFor(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFormatted(JSONFormatter{}, buildTestReport(), dir, "json")
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	if filepath.Base(path) != "irs_report_silva_20261018_093000.json" {
		t.Fatalf("unexpected file name %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
