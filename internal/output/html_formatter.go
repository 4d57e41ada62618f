package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"pct":     FormatPercentage,
	"payable": FormatPayable,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.EstimateReport
		Title          string
		Assumptions    []string
		Totals         Totals
		Recommendation string
	}{report, householdTitle(report), GenerateAssumptions(report), SumMembers(report), DescribeRecommendation(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
