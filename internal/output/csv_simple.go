package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per filer, joint last).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.EstimateReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Household", "Filer", "Size", "IncomeA", "IncomeB", "TaxWithheld", "TaxableBase", "HouseholdTax", "Payable", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, m := range report.Members {
		row := []string{report.Household, m.Name, "1", m.IncomeA.StringFixed(2), m.IncomeB.StringFixed(2), m.TaxWithheld.StringFixed(2)}
		if m.Estimate != nil {
			row = append(row, m.Estimate.TaxableBase.StringFixed(2), m.Estimate.HouseholdTax.StringFixed(2), m.Estimate.Payable.StringFixed(2), "")
		} else {
			row = append(row, "", "", "", m.Error)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	totals := SumMembers(report)
	joint := report.Joint
	row := []string{
		report.Household,
		"joint",
		intToString(joint.HouseholdSize),
		totals.IncomeA.StringFixed(2),
		totals.IncomeB.StringFixed(2),
		totals.TaxWithheld.StringFixed(2),
		joint.TaxableBase.StringFixed(2),
		joint.HouseholdTax.StringFixed(2),
		joint.Payable.StringFixed(2),
		"",
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
