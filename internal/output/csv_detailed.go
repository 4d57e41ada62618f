package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// CSVDetailedExporter writes every field of every estimate, including the bracket used.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.EstimateReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Household", "Filer", "Size", "TaxableBase", "BracketIndex", "BracketCap", "AverageRate", "MarginalRate", "PerPersonTax", "HouseholdTax", "TaxWithheld", "Payable", "Refund"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	write := func(filer string, e domain.Estimate) error {
		return w.Write([]string{
			report.Household,
			filer,
			intToString(e.HouseholdSize),
			e.TaxableBase.StringFixed(4),
			intToString(e.BracketIndex),
			e.BracketCap.String(),
			e.AverageRate.String(),
			e.MarginalRate.String(),
			e.PerPersonTax.StringFixed(4),
			e.HouseholdTax.StringFixed(4),
			e.TaxWithheld.StringFixed(2),
			e.Payable.StringFixed(2),
			boolToString(e.IsRefund()),
		})
	}
	for _, m := range report.Members {
		if m.Estimate == nil {
			continue
		}
		if err := write(m.Name, *m.Estimate); err != nil {
			return nil, err
		}
	}
	if err := write("joint", report.Joint); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
