package output

import (
	"encoding/json"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// JSONFormatter serializes the estimate report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
