package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/irs-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s (joint, %d months remaining)\n", householdTitle(report), FormatPayable(report.Joint), report.RemainingMonths)
	if len(report.Members) > 1 {
		for _, m := range report.Members {
			if m.Estimate == nil {
				fmt.Fprintf(&buf, "  %s: n/a (%s)\n", m.Name, m.Error)
				continue
			}
			fmt.Fprintf(&buf, "  %s: %s\n", m.Name, FormatPayable(*m.Estimate))
		}
	}
	if s := DescribeRecommendation(report); s != "" {
		fmt.Fprintf(&buf, "Recommended: %s\n", s)
	}
	return buf.Bytes(), nil
}
