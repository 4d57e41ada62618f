package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/irs-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders report in the named format and writes it to w.
func GenerateReport(w io.Writer, report *domain.EstimateReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveReport writes report to a timestamped file in dir and returns its path.
func SaveReport(report *domain.EstimateReport, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return WriteFormatted(f, report, dir, ExtensionFor(format))
}

// SaveHousehold writes a household as YAML.
func SaveHousehold(h *domain.Household, filename string) error {
	b, err := yaml.Marshal(h)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
