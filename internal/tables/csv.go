// Package tables loads published bracket tables into domain.BracketTable.
package tables

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/irs-calculator/internal/domain"
	money "github.com/rpgo/irs-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// minColumns is the lower-bound, maximum, marginal-rate and average-rate columns.
const minColumns = 4

// LoadCSV loads a bracket table from a CSV file with a header row.
//
// Columns are read by position: the second column is the bracket maximum
// ("Maximo"), the second-to-last the marginal rate and the last the average rate
// at the maximum. Extra columns between them are ignored.
func LoadCSV(path string) (*domain.BracketTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open bracket table %s: %v", domain.ErrConfiguration, path, err)
	}
	defer file.Close()
	return ReadCSV(path, file)
}

// ReadCSV parses CSV bracket rows from r; name labels the resulting table.
func ReadCSV(name string, r io.Reader) (*domain.BracketTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV %s: %v", domain.ErrConfiguration, name, err)
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	// spreadsheets exported with a decimal comma separate fields with ';'
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Contains(firstLine, []byte(";")) {
		reader.Comma = ';'
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV %s: %v", domain.ErrConfiguration, name, err)
	}
	return parseRecords(name, records)
}

func parseRecords(name string, records [][]string) (*domain.BracketTable, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: insufficient data in %s", domain.ErrConfiguration, name)
	}
	header := records[0]
	if len(header) < minColumns {
		return nil, fmt.Errorf("%w: expected at least %d columns in %s, got %d", domain.ErrConfiguration, minColumns, name, len(header))
	}

	var rows []domain.BracketRow
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if isBlank(rec) {
			continue
		}
		if len(rec) < minColumns {
			return nil, fmt.Errorf("%w: %s line %d: expected at least %d columns, got %d", domain.ErrConfiguration, name, i+1, minColumns, len(rec))
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", domain.ErrConfiguration, name, i+1, err)
		}
		rows = append(rows, row)
	}
	return domain.NewBracketTable(name, rows)
}

func parseRow(rec []string) (domain.BracketRow, error) {
	n := len(rec)
	cols := []struct {
		label string
		idx   int
	}{
		{"min", 0},
		{"max", 1},
		{"marginal rate", n - 2},
		{"average rate", n - 1},
	}
	var vals [4]decimal.Decimal
	for k, c := range cols {
		cell := strings.Trim(rec[c.idx], `"`)
		if k == 0 && strings.TrimSpace(cell) == "" {
			continue // lower bound is informational
		}
		v, err := money.ParseNumber(cell)
		if err != nil {
			return domain.BracketRow{}, fmt.Errorf("column %d (%s): %v", c.idx+1, c.label, err)
		}
		vals[k] = v
	}
	return domain.BracketRow{
		MinThreshold:    vals[0],
		MaxThreshold:    vals[1],
		MarginalRate:    vals[2],
		RateAtThreshold: vals[3],
	}, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
