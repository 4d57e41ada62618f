package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(max, marginal, avg float64) BracketRow {
	return BracketRow{
		MaxThreshold:    decimal.NewFromFloat(max),
		MarginalRate:    decimal.NewFromFloat(marginal),
		RateAtThreshold: decimal.NewFromFloat(avg),
	}
}

func TestNewBracketTable_Valid(t *testing.T) {
	rows := []BracketRow{row(0, 0, 0), row(20000, 0.20, 0.20), row(40000, 0.28, 0.24)}
	table, err := NewBracketTable("test", rows)
	require.NoError(t, err)

	assert.Equal(t, "test", table.Name())
	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Lowest().Equal(decimal.Zero))
	assert.True(t, table.Highest().Equal(decimal.NewFromInt(40000)))
	assert.True(t, table.Threshold(1).Equal(decimal.NewFromInt(20000)))
}

func TestNewBracketTable_Rejects(t *testing.T) {
	testCases := []struct {
		desc string
		rows []BracketRow
	}{
		{desc: "empty", rows: nil},
		{desc: "single row", rows: []BracketRow{row(1000, 0.1, 0.1)}},
		{desc: "descending", rows: []BracketRow{row(2000, 0.1, 0.1), row(1000, 0.2, 0.15)}},
		{desc: "duplicate threshold", rows: []BracketRow{row(0, 0, 0), row(1000, 0.1, 0.1), row(1000, 0.2, 0.2)}},
		{desc: "negative rate", rows: []BracketRow{row(0, 0, 0), row(1000, -0.1, 0.1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := NewBracketTable(tc.desc, tc.rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "expected ErrConfiguration, got %v", err)
		})
	}
}

func TestBracketTable_IsolatedFromCaller(t *testing.T) {
	rows := []BracketRow{row(0, 0, 0), row(20000, 0.20, 0.20)}
	table, err := NewBracketTable("test", rows)
	require.NoError(t, err)

	rows[1].MaxThreshold = decimal.NewFromInt(1)
	assert.True(t, table.Threshold(1).Equal(decimal.NewFromInt(20000)))

	got := table.Rows()
	got[0].MaxThreshold = decimal.NewFromInt(-5)
	assert.True(t, table.Lowest().Equal(decimal.Zero))
}
