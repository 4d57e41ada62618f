package dateutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRemainingMonths covers every month of the year
func TestRemainingMonths(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		date := time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC)
		t.Run(fmt.Sprintf("month %d", m), func(t *testing.T) {
			assert.Equal(t, 13-int(m), RemainingMonths(date))
			assert.Equal(t, 12, RemainingMonths(date)+ElapsedMonths(date), "elapsed and remaining cover the year")
		})
	}
}

func TestRemainingMonthsIgnoresDay(t *testing.T) {
	first := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 10, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 3, RemainingMonths(first))
	assert.Equal(t, 3, RemainingMonths(last))
}

func TestTaxYear(t *testing.T) {
	assert.Equal(t, 2026, TaxYear(time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2027, TaxYear(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}
