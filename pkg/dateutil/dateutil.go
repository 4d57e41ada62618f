package dateutil

import (
	"time"
)

// TaxYear returns the tax year a date falls in. The tax year is the calendar year.
func TaxYear(date time.Time) int {
	return date.Year()
}

// RemainingMonths counts the month of date and every month after it until December,
// so January gives 12 and December gives 1.
func RemainingMonths(date time.Time) int {
	return 13 - int(date.Month())
}

// ElapsedMonths counts the whole months of the tax year before the month of date.
func ElapsedMonths(date time.Time) int {
	return int(date.Month()) - 1
}

