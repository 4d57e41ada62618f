package calculation

import (
	"time"

	"github.com/rpgo/irs-calculator/pkg/dateutil"
)

// nowFunc decides which month the tax year is in (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// remainingMonthsAt counts the given month and every month after it until December.
func remainingMonthsAt(t time.Time) int { return dateutil.RemainingMonths(t) }
