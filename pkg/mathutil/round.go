// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/okonta/poultry-breakeven/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for all monetary outputs.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundRate rounds a value to four decimals, used for growth rates.
func RoundRate(val float64) float64 {
	return math.Round(val*constants.RatePrecision) / constants.RatePrecision
}

// IsZero checks if a value is effectively zero (within currency tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp bounds val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
