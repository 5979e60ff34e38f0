// Package validation provides input validation for CLI flags and API
// request fields.
package validation

import (
	"fmt"

	"github.com/okonta/poultry-breakeven/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("unsupported output format %q; expected %s or %s",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// ValidateTimeframe checks that the trailing window length is one of the
// supported presets.
func ValidateTimeframe(months int) error {
	switch months {
	case 3, 6, 12:
		return nil
	}
	return fmt.Errorf("unsupported timeframe %d; expected 3, 6, or 12 months", months)
}

// ValidateProjectionMonths bounds the projection horizon.
func ValidateProjectionMonths(months int) error {
	if months < 0 || months > 10*constants.MonthsPerYear {
		return fmt.Errorf("projection horizon %d months out of range", months)
	}
	return nil
}
