// Package constants provides shared constants for the poultry break-even
// application.
package constants

// MonthKeyLayout is the UTC calendar-month key format used for aggregation
// and is also the output date format for monthly series.
const MonthKeyLayout = "2006-01"

// DateLayout is the format for bare calendar dates in records and output.
const DateLayout = "2006-01-02"

// Estimation defaults and thresholds
const (
	// DefaultPricePerCrate is assumed when no sales exist in the window.
	DefaultPricePerCrate = 400.0

	// DefaultVariableCostRatio estimates unit variable cost as a share of
	// price when no crate counts are available.
	DefaultVariableCostRatio = 0.4

	// DefaultInitialUnits is assumed when no month in the window has sales.
	DefaultInitialUnits = 100.0

	// GrowthRateLimit bounds the estimated month-over-month growth rate to
	// plus or minus this value.
	GrowthRateLimit = 0.20

	// MinSeasonalityMonths is the minimum number of aggregate months
	// required before per-month seasonality factors are derived.
	MinSeasonalityMonths = 3

	// MinMonthsWithSales and MinMonthsWithExpenses are the data-sufficiency
	// thresholds for auto-calculated parameters.
	MinMonthsWithSales    = 3
	MinMonthsWithExpenses = 2

	// DefaultTimeframeMonths is the trailing window length when none is given.
	DefaultTimeframeMonths = 6
)

// Projection constants
const (
	// DefaultProjectionMonths is the projection horizon when none is given.
	DefaultProjectionMonths = 12

	// InterpolationMonthDays is the synthetic month length used when
	// interpolating the break-even date within its crossing month.
	InterpolationMonthDays = 30

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// Rounding and comparison constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// RatePrecision is the precision for rate rounding (4 decimal places)
	RatePrecision = 10000

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for
	// record payloads (1 MB)
	DefaultMaxBodySizeBytes int64 = 1024 * 1024
)
