// Package constants provides shared constants for the finance-engine application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent).
	// A debt balance at or below this is considered paid off.
	CurrencyTolerance = 0.01

	// BalanceTolerance is the tolerance for verifying an amortization
	// schedule closes to zero.
	BalanceTolerance = 1e-6
)

// Simulation bounds
const (
	// MaxPayoffMonths caps every month-by-month simulation at 50 years.
	// A run that hits the cap is reported as unresolved, not paid off.
	MaxPayoffMonths = 600

	// MaxProjectionYears caps year-by-year growth projections.
	MaxProjectionYears = 100
)

// Mortgage constants
const (
	// DefaultPMICutoffPercent is the default loan-to-value percentage below
	// which private mortgage insurance is dropped.
	DefaultPMICutoffPercent = 78.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Strategy labels reported in payoff results.
const (
	StrategySnowball  = "Snowball"
	StrategyAvalanche = "Avalanche"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML plans (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
