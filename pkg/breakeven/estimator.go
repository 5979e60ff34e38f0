package breakeven

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/okonta/poultry-breakeven/pkg/aggregate"
	"github.com/okonta/poultry-breakeven/pkg/constants"
	"github.com/okonta/poultry-breakeven/pkg/datetime"
	"github.com/okonta/poultry-breakeven/pkg/mathutil"
	"github.com/okonta/poultry-breakeven/pkg/records"
)

// Warning messages attached to Quality when the estimator falls back to a
// heuristic, clamps a derived value, or judges the history insufficient.
const (
	WarnInsufficientData = "insufficient history for reliable estimates; results are indicative only"
	WarnPriceFromListed  = "no crate counts in the selected window; price estimated from listed per-crate prices"
	WarnPriceDefault     = "no sales in the selected window; using the default price per crate"
	WarnVariableCostRule = "no crate counts in the selected window; assuming variable cost at 40% of price"
	WarnInitialUnits     = "no month with crate sales in the selected window; initial volume estimated"
	WarnGrowthFlat       = "not enough sales history to estimate growth; assuming flat volume"
	WarnGrowthClamped    = "estimated growth rate clamped to plus or minus 20% per month"
	WarnSeasonalityFlat  = "fewer than 3 months of data; seasonality factors disabled"
)

// Estimator derives break-even parameters from historical records. Safe for
// concurrent use; it holds no per-call state.
type Estimator struct {
	logger     *zap.Logger
	aggregator *aggregate.Aggregator
}

// NewEstimator creates an estimator with the given logger. If logger is nil,
// it will use a no-op logger to prevent panics.
func NewEstimator(logger *zap.Logger) *Estimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Estimator{logger: logger, aggregator: aggregate.NewAggregator(logger)}
}

// AutoCalculate derives the five break-even parameters and a data-quality
// verdict from the records falling in a trailing timeframeMonths window
// anchored at asOf (inclusive of asOf's partial month). It always returns a
// best-effort estimate; missing data triggers heuristic fallbacks recorded
// as warnings, never errors.
func (e *Estimator) AutoCalculate(sales []records.SaleRecord, expenses []records.ExpenseRecord, timeframeMonths int, asOf time.Time) AutoCalculated {
	if timeframeMonths <= 0 {
		timeframeMonths = constants.DefaultTimeframeMonths
	}

	cutoff := datetime.WindowCutoff(asOf, timeframeMonths)
	windowSales := filterSales(sales, cutoff)
	windowExpenses := filterExpenses(expenses, cutoff)

	months := e.aggregator.ByMonth(windowSales, windowExpenses)

	var warnings []string

	// Quality counts over the aggregated window.
	quality := Quality{
		TotalSales:    len(windowSales),
		TotalExpenses: len(windowExpenses),
	}
	totalUnits := 0
	totalRevenue := 0.0
	totalVariable := 0.0
	totalFixed := 0.0
	for _, month := range months {
		if month.UnitsSold > 0 {
			quality.MonthsWithSales++
		}
		if month.TotalCosts > 0 {
			quality.MonthsWithExpenses++
		}
		totalUnits += month.UnitsSold
		totalRevenue += month.Revenue
		totalVariable += month.VariableCosts
		totalFixed += month.FixedCosts
	}
	quality.HasSufficientData = quality.MonthsWithSales >= constants.MinMonthsWithSales &&
		quality.MonthsWithExpenses >= constants.MinMonthsWithExpenses &&
		totalUnits > 0
	if !quality.HasSufficientData {
		warnings = append(warnings, WarnInsufficientData)
	}

	// Average selling price: revenue-weighted, falling back to the mean
	// listed price, then to the default.
	var price float64
	switch {
	case totalUnits > 0:
		price = totalRevenue / float64(totalUnits)
	case len(windowSales) > 0:
		sum := 0.0
		for _, sale := range windowSales {
			sum += sale.PricePerCrate.Float64()
		}
		price = sum / float64(len(windowSales))
		warnings = append(warnings, WarnPriceFromListed)
	default:
		price = constants.DefaultPricePerCrate
		warnings = append(warnings, WarnPriceDefault)
	}

	// Unit variable cost.
	var unitVariableCost float64
	if totalUnits > 0 {
		unitVariableCost = totalVariable / float64(totalUnits)
	} else {
		unitVariableCost = constants.DefaultVariableCostRatio * price
		warnings = append(warnings, WarnVariableCostRule)
	}

	// Fixed cost per month, diluted over every month with any activity. A
	// month with sales but no fixed expenses pulls the average toward zero
	// on purpose: absence of fixed spend in an active month is evidence of
	// zero fixed burn, not missing data.
	fixedPerMonth := 0.0
	if len(months) > 0 {
		fixedPerMonth = totalFixed / float64(len(months))
	}

	// Initial monthly volume: the first selling month's units.
	var initialUnits float64
	firstSelling, lastSelling := sellingBounds(months)
	switch {
	case firstSelling != nil:
		initialUnits = float64(firstSelling.UnitsSold)
	case quality.MonthsWithSales > 0:
		initialUnits = float64(totalUnits) / float64(quality.MonthsWithSales)
		warnings = append(warnings, WarnInitialUnits)
	default:
		initialUnits = constants.DefaultInitialUnits
		warnings = append(warnings, WarnInitialUnits)
	}

	// Compound month-over-month growth between the first and last selling
	// months, over the exact calendar gap rather than row count.
	growthRate := 0.0
	if firstSelling != nil && lastSelling != nil && firstSelling.Month != lastSelling.Month {
		gap, err := datetime.MonthsBetween(firstSelling.Month, lastSelling.Month)
		if err == nil && gap > 0 && firstSelling.UnitsSold > 0 {
			growthRate = math.Pow(float64(lastSelling.UnitsSold)/float64(firstSelling.UnitsSold), 1.0/float64(gap)) - 1.0
		} else {
			warnings = append(warnings, WarnGrowthFlat)
		}
	} else {
		warnings = append(warnings, WarnGrowthFlat)
	}
	if growthRate > constants.GrowthRateLimit || growthRate < -constants.GrowthRateLimit {
		growthRate = mathutil.Clamp(growthRate, -constants.GrowthRateLimit, constants.GrowthRateLimit)
		warnings = append(warnings, WarnGrowthClamped)
	}

	// Seasonality: per-month ratio to mean units, re-normalized so the
	// factor list's own mean is exactly 1.
	seasonality := []float64{1}
	if len(months) >= constants.MinSeasonalityMonths && totalUnits > 0 {
		seasonality = seasonalityFactors(months, totalUnits)
	} else {
		warnings = append(warnings, WarnSeasonalityFlat)
	}

	quality.Warnings = warnings

	e.logger.Debug("auto-calculated break-even parameters",
		zap.String("op", "breakeven.AutoCalculate"),
		zap.Int("timeframeMonths", timeframeMonths),
		zap.Int("aggregateMonths", len(months)),
		zap.Bool("sufficient", quality.HasSufficientData),
		zap.Int("warnings", len(warnings)),
	)

	return AutoCalculated{
		Params: Params{
			Price:              mathutil.Round(price),
			UnitVariableCost:   mathutil.Round(unitVariableCost),
			FixedCostsPerMonth: mathutil.Round(fixedPerMonth),
			InitialUnits:       mathutil.Round(initialUnits),
			GrowthRate:         mathutil.RoundRate(growthRate),
			SeasonalityFactors: seasonality,
		},
		Quality: quality,
	}
}

func filterSales(sales []records.SaleRecord, cutoff time.Time) []records.SaleRecord {
	filtered := make([]records.SaleRecord, 0, len(sales))
	for _, sale := range sales {
		t, err := datetime.ParseRecordDate(sale.SaleDate)
		if err != nil || t.Before(cutoff) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered
}

func filterExpenses(expenses []records.ExpenseRecord, cutoff time.Time) []records.ExpenseRecord {
	filtered := make([]records.ExpenseRecord, 0, len(expenses))
	for _, expense := range expenses {
		t, err := datetime.ParseRecordDate(expense.ExpenseDate)
		if err != nil || t.Before(cutoff) {
			continue
		}
		filtered = append(filtered, expense)
	}
	return filtered
}

// sellingBounds returns the chronologically first and last months with any
// crate sales, or nils when no month sold anything.
func sellingBounds(months []aggregate.MonthlyAggregate) (first, last *aggregate.MonthlyAggregate) {
	for i := range months {
		if months[i].UnitsSold > 0 {
			if first == nil {
				first = &months[i]
			}
			last = &months[i]
		}
	}
	return first, last
}

// seasonalityFactors performs the two-pass normalization: ratio of each
// month's units to the window mean, then a correction pass dividing by the
// factors' own mean so it lands on exactly 1.0.
func seasonalityFactors(months []aggregate.MonthlyAggregate, totalUnits int) []float64 {
	meanUnits := float64(totalUnits) / float64(len(months))
	factors := make([]float64, len(months))
	for i, month := range months {
		factors[i] = float64(month.UnitsSold) / meanUnits
	}

	sum := 0.0
	for _, factor := range factors {
		sum += factor
	}
	mean := sum / float64(len(factors))
	if mean > 0 {
		for i := range factors {
			factors[i] /= mean
		}
	}
	return factors
}
