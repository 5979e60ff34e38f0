package breakeven

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/okonta/poultry-breakeven/pkg/constants"
	"github.com/okonta/poultry-breakeven/pkg/datetime"
	"github.com/okonta/poultry-breakeven/pkg/mathutil"
)

// Projector turns a parameter set into a month-by-month profit projection.
// It is a pure function of its inputs; safe for concurrent use.
type Projector struct {
	logger *zap.Logger
}

// NewProjector creates a projector with the given logger. If logger is nil,
// it will use a no-op logger to prevent panics.
func NewProjector(logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{logger: logger}
}

// Project computes the projection table and break-even summary for the given
// parameters, anchored at asOf for calendar dates. ProjectionMonths defaults
// to 12 when unset; GrowthRate is clamped to its invariant range and
// SeasonalityFactors are normalized to mean 1.0 on a copy, never in place.
//
// Two conditions fail loudly instead of degrading: a non-positive price
// (*InvalidParamsError) and a non-positive contribution margin
// (ErrMarginNotPositive). Everything else always yields a result.
func (p *Projector) Project(params Params, asOf time.Time) (*Results, error) {
	if !mathutil.IsFinite(params.Price) || params.Price <= 0 {
		return nil, &InvalidParamsError{Field: "price", Reason: "must be a positive number"}
	}
	if !mathutil.IsFinite(params.UnitVariableCost) || params.UnitVariableCost < 0 {
		return nil, &InvalidParamsError{Field: "unitVariableCost", Reason: "must be zero or positive"}
	}
	if !mathutil.IsFinite(params.FixedCostsPerMonth) || params.FixedCostsPerMonth < 0 {
		return nil, &InvalidParamsError{Field: "fixedCostsPerMonth", Reason: "must be zero or positive"}
	}
	if !mathutil.IsFinite(params.InitialUnits) || params.InitialUnits < 0 {
		return nil, &InvalidParamsError{Field: "initialUnits", Reason: "must be zero or positive"}
	}

	contributionMargin := params.Price - params.UnitVariableCost
	if contributionMargin <= 0 {
		return nil, ErrMarginNotPositive
	}

	projectionMonths := params.ProjectionMonths
	if projectionMonths <= 0 {
		projectionMonths = constants.DefaultProjectionMonths
	}
	growthRate := mathutil.Clamp(params.GrowthRate, -constants.GrowthRateLimit, constants.GrowthRateLimit)
	factors := normalizedFactors(params.SeasonalityFactors)

	results := &Results{
		ContributionMargin:      mathutil.Round(contributionMargin),
		ContributionMarginRatio: mathutil.RoundRate(contributionMargin / params.Price),
		BreakEvenUnits:          mathutil.Round(params.FixedCostsPerMonth / contributionMargin),
		BreakEvenRevenue:        mathutil.Round(params.FixedCostsPerMonth / contributionMargin * params.Price),
		MonthlyProjections:      make([]MonthProjection, 0, projectionMonths),
	}

	monthAnchor := datetime.MonthStart(asOf)
	cumulative := 0.0
	previous := 0.0
	crossed := false

	for m := 0; m < projectionMonths; m++ {
		units := params.InitialUnits * math.Pow(1+growthRate, float64(m))
		if len(factors) > 0 {
			units *= factors[m%len(factors)]
		}
		revenue := units * params.Price
		variableCosts := units * params.UnitVariableCost
		totalCosts := variableCosts + params.FixedCostsPerMonth
		profit := revenue - totalCosts

		previous = cumulative
		cumulative += profit

		results.MonthlyProjections = append(results.MonthlyProjections, MonthProjection{
			Month:            m + 1,
			Units:            mathutil.Round(units),
			Revenue:          mathutil.Round(revenue),
			VariableCosts:    mathutil.Round(variableCosts),
			FixedCosts:       mathutil.Round(params.FixedCostsPerMonth),
			TotalCosts:       mathutil.Round(totalCosts),
			Profit:           mathutil.Round(profit),
			CumulativeProfit: mathutil.Round(cumulative),
		})

		if !crossed && cumulative >= 0 {
			crossed = true
			month := m + 1
			date := breakEvenDate(monthAnchor, m, previous, cumulative)
			results.BreakEvenMonth = &month
			results.BreakEvenDate = &date
			results.PaybackPeriodMonths = &month
		}
	}

	p.logger.Debug("projection computed",
		zap.String("op", "breakeven.Project"),
		zap.Int("months", projectionMonths),
		zap.Bool("breakEvenReached", crossed),
	)

	return results, nil
}

// breakEvenDate interpolates the calendar date of the zero crossing within
// the 0-based crossing month, against a synthetic 30-day month. A crossing
// in month 0 is simply the first day of the anchor month.
func breakEvenDate(monthAnchor time.Time, month int, previous, current float64) string {
	if month == 0 {
		return monthAnchor.Format(constants.DateLayout)
	}
	days := int(math.Round((0 - previous) / (current - previous) * constants.InterpolationMonthDays))
	return monthAnchor.AddDate(0, month, 0).AddDate(0, 0, days).Format(constants.DateLayout)
}

// normalizedFactors returns a copy of the seasonality factors scaled so
// their mean is 1.0. Non-positive means leave the factors untouched.
func normalizedFactors(factors []float64) []float64 {
	if len(factors) == 0 {
		return nil
	}
	normalized := append([]float64(nil), factors...)
	sum := 0.0
	for _, factor := range normalized {
		sum += factor
	}
	mean := sum / float64(len(normalized))
	if mean > 0 {
		for i := range normalized {
			normalized[i] /= mean
		}
	}
	return normalized
}
