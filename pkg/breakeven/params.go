// Package breakeven derives unit-economics parameters from historical farm
// records and projects a month-by-month profit trajectory to locate the
// break-even point.
package breakeven

import (
	"errors"
	"fmt"
)

// Params are the five inputs of a break-even projection, either derived by
// the estimator or supplied directly by a user.
//
// Invariants: Price > 0, UnitVariableCost >= 0, FixedCostsPerMonth >= 0,
// GrowthRate within [-0.20, 0.20] per month, SeasonalityFactors (when
// present) normalized to mean 1.0. The projector enforces the first two as
// errors and normalizes the rest.
type Params struct {
	Price              float64   `json:"price"`
	UnitVariableCost   float64   `json:"unitVariableCost"`
	FixedCostsPerMonth float64   `json:"fixedCostsPerMonth"`
	InitialUnits       float64   `json:"initialUnits"`
	GrowthRate         float64   `json:"growthRate"`
	ProjectionMonths   int       `json:"projectionMonths,omitempty"`
	SeasonalityFactors []float64 `json:"seasonalityFactors,omitempty"`
}

// Quality is the advisory data-sufficiency verdict attached to
// auto-calculated parameters. Warnings list every fallback, clamp, and
// insufficiency condition in evaluation order; they are the user-facing
// explanation of estimate confidence.
type Quality struct {
	HasSufficientData  bool     `json:"hasSufficientData"`
	MonthsWithSales    int      `json:"monthsWithSales"`
	MonthsWithExpenses int      `json:"monthsWithExpenses"`
	TotalSales         int      `json:"totalSales"`
	TotalExpenses      int      `json:"totalExpenses"`
	Warnings           []string `json:"warnings"`
}

// AutoCalculated pairs derived parameters with their quality verdict.
type AutoCalculated struct {
	Params  Params  `json:"params"`
	Quality Quality `json:"dataQuality"`
}

// MonthProjection is one row of the projection table. Month is 1-based.
type MonthProjection struct {
	Month            int     `json:"month"`
	Units            float64 `json:"units"`
	Revenue          float64 `json:"revenue"`
	VariableCosts    float64 `json:"variableCosts"`
	FixedCosts       float64 `json:"fixedCosts"`
	TotalCosts       float64 `json:"totalCosts"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// Results is the output of a projection. BreakEvenMonth, BreakEvenDate, and
// PaybackPeriodMonths are nil when cumulative profit never reaches zero
// within the horizon; callers must render that as "not reachable within the
// projection window", not as an error.
type Results struct {
	ContributionMargin      float64           `json:"contributionMargin"`
	ContributionMarginRatio float64           `json:"contributionMarginRatio"`
	BreakEvenUnits          float64           `json:"breakEvenUnits"`
	BreakEvenRevenue        float64           `json:"breakEvenRevenue"`
	BreakEvenMonth          *int              `json:"breakEvenMonth"`
	BreakEvenDate           *string           `json:"breakEvenDate"`
	PaybackPeriodMonths     *int              `json:"paybackPeriod"`
	MonthlyProjections      []MonthProjection `json:"monthlyProjections"`
}

// InvalidParamsError reports a parameter that makes the projection
// mathematically undefined rather than merely unreliable.
type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// ErrMarginNotPositive indicates unit variable cost meets or exceeds price,
// so no sales volume can ever cover fixed costs.
var ErrMarginNotPositive = errors.New("costs meet or exceed price; break-even is unreachable at any volume")
