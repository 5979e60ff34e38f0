package breakeven

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/okonta/poultry-breakeven/pkg/datetime"
)

func referenceParams() Params {
	return Params{
		Price:              500,
		UnitVariableCost:   200,
		FixedCostsPerMonth: 30000,
		InitialUnits:       100,
		GrowthRate:         0.05,
		ProjectionMonths:   12,
	}
}

func TestProjectReferenceScenario(t *testing.T) {
	anchor := datetime.MustParseTime(time.RFC3339, "2025-03-10T08:00:00Z")
	results, err := NewProjector(nil).Project(referenceParams(), anchor)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if results.ContributionMargin != 300 {
		t.Errorf("ContributionMargin = %v, expected 300", results.ContributionMargin)
	}
	if results.ContributionMarginRatio != 0.6 {
		t.Errorf("ContributionMarginRatio = %v, expected 0.6", results.ContributionMarginRatio)
	}
	if results.BreakEvenUnits != 100 {
		t.Errorf("BreakEvenUnits = %v, expected 100", results.BreakEvenUnits)
	}
	if results.BreakEvenRevenue != 50000 {
		t.Errorf("BreakEvenRevenue = %v, expected 50000", results.BreakEvenRevenue)
	}

	if len(results.MonthlyProjections) != 12 {
		t.Fatalf("projections length = %d, expected 12", len(results.MonthlyProjections))
	}

	// Month 1 sells exactly the break-even volume: zero profit, zero
	// cumulative, so break-even lands on month 1.
	first := results.MonthlyProjections[0]
	if first.Month != 1 {
		t.Errorf("first row month = %d, expected 1", first.Month)
	}
	if first.Units != 100 || first.Revenue != 50000 || first.Profit != 0 || first.CumulativeProfit != 0 {
		t.Errorf("unexpected first row: %+v", first)
	}

	second := results.MonthlyProjections[1]
	if second.Units != 105 {
		t.Errorf("second month units = %v, expected 105", second.Units)
	}
	if second.Profit != 1500 {
		t.Errorf("second month profit = %v, expected 1500", second.Profit)
	}
	if second.CumulativeProfit != 1500 {
		t.Errorf("second month cumulative = %v, expected 1500", second.CumulativeProfit)
	}

	if results.BreakEvenMonth == nil || *results.BreakEvenMonth != 1 {
		t.Fatalf("BreakEvenMonth = %v, expected 1", results.BreakEvenMonth)
	}
	if results.BreakEvenDate == nil || *results.BreakEvenDate != "2025-03-01" {
		t.Fatalf("BreakEvenDate = %v, expected 2025-03-01", results.BreakEvenDate)
	}
	if results.PaybackPeriodMonths == nil || *results.PaybackPeriodMonths != 1 {
		t.Errorf("PaybackPeriodMonths = %v, expected 1", results.PaybackPeriodMonths)
	}

	// Once monthly profit turns positive, cumulative profit must be
	// non-decreasing.
	for i := 1; i < len(results.MonthlyProjections); i++ {
		prev := results.MonthlyProjections[i-1]
		row := results.MonthlyProjections[i]
		if row.Profit > 0 && row.CumulativeProfit < prev.CumulativeProfit {
			t.Errorf("cumulative profit decreased at month %d: %v -> %v", row.Month, prev.CumulativeProfit, row.CumulativeProfit)
		}
	}
}

func TestProjectUnreachableBreakEven(t *testing.T) {
	params := referenceParams()
	params.FixedCostsPerMonth = 1000000

	results, err := NewProjector(nil).Project(params, time.Now().UTC())
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if results.BreakEvenMonth != nil {
		t.Errorf("BreakEvenMonth = %v, expected nil", *results.BreakEvenMonth)
	}
	if results.BreakEvenDate != nil {
		t.Errorf("BreakEvenDate = %v, expected nil", *results.BreakEvenDate)
	}
	if results.PaybackPeriodMonths != nil {
		t.Errorf("PaybackPeriodMonths = %v, expected nil", *results.PaybackPeriodMonths)
	}
	for _, row := range results.MonthlyProjections {
		if row.CumulativeProfit >= 0 {
			t.Errorf("month %d cumulative = %v, expected negative throughout", row.Month, row.CumulativeProfit)
		}
	}
}

func TestProjectSeasonalityInterpolation(t *testing.T) {
	anchor := datetime.MustParseTime(time.RFC3339, "2025-01-15T00:00:00Z")
	params := Params{
		Price:              500,
		UnitVariableCost:   200,
		FixedCostsPerMonth: 30000,
		InitialUnits:       100,
		GrowthRate:         0,
		ProjectionMonths:   4,
		// Mean 2.0: the projector must normalize to [0.5, 1.5] on a copy.
		SeasonalityFactors: []float64{1, 3},
	}

	results, err := NewProjector(nil).Project(params, anchor)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	rows := results.MonthlyProjections
	if rows[0].Units != 50 || rows[1].Units != 150 {
		t.Errorf("units = %v/%v, expected 50/150 after normalization", rows[0].Units, rows[1].Units)
	}
	// Cyclic reuse: month 3 repeats the first factor.
	if rows[2].Units != 50 {
		t.Errorf("month 3 units = %v, expected 50 (cyclic factors)", rows[2].Units)
	}

	// Cumulative crosses zero exactly at the end of month 2: -15000 then 0.
	if rows[0].CumulativeProfit != -15000 || rows[1].CumulativeProfit != 0 {
		t.Errorf("cumulative = %v/%v, expected -15000/0", rows[0].CumulativeProfit, rows[1].CumulativeProfit)
	}
	if results.BreakEvenMonth == nil || *results.BreakEvenMonth != 2 {
		t.Fatalf("BreakEvenMonth = %v, expected 2", results.BreakEvenMonth)
	}
	// Full 30-day interpolation from the first of the crossing month.
	if results.BreakEvenDate == nil || *results.BreakEvenDate != "2025-03-03" {
		t.Errorf("BreakEvenDate = %v, expected 2025-03-03", results.BreakEvenDate)
	}

	if !reflect.DeepEqual(params.SeasonalityFactors, []float64{1, 3}) {
		t.Error("Project must not mutate the caller's seasonality factors")
	}
}

func TestProjectDefaultsHorizon(t *testing.T) {
	params := referenceParams()
	params.ProjectionMonths = 0

	results, err := NewProjector(nil).Project(params, time.Now().UTC())
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if len(results.MonthlyProjections) != 12 {
		t.Errorf("projections length = %d, expected default 12", len(results.MonthlyProjections))
	}
}

func TestProjectInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{
			name:   "Zero price",
			mutate: func(p *Params) { p.Price = 0 },
		},
		{
			name:   "Negative price",
			mutate: func(p *Params) { p.Price = -10 },
		},
		{
			name:   "NaN price",
			mutate: func(p *Params) { p.Price = math.NaN() },
		},
		{
			name:   "Negative unit variable cost",
			mutate: func(p *Params) { p.UnitVariableCost = -1 },
		},
		{
			name:   "Negative fixed costs",
			mutate: func(p *Params) { p.FixedCostsPerMonth = -500 },
		},
		{
			name:   "Negative initial units",
			mutate: func(p *Params) { p.InitialUnits = -5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := referenceParams()
			tt.mutate(&params)

			_, err := NewProjector(nil).Project(params, time.Now().UTC())
			var invalid *InvalidParamsError
			if !errors.As(err, &invalid) {
				t.Errorf("Project() error = %v, expected *InvalidParamsError", err)
			}
		})
	}
}

func TestProjectMarginNotPositive(t *testing.T) {
	params := referenceParams()
	params.UnitVariableCost = 500 // equal to price

	_, err := NewProjector(nil).Project(params, time.Now().UTC())
	if !errors.Is(err, ErrMarginNotPositive) {
		t.Errorf("Project() error = %v, expected ErrMarginNotPositive", err)
	}

	params.UnitVariableCost = 600 // above price
	_, err = NewProjector(nil).Project(params, time.Now().UTC())
	if !errors.Is(err, ErrMarginNotPositive) {
		t.Errorf("Project() error = %v, expected ErrMarginNotPositive", err)
	}
}

// Pure function: identical inputs must produce identical outputs.
func TestProjectIdempotent(t *testing.T) {
	anchor := datetime.MustParseTime(time.RFC3339, "2025-03-10T08:00:00Z")
	projector := NewProjector(nil)

	first, err := projector.Project(referenceParams(), anchor)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	second, err := projector.Project(referenceParams(), anchor)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Project() is not deterministic for identical inputs")
	}
}

func TestProjectGrowthClampedToInvariant(t *testing.T) {
	params := referenceParams()
	params.GrowthRate = 0.9
	params.ProjectionMonths = 2

	results, err := NewProjector(nil).Project(params, time.Now().UTC())
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	// Month 2 grows by at most the clamped 20%.
	if got := results.MonthlyProjections[1].Units; got != 120 {
		t.Errorf("month 2 units = %v, expected 120 (clamped growth)", got)
	}
}
