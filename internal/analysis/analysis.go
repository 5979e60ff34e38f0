// Package analysis orchestrates the break-even pipeline: records in, derived
// parameters, data-quality verdict, monthly aggregates, and a projection out.
// It is the single entry point shared by the CLI and the HTTP API.
package analysis

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/okonta/poultry-breakeven/pkg/aggregate"
	"github.com/okonta/poultry-breakeven/pkg/breakeven"
	"github.com/okonta/poultry-breakeven/pkg/records"
)

// Service ties the aggregator, estimator, and projector together. Stateless
// and safe for concurrent use.
type Service struct {
	logger     *zap.Logger
	aggregator *aggregate.Aggregator
	estimator  *breakeven.Estimator
	projector  *breakeven.Projector
}

// NewService creates an analysis service with the given logger. If logger is
// nil, it will use a no-op logger to prevent panics.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:     logger,
		aggregator: aggregate.NewAggregator(logger),
		estimator:  breakeven.NewEstimator(logger),
		projector:  breakeven.NewProjector(logger),
	}
}

// Request carries one analysis invocation. AsOf anchors the trailing window
// and projection dates; a zero AsOf means the current UTC instant.
type Request struct {
	Sales            []records.SaleRecord
	Expenses         []records.ExpenseRecord
	TimeframeMonths  int
	ProjectionMonths int
	AsOf             time.Time
}

// Report is the full analysis output. Results is nil when the derived
// parameters make a projection impossible (for example variable cost at or
// above price); the reason is appended to Quality.Warnings so a dashboard
// can always render something.
type Report struct {
	Params     breakeven.Params             `json:"params"`
	Quality    breakeven.Quality            `json:"dataQuality"`
	Results    *breakeven.Results           `json:"results,omitempty"`
	Aggregates []aggregate.MonthlyAggregate `json:"aggregates"`
}

// Analyze derives parameters from the request's records and projects the
// profit trajectory with them.
func (s *Service) Analyze(req Request) *Report {
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	derived := s.estimator.AutoCalculate(req.Sales, req.Expenses, req.TimeframeMonths, asOf)
	derived.Params.ProjectionMonths = req.ProjectionMonths

	report := &Report{
		Params:     derived.Params,
		Quality:    derived.Quality,
		Aggregates: s.aggregator.ByMonth(req.Sales, req.Expenses),
	}

	results, err := s.projector.Project(derived.Params, asOf)
	if err != nil {
		// Auto-derived parameters can legitimately fail the projector's
		// margin check on thin or lopsided data. The analysis still stands;
		// record why no projection is attached.
		s.logger.Warn("projection skipped for derived parameters",
			zap.String("op", "analysis.Analyze"),
			zap.Error(err),
		)
		report.Quality.Warnings = append(report.Quality.Warnings, "projection unavailable: "+err.Error())
		return report
	}
	report.Results = results
	return report
}

// Project runs the projector with user-supplied parameters, bypassing
// estimation entirely. Unlike Analyze, invalid parameters here fail loudly.
func (s *Service) Project(params breakeven.Params, asOf time.Time) (*breakeven.Results, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return s.projector.Project(params, asOf)
}

// Aggregates folds the records into monthly totals, optionally zero-filling
// interior gap months for chart continuity.
func (s *Service) Aggregates(sales []records.SaleRecord, expenses []records.ExpenseRecord, fillGaps bool) []aggregate.MonthlyAggregate {
	aggregates := s.aggregator.ByMonth(sales, expenses)
	if fillGaps {
		aggregates = aggregate.FillGaps(aggregates)
	}
	return aggregates
}

// IsParamError reports whether err is one of the projector's hard parameter
// failures, letting transport layers map it to a client error.
func IsParamError(err error) bool {
	var invalid *breakeven.InvalidParamsError
	return errors.As(err, &invalid) || errors.Is(err, breakeven.ErrMarginNotPositive)
}
