// Package aggregate folds raw sale and expense records into per-calendar-month
// totals keyed by UTC "YYYY-MM" month keys.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/okonta/poultry-breakeven/pkg/costs"
	"github.com/okonta/poultry-breakeven/pkg/datetime"
	"github.com/okonta/poultry-breakeven/pkg/records"
)

// MonthlyAggregate holds the totals for one calendar month. Months with no
// records are absent from aggregation output; see FillGaps for the chart
// continuity case.
type MonthlyAggregate struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	VariableCosts float64 `json:"variableCosts"`
	FixedCosts    float64 `json:"fixedCosts"`
	TotalCosts    float64 `json:"totalCosts"`
	Profit        float64 `json:"profit"`
	UnitsSold     int     `json:"unitsSold"`
}

// Aggregator folds records into monthly buckets. Malformed dates or amounts
// never abort a fold; they are skipped or coalesced to zero and reported
// through the logger. The zero value is usable; a nil logger means no-op
// logging.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates an aggregator with the given logger. If logger is
// nil, it will use a no-op logger to prevent panics.
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

type monthBucket struct {
	revenue       decimal.Decimal
	variableCosts decimal.Decimal
	fixedCosts    decimal.Decimal
	unitsSold     int
}

// ByMonth folds sales and expenses into per-month aggregates sorted
// ascending by month key. Zero-padded keys make the lexicographic sort
// chronological. Empty inputs yield an empty slice.
func (a *Aggregator) ByMonth(sales []records.SaleRecord, expenses []records.ExpenseRecord) []MonthlyAggregate {
	buckets := make(map[string]*monthBucket)

	bucket := func(key string) *monthBucket {
		b, ok := buckets[key]
		if !ok {
			b = &monthBucket{}
			buckets[key] = b
		}
		return b
	}

	for _, sale := range sales {
		key, err := datetime.MonthKey(sale.SaleDate)
		if err != nil {
			a.logger.Warn("skipping sale with unparseable date",
				zap.String("op", "aggregate.ByMonth"),
				zap.String("saleDate", sale.SaleDate),
			)
			continue
		}
		if sale.TotalAmount.Raw() != "" {
			a.logger.Warn("sale amount failed to parse, treating as zero",
				zap.String("op", "aggregate.ByMonth"),
				zap.String("totalAmount", sale.TotalAmount.Raw()),
			)
		}
		b := bucket(key)
		b.revenue = b.revenue.Add(sale.TotalAmount.Decimal())
		b.unitsSold += sale.CratesSold
	}

	for _, expense := range expenses {
		key, err := datetime.MonthKey(expense.ExpenseDate)
		if err != nil {
			a.logger.Warn("skipping expense with unparseable date",
				zap.String("op", "aggregate.ByMonth"),
				zap.String("expenseDate", expense.ExpenseDate),
			)
			continue
		}
		if expense.Amount.Raw() != "" {
			a.logger.Warn("expense amount failed to parse, treating as zero",
				zap.String("op", "aggregate.ByMonth"),
				zap.String("amount", expense.Amount.Raw()),
				zap.String("category", string(expense.Category)),
			)
		}
		b := bucket(key)
		if costs.Classify(expense.Category) == costs.Variable {
			b.variableCosts = b.variableCosts.Add(expense.Amount.Decimal())
		} else {
			b.fixedCosts = b.fixedCosts.Add(expense.Amount.Decimal())
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	aggregates := make([]MonthlyAggregate, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		revenue, _ := b.revenue.Float64()
		variable, _ := b.variableCosts.Float64()
		fixed, _ := b.fixedCosts.Float64()
		total, _ := b.variableCosts.Add(b.fixedCosts).Float64()
		profit, _ := b.revenue.Sub(b.variableCosts).Sub(b.fixedCosts).Float64()
		aggregates = append(aggregates, MonthlyAggregate{
			Month:         key,
			Revenue:       revenue,
			VariableCosts: variable,
			FixedCosts:    fixed,
			TotalCosts:    total,
			Profit:        profit,
			UnitsSold:     b.unitsSold,
		})
	}
	return aggregates
}

// ByMonth folds records with a no-op logger. See Aggregator.ByMonth.
func ByMonth(sales []records.SaleRecord, expenses []records.ExpenseRecord) []MonthlyAggregate {
	return NewAggregator(nil).ByMonth(sales, expenses)
}

// FillGaps returns a copy of the aggregates with zero-valued entries
// inserted for every month between the first and last keys that has no
// records. Zero-filling is a presentation concern for chart continuity;
// aggregation itself never fabricates months.
func FillGaps(aggregates []MonthlyAggregate) []MonthlyAggregate {
	if len(aggregates) < 2 {
		return append([]MonthlyAggregate(nil), aggregates...)
	}

	filled := make([]MonthlyAggregate, 0, len(aggregates))
	filled = append(filled, aggregates[0])
	for i := 1; i < len(aggregates); i++ {
		key := filled[len(filled)-1].Month
		for {
			next, err := datetime.NextMonthKey(key)
			if err != nil || next >= aggregates[i].Month {
				break
			}
			filled = append(filled, MonthlyAggregate{Month: next})
			key = next
		}
		filled = append(filled, aggregates[i])
	}
	return filled
}
