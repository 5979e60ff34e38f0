// Package costs classifies farm expenses into variable and fixed cost
// buckets and partitions expense lists accordingly.
package costs

import (
	"github.com/shopspring/decimal"

	"github.com/okonta/poultry-breakeven/pkg/records"
)

// CostType is the two-value classification of an expense.
type CostType string

const (
	// Variable costs scale with production volume.
	Variable CostType = "variable"

	// Fixed costs are incurred regardless of production volume.
	Fixed CostType = "fixed"
)

// costTypeByCategory is the static classification table. Categories absent
// from the table classify as fixed.
var costTypeByCategory = map[records.ExpenseCategory]CostType{
	records.CategoryFeed:       Variable,
	records.CategoryMedication: Variable,
	records.CategoryLabor:      Fixed,
	records.CategoryUtilities:  Fixed,
	records.CategoryEquipment:  Fixed,
	records.CategoryOther:      Fixed,
}

// Classify returns the cost type for an expense category. It is a total
// function: unknown categories default to fixed.
func Classify(category records.ExpenseCategory) CostType {
	if costType, ok := costTypeByCategory[category]; ok {
		return costType
	}
	return Fixed
}

// Breakdown holds summed expense amounts per cost type.
type Breakdown struct {
	Variable float64 `json:"variable"`
	Fixed    float64 `json:"fixed"`
	Total    float64 `json:"total"`
}

// SplitByType partitions expenses by Classify and sums each partition.
// Amounts that failed to parse contribute zero.
func SplitByType(expenses []records.ExpenseRecord) Breakdown {
	variable := decimal.Zero
	fixed := decimal.Zero
	for _, expense := range expenses {
		amount := expense.Amount.Decimal()
		if Classify(expense.Category) == Variable {
			variable = variable.Add(amount)
		} else {
			fixed = fixed.Add(amount)
		}
	}

	variableF, _ := variable.Float64()
	fixedF, _ := fixed.Float64()
	totalF, _ := variable.Add(fixed).Float64()
	return Breakdown{Variable: variableF, Fixed: fixedF, Total: totalF}
}

// FilterByType returns the expenses whose category classifies as the given
// cost type. The input slice is never modified.
func FilterByType(expenses []records.ExpenseRecord, costType CostType) []records.ExpenseRecord {
	filtered := make([]records.ExpenseRecord, 0, len(expenses))
	for _, expense := range expenses {
		if Classify(expense.Category) == costType {
			filtered = append(filtered, expense)
		}
	}
	return filtered
}
