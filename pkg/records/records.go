// Package records defines the sale and expense record value types the
// break-even engine consumes, along with tolerant parsing for the monetary
// fields. Records are owned by the caller; nothing in this module mutates
// them once constructed.
package records

// ExpenseCategory identifies what an operating cost was spent on.
type ExpenseCategory string

// Known expense categories. Unknown categories are accepted and classified
// as fixed costs downstream.
const (
	CategoryFeed       ExpenseCategory = "feed"
	CategoryMedication ExpenseCategory = "medication"
	CategoryLabor      ExpenseCategory = "labor"
	CategoryUtilities  ExpenseCategory = "utilities"
	CategoryEquipment  ExpenseCategory = "equipment"
	CategoryOther      ExpenseCategory = "other"
)

// SaleRecord represents one completed sale transaction, already scoped to a
// single farm by the caller.
type SaleRecord struct {
	SaleDate      string `json:"saleDate"`
	TotalAmount   Amount `json:"totalAmount"`
	CratesSold    int    `json:"cratesSold"`
	PricePerCrate Amount `json:"pricePerCrate"`
}

// ExpenseRecord represents one recorded operating cost.
type ExpenseRecord struct {
	ExpenseDate string          `json:"expenseDate"`
	Category    ExpenseCategory `json:"category"`
	Amount      Amount          `json:"amount"`
}
