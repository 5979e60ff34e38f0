// Package output provides utilities for formatting and displaying
// projection results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okonta/poultry-breakeven/pkg/breakeven"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results *breakeven.Results) {
	if results == nil {
		fmt.Println("no projection available")
		return
	}

	p := message.NewPrinter(language.English)
	_, _ = p.Printf("Contribution margin: %.2f (ratio %.4f)\n", results.ContributionMargin, results.ContributionMarginRatio)
	_, _ = p.Printf("Break-even volume:   %.2f crates/month (%.2f revenue)\n", results.BreakEvenUnits, results.BreakEvenRevenue)
	if results.BreakEvenMonth != nil && results.BreakEvenDate != nil {
		_, _ = p.Printf("Break-even reached:  month %d (~%s)\n", *results.BreakEvenMonth, *results.BreakEvenDate)
	} else {
		fmt.Println("Break-even reached:  not within the projection window")
	}

	fmt.Println()
	fmt.Printf("Month | Units     | Revenue       | Costs         | Profit        | Cumulative\n")
	fmt.Printf("_____ | _____     | _______       | _____         | ______        | __________\n")
	for _, row := range results.MonthlyProjections {
		_, _ = p.Printf("%5d | %9.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
			row.Month, row.Units, row.Revenue, row.TotalCosts, row.Profit, row.CumulativeProfit)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results *breakeven.Results) {
	fmt.Print(CsvString(results))
}

// CsvString renders the monthly projections as CSV, one row per month.
func CsvString(results *breakeven.Results) string {
	if results == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(`"month","units","revenue","variableCosts","fixedCosts","totalCosts","profit","cumulativeProfit"` + "\n")
	for _, row := range results.MonthlyProjections {
		fmt.Fprintf(&b, `"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`+"\n",
			row.Month, row.Units, row.Revenue, row.VariableCosts, row.FixedCosts, row.TotalCosts, row.Profit, row.CumulativeProfit)
	}
	return b.String()
}
