package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	salesHeader    = []string{"saleDate", "totalAmount", "cratesSold", "pricePerCrate"}
	expensesHeader = []string{"expenseDate", "category", "amount"}
)

// LoadSalesCSV loads sale records from a CSV file with the header
// saleDate,totalAmount,cratesSold,pricePerCrate.
func LoadSalesCSV(filename string) ([]SaleRecord, error) {
	rows, err := readCSV(filename, salesHeader)
	if err != nil {
		return nil, fmt.Errorf("sales CSV: %w", err)
	}

	sales := make([]SaleRecord, 0, len(rows))
	for i, row := range rows {
		crates, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("sales CSV row %d: invalid cratesSold %q: %w", i+2, row[2], err)
		}
		sales = append(sales, SaleRecord{
			SaleDate:      strings.TrimSpace(row[0]),
			TotalAmount:   amountFromCSV(row[1]),
			CratesSold:    crates,
			PricePerCrate: amountFromCSV(row[3]),
		})
	}
	return sales, nil
}

// LoadExpensesCSV loads expense records from a CSV file with the header
// expenseDate,category,amount.
func LoadExpensesCSV(filename string) ([]ExpenseRecord, error) {
	rows, err := readCSV(filename, expensesHeader)
	if err != nil {
		return nil, fmt.Errorf("expenses CSV: %w", err)
	}

	expenses := make([]ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, ExpenseRecord{
			ExpenseDate: strings.TrimSpace(row[0]),
			Category:    ExpenseCategory(strings.ToLower(strings.TrimSpace(row[1]))),
			Amount:      amountFromCSV(row[2]),
		})
	}
	return expenses, nil
}

func amountFromCSV(field string) Amount {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return Amount{}
	}
	value, err := ParseAmount(trimmed)
	if err != nil {
		return Amount{raw: trimmed}
	}
	return Amount{value: value, valid: true}
}

func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", filename)
	}
	if !headerMatches(rows[0], expectedHeader) {
		return nil, fmt.Errorf("%s: header mismatch, expected %v, got %v", filename, expectedHeader, rows[0])
	}
	for i, row := range rows[1:] {
		if len(row) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(row))
		}
	}
	return rows[1:], nil
}

func headerMatches(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), expected[i]) {
			return false
		}
	}
	return true
}
