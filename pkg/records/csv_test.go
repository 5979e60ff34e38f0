package records

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadSalesCSV(t *testing.T) {
	path := writeFile(t, "sales.csv",
		"saleDate,totalAmount,cratesSold,pricePerCrate\n"+
			"2025-01-10,40000,100,400\n"+
			"2025-02-12,\"20,000.00\",50,400\n")

	sales, err := LoadSalesCSV(path)
	if err != nil {
		t.Fatalf("LoadSalesCSV() error = %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("LoadSalesCSV() returned %d records, expected 2", len(sales))
	}
	if sales[0].SaleDate != "2025-01-10" || sales[0].CratesSold != 100 {
		t.Errorf("unexpected first record: %+v", sales[0])
	}
	if got := sales[1].TotalAmount.Float64(); got != 20000 {
		t.Errorf("separator amount = %v, expected 20000", got)
	}
}

func TestLoadSalesCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Header mismatch",
			content: "date,amount\n2025-01-10,100\n",
		},
		{
			name:    "Bad crate count",
			content: "saleDate,totalAmount,cratesSold,pricePerCrate\n2025-01-10,40000,many,400\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "sales.csv", tt.content)
			if _, err := LoadSalesCSV(path); err == nil {
				t.Error("LoadSalesCSV() expected error but got none")
			}
		})
	}
}

func TestLoadExpensesCSV(t *testing.T) {
	path := writeFile(t, "expenses.csv",
		"expenseDate,category,amount\n"+
			"2025-01-05,Feed,8000\n"+
			"2025-01-20,labor,not-a-number\n")

	expenses, err := LoadExpensesCSV(path)
	if err != nil {
		t.Fatalf("LoadExpensesCSV() error = %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("LoadExpensesCSV() returned %d records, expected 2", len(expenses))
	}
	if expenses[0].Category != CategoryFeed {
		t.Errorf("category = %q, expected %q (lowercased)", expenses[0].Category, CategoryFeed)
	}
	if expenses[1].Amount.Valid() {
		t.Error("non-numeric amount should be invalid")
	}
	if got := expenses[1].Amount.Float64(); got != 0 {
		t.Errorf("non-numeric amount = %v, expected 0", got)
	}
}
