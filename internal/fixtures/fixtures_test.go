package fixtures_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/stockseed/internal/fixtures"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "products.json", `[
		{"productId": "P1", "name": "Widget", "price": 12.5, "rating": 4.2, "stockQuantity": 10},
		{"productId": "P2", "name": "Gadget", "price": 3, "rating": null, "stockQuantity": 0}
	]`)

	rows, err := fixtures.Load(tables.Products, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	p, ok := rows[0].(types.Product)
	if !ok {
		t.Fatalf("rows[0] is %T, want types.Product", rows[0])
	}
	if p.ProductID != "P1" || p.Price != 12.5 || p.Rating == nil || *p.Rating != 4.2 {
		t.Errorf("rows[0] = %+v", p)
	}

	values := rows[1].Values()
	if values[3] != nil {
		t.Errorf("rating value = %v, want nil", values[3])
	}
	if len(values) != len(rows[1].Columns()) {
		t.Errorf("values/columns length mismatch: %d vs %d", len(values), len(rows[1].Columns()))
	}
}

func TestLoadKeepsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "users.json", `[
		{"userId": "U1", "name": "Ada", "email": "ada@example.com"},
		{"userId": "U1", "name": "Ada", "email": "ada@example.com"}
	]`)

	rows, err := fixtures.Load(tables.Users, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(rows))
	}
}

func TestLoadParsesTimestamps(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sales.json", `[
		{"saleId": "S1", "productId": "P1", "timestamp": "2024-03-16T06:30:00.000Z", "quantity": 2, "unitPrice": 5, "totalAmount": 10}
	]`)

	rows, err := fixtures.Load(tables.Sales, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := rows[0].(types.Sale)
	want := time.Date(2024, 3, 16, 6, 30, 0, 0, time.UTC)
	if !s.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", s.Timestamp, want)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown column", "users.json", `[{"userId": "U1", "name": "Ada", "email": "a@b.c", "age": 3}]`},
		{"not an array", "users.json", `{"userId": "U1"}`},
		{"malformed", "users.json", `[{"userId": `},
		{"empty", "users.json", ``},
		{"wrong type", "users.json", `[{"userId": 7, "name": "Ada", "email": "a@b.c"}]`},
		{"trailing garbage", "users.json", `[{"userId": "U1", "name": "Ada", "email": "a@b.c"}] garbage`},
		{"second array", "users.json", `[] []`},
		{"null document", "users.json", `null`},
		{"null row", "users.json", `[null]`},
		{"missing column", "users.json", `[{"userId": "U1", "name": "Ada"}]`},
		{"null column", "users.json", `[{"userId": "U1", "name": null, "email": "a@b.c"}]`},
		{"yaml null document", "users.yaml", "null\n"},
		{"yaml mapping", "users.yaml", "userId: U1\n"},
		{"yaml second document", "users.yaml", "- {userId: U1, name: Ada, email: a@b.c}\n---\n- {userId: U2, name: Bob, email: b@b.c}\n"},
		{"yaml missing column", "users.yaml", "- userId: U1\n  email: a@b.c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			if _, err := fixtures.Load(tables.Users, path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := fixtures.Load(tables.Users, filepath.Join(dir, "nope.json")); !os.IsNotExist(err) {
			t.Errorf("err = %v, want not-exist error", err)
		}
	})
}

func TestLoadMissingColumnNamesKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sales.json", `[
		{"saleId": "S1", "productId": "P1", "timestamp": "2024-03-16T06:30:00Z", "quantity": 2, "unitPrice": 5, "totalAmount": 10},
		{"saleId": "S2", "productId": "P1", "quantity": 1, "unitPrice": 5, "totalAmount": 5}
	]`)

	_, err := fixtures.Load(tables.Sales, path)
	if err == nil {
		t.Fatal("expected error for row without timestamp")
	}
	if !strings.Contains(err.Error(), `row 1 is missing "timestamp"`) {
		t.Errorf("err = %v, want it to name row 1 and timestamp", err)
	}
}

func TestLoadOptionalColumnsMayBeOmitted(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "products.json", `[{"productId": "P1", "name": "Widget", "price": 1, "stockQuantity": 2}]`)
	summaries := writeFile(t, dir, "purchaseSummary.yaml", "- purchaseSummaryId: PS1\n  totalPurchased: 10\n  date: 2024-01-05T00:00:00Z\n")

	rows, err := fixtures.Load(tables.Products, products)
	if err != nil {
		t.Fatalf("Load products: %v", err)
	}
	if p := rows[0].(types.Product); p.Rating != nil {
		t.Errorf("Rating = %v, want nil", *p.Rating)
	}
	if _, err := fixtures.Load(tables.PurchaseSummary, summaries); err != nil {
		t.Errorf("Load purchase summary without changePercentage: %v", err)
	}
}

func TestLoadEmptyArray(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users.json", "users.yaml"} {
		rows, err := fixtures.Load(tables.Users, writeFile(t, dir, name, "[]\n"))
		if err != nil || len(rows) != 0 {
			t.Errorf("Load(%s) = %d rows, %v; want 0, nil", name, len(rows), err)
		}
	}
}

func TestResolvePrefersJSON(t *testing.T) {
	dir := t.TempDir()

	if got, want := fixtures.Resolve(dir, tables.ExpenseByCategory), filepath.Join(dir, "expenseByCategory.json"); got != want {
		t.Errorf("Resolve with no files = %q, want %q", got, want)
	}

	yamlPath := writeFile(t, dir, "expenseByCategory.yaml", "[]")
	if got := fixtures.Resolve(dir, tables.ExpenseByCategory); got != yamlPath {
		t.Errorf("Resolve with yaml only = %q, want %q", got, yamlPath)
	}

	jsonPath := writeFile(t, dir, "expenseByCategory.json", "[]")
	if got := fixtures.Resolve(dir, tables.ExpenseByCategory); got != jsonPath {
		t.Errorf("Resolve with both = %q, want %q", got, jsonPath)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "expenseByCategory.yml", `
- expenseByCategoryId: EC1
  expenseSummaryId: ES1
  category: Office
  amount: 5000
  date: 2024-01-05T00:00:00Z
`)

	rows, err := fixtures.Load(tables.ExpenseByCategory, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	e := rows[0].(types.ExpenseByCategory)
	if e.Amount != 5000 || e.ExpenseSummaryID != "ES1" {
		t.Errorf("row = %+v", e)
	}
	if e.Date.Year() != 2024 {
		t.Errorf("Date = %v, want year 2024", e.Date)
	}

	bad := writeFile(t, dir, "users.yaml", "- userId: U1\n  name: Ada\n  email: a@b.c\n  nickname: x\n")
	if _, err := fixtures.Load(tables.Users, bad); err == nil {
		t.Error("expected unknown yaml field to fail")
	}
}

func TestSampleFixturesLoad(t *testing.T) {
	dir := filepath.Join("..", "..", "db", "seedData")
	for _, table := range tables.All {
		rows, err := fixtures.Load(table, fixtures.Resolve(dir, table))
		if err != nil {
			t.Errorf("%s: %v", table, err)
			continue
		}
		if len(rows) == 0 {
			t.Errorf("%s: sample fixture is empty", table)
		}
	}
}
