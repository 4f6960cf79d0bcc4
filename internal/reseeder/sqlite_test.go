package reseeder_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/reseeder"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/internal/testhelpers"
	"github.com/Rana718/stockseed/internal/types"
)

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func ptr(f float64) *float64 { return &f }

// writeFixtures writes a fixture file for every table. Tables missing from
// records get an empty array.
func writeFixtures(t *testing.T, records map[tables.Table]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	for _, table := range tables.All {
		rec, ok := records[table]
		if !ok {
			rec = []struct{}{}
		}
		testhelpers.WriteFixture(t, dir, table.FixtureFile(), rec)
	}
	return dir
}

func fullFixtures(t *testing.T) string {
	return writeFixtures(t, map[tables.Table]interface{}{
		tables.Users: []types.User{
			{UserID: "U1", Name: "Ada", Email: "ada@example.com"},
			{UserID: "U2", Name: "Grace", Email: "grace@example.com"},
			{UserID: "U1", Name: "Ada again", Email: "ada2@example.com"},
		},
		tables.Products: []types.Product{
			{ProductID: "P1", Name: "Widget", Price: 12.5, Rating: ptr(4.2), StockQuantity: 10},
			{ProductID: "P2", Name: "Gadget", Price: 3, StockQuantity: 0},
		},
		tables.ExpenseSummary: []types.ExpenseSummary{
			{ExpenseSummaryID: "ES1", TotalExpenses: 900, Date: day},
		},
		tables.SalesSummary: []types.SalesSummary{
			{SalesSummaryID: "SS1", TotalValue: 1200, ChangePercentage: ptr(-3.5), Date: day},
		},
		tables.PurchaseSummary: []types.PurchaseSummary{
			{PurchaseSummaryID: "PS1", TotalPurchased: 700, Date: day},
		},
		tables.Expenses: []types.Expense{
			{ExpenseID: "E1", Category: "Office", Amount: 120.75, Timestamp: day},
		},
		tables.Sales: []types.Sale{
			{SaleID: "S1", ProductID: "P1", Timestamp: day, Quantity: 2, UnitPrice: 12.5, TotalAmount: 25},
			{SaleID: "S2", ProductID: "P2", Timestamp: day, Quantity: 1, UnitPrice: 3, TotalAmount: 3},
		},
		tables.Purchases: []types.Purchase{
			{PurchaseID: "PU1", ProductID: "P1", Timestamp: day, Quantity: 5, UnitCost: 8, TotalCost: 40},
		},
		tables.ExpenseByCategory: []types.ExpenseByCategory{
			{ExpenseByCategoryID: "EC1", ExpenseSummaryID: "ES1", Category: "Office", Amount: 450, Date: day},
			{ExpenseByCategoryID: "EC2", ExpenseSummaryID: "ES1", Category: "Salaries", Amount: 450, Date: day},
		},
	})
}

var fullCounts = map[tables.Table]int64{
	tables.Users:             2,
	tables.Products:          2,
	tables.ExpenseSummary:    1,
	tables.SalesSummary:      1,
	tables.PurchaseSummary:   1,
	tables.Expenses:          1,
	tables.Sales:             2,
	tables.Purchases:         1,
	tables.ExpenseByCategory: 2,
}

func assertCounts(t *testing.T, a *database.Adapter, want map[tables.Table]int64) {
	t.Helper()
	for _, table := range tables.All {
		if got := testhelpers.CountRows(t, a, table.Name()); got != want[table] {
			t.Errorf("%s has %d rows, want %d", table.Name(), got, want[table])
		}
	}
}

func TestRunProductAndSale(t *testing.T) {
	a := testhelpers.NewSQLiteAdapter(t)
	dir := writeFixtures(t, map[tables.Table]interface{}{
		tables.Products: []types.Product{{ProductID: "P1", Name: "Widget", Price: 1, StockQuantity: 1}},
		tables.Sales: []types.Sale{
			{SaleID: "S1", ProductID: "P1", Timestamp: day, Quantity: 1, UnitPrice: 1, TotalAmount: 1},
		},
	})

	if err := reseeder.New(a, reseeder.Options{FixturesDir: dir}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertCounts(t, a, map[tables.Table]int64{tables.Products: 1, tables.Sales: 1})
}

func TestRunReplacesExistingRows(t *testing.T) {
	ctx := context.Background()
	a := testhelpers.NewSQLiteAdapter(t)

	// a stale sale pinned to a product that the fixtures do not contain
	if _, err := a.InsertSkipDuplicates(ctx, "Products", "productId",
		types.Columns(tables.Products), [][]interface{}{{"OLD", "Old", 1.0, nil, 1}}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.InsertSkipDuplicates(ctx, "Sales", "saleId",
		types.Columns(tables.Sales), [][]interface{}{{"S-OLD", "OLD", day, 1, 1.0, 1.0}}); err != nil {
		t.Fatal(err)
	}

	if err := reseeder.New(a, reseeder.Options{FixturesDir: fullFixtures(t)}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertCounts(t, a, fullCounts)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a := testhelpers.NewSQLiteAdapter(t)
	r := reseeder.New(a, reseeder.Options{FixturesDir: fullFixtures(t)})

	for i := 0; i < 2; i++ {
		if err := r.Run(ctx); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		assertCounts(t, a, fullCounts)
	}
}

func TestSeedIntoPopulatedTablesSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	a := testhelpers.NewSQLiteAdapter(t)
	r := reseeder.New(a, reseeder.Options{FixturesDir: fullFixtures(t)})

	if err := r.Seed(ctx); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := r.Seed(ctx); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	assertCounts(t, a, fullCounts)
}

func TestRunWithChildBeforeParentFails(t *testing.T) {
	a := testhelpers.NewSQLiteAdapter(t)
	dir := writeFixtures(t, map[tables.Table]interface{}{
		tables.Products: []types.Product{{ProductID: "P1", Name: "Widget", Price: 1, StockQuantity: 1}},
		tables.Sales: []types.Sale{
			{SaleID: "S1", ProductID: "P1", Timestamp: day, Quantity: 1, UnitPrice: 1, TotalAmount: 1},
		},
	})
	order := []tables.Table{tables.Users, tables.Sales, tables.Products}

	err := reseeder.New(a, reseeder.Options{FixturesDir: dir, Order: order}).Run(context.Background())

	var seedErr *reseeder.TableSeedError
	if !errors.As(err, &seedErr) {
		t.Fatalf("Run error = %v, want *TableSeedError", err)
	}
	if seedErr.Table != tables.Sales {
		t.Errorf("failed table = %s, want sales", seedErr.Table)
	}
	var writeErr *reseeder.StoreWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("error %v does not wrap *StoreWriteError", err)
	}
	if len(writeErr.MissingParents) != 1 || writeErr.MissingParents[0] != tables.Products {
		t.Errorf("MissingParents = %v, want [Products]", writeErr.MissingParents)
	}
	if !strings.Contains(err.Error(), "rows reference Products, which was not seeded") {
		t.Errorf("error %q does not name the unseeded parent", err)
	}
	if !database.IsForeignKeyViolation(err) {
		t.Errorf("error %v is not a foreign key violation", err)
	}
	assertCounts(t, a, map[tables.Table]int64{})
}

func TestClearAllWithMissingTable(t *testing.T) {
	ctx := context.Background()
	a := testhelpers.NewSQLiteAdapter(t)

	if err := reseeder.New(a, reseeder.Options{FixturesDir: fullFixtures(t)}).Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := a.Exec(ctx, `DROP TABLE "ExpenseByCategory"`); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	report, err := reseeder.New(a, reseeder.Options{}).ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if len(report.Failed) != 1 || report.Failed[0].Table != tables.ExpenseByCategory {
		t.Fatalf("failed = %v, want only expenseByCategory", report.Failed)
	}
	if !database.IsUndefinedTable(report.Failed[0]) {
		t.Errorf("clear error %v is not an undefined table error", report.Failed[0])
	}
	if len(report.Cleared) != 8 {
		t.Errorf("cleared %d tables, want 8", len(report.Cleared))
	}
	for _, table := range report.Cleared {
		if n := testhelpers.CountRows(t, a, table.Name()); n != 0 {
			t.Errorf("%s has %d rows after clear, want 0", table.Name(), n)
		}
	}

	// enforcement is back on: an orphan sale is rejected
	_, err = a.InsertSkipDuplicates(ctx, "Sales", "saleId", types.Columns(tables.Sales),
		[][]interface{}{{"S9", "MISSING", day, 1, 1.0, 1.0}})
	if !database.IsForeignKeyViolation(err) {
		t.Errorf("orphan insert after ClearAll = %v, want foreign key violation", err)
	}
}

func TestRunSampleFixtures(t *testing.T) {
	a := testhelpers.NewSQLiteAdapter(t)
	dir := filepath.Join("..", "..", "db", "seedData")

	if err := reseeder.New(a, reseeder.Options{FixturesDir: dir}).Run(context.Background()); err != nil {
		t.Fatalf("Run with sample fixtures: %v", err)
	}
	for _, table := range tables.All {
		if n := testhelpers.CountRows(t, a, table.Name()); n == 0 {
			t.Errorf("%s is empty after seeding the sample fixtures", table.Name())
		}
	}
}
