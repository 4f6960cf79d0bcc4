package tables

import (
	"fmt"
	"strings"
)

// Table identifies one of the nine dashboard tables. The set is closed:
// every per-table behaviour is a switch over these constants.
type Table int

const (
	Users Table = iota
	Products
	ExpenseSummary
	SalesSummary
	PurchaseSummary
	Expenses
	Sales
	Purchases
	ExpenseByCategory
)

// All lists every table in declaration order.
var All = []Table{
	Users,
	Products,
	ExpenseSummary,
	SalesSummary,
	PurchaseSummary,
	Expenses,
	Sales,
	Purchases,
	ExpenseByCategory,
}

// DeletionOrder clears children before parents.
var DeletionOrder = []Table{
	Sales,             // depends on Products
	Purchases,         // depends on Products
	ExpenseByCategory, // depends on ExpenseSummary
	Products,
	Users,
	Expenses,
	SalesSummary,
	PurchaseSummary,
	ExpenseSummary,
}

// LoadOrder seeds parents before children.
var LoadOrder = []Table{
	Users,
	Products,
	ExpenseSummary,
	SalesSummary,
	PurchaseSummary,
	Expenses,
	Sales,
	Purchases,
	ExpenseByCategory,
}

// Guarded tables carry the foreign keys that would block out-of-order
// deletion; enforcement on them is suspended while clearing.
var Guarded = []Table{
	Sales,
	Purchases,
	ExpenseByCategory,
}

type tableInfo struct {
	name       string
	key        string
	primaryKey string
	parents    []Table
}

var info = map[Table]tableInfo{
	Users:             {name: "Users", key: "users", primaryKey: "userId"},
	Products:          {name: "Products", key: "products", primaryKey: "productId"},
	ExpenseSummary:    {name: "ExpenseSummary", key: "expenseSummary", primaryKey: "expenseSummaryId"},
	SalesSummary:      {name: "SalesSummary", key: "salesSummary", primaryKey: "salesSummaryId"},
	PurchaseSummary:   {name: "PurchaseSummary", key: "purchaseSummary", primaryKey: "purchaseSummaryId"},
	Expenses:          {name: "Expenses", key: "expenses", primaryKey: "expenseId"},
	Sales:             {name: "Sales", key: "sales", primaryKey: "saleId", parents: []Table{Products}},
	Purchases:         {name: "Purchases", key: "purchases", primaryKey: "purchaseId", parents: []Table{Products}},
	ExpenseByCategory: {name: "ExpenseByCategory", key: "expenseByCategory", primaryKey: "expenseByCategoryId", parents: []Table{ExpenseSummary}},
}

func (t Table) lookup() tableInfo {
	ti, ok := info[t]
	if !ok {
		panic(fmt.Sprintf("tables: unknown table %d", int(t)))
	}
	return ti
}

// Name is the database table name.
func (t Table) Name() string { return t.lookup().name }

// Key is the model key used for fixture files and console output.
func (t Table) Key() string { return t.lookup().key }

// PrimaryKey is the table's primary key column.
func (t Table) PrimaryKey() string { return t.lookup().primaryKey }

// Parents lists the tables this table references.
func (t Table) Parents() []Table { return t.lookup().parents }

// FixtureFile is the JSON fixture file name for the table.
func (t Table) FixtureFile() string { return t.Key() + ".json" }

func (t Table) String() string {
	if ti, ok := info[t]; ok {
		return ti.key
	}
	return fmt.Sprintf("Table(%d)", int(t))
}

// Valid reports whether t is one of the nine known tables.
func (t Table) Valid() bool {
	_, ok := info[t]
	return ok
}

// Parse resolves a model key ("expenseByCategory") or table name
// ("ExpenseByCategory"), case-insensitively.
func Parse(s string) (Table, error) {
	s = strings.TrimSpace(s)
	for _, t := range All {
		if strings.EqualFold(s, t.Key()) || strings.EqualFold(s, t.Name()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown table: %q", s)
}

// ParseList parses a comma separated list of tables and returns them in
// load order with duplicates removed.
func ParseList(s string) ([]Table, error) {
	selected := make(map[Table]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := Parse(part)
		if err != nil {
			return nil, err
		}
		selected[t] = true
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no tables given")
	}

	var order []Table
	for _, t := range LoadOrder {
		if selected[t] {
			order = append(order, t)
		}
	}
	return order, nil
}
