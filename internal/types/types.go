package types

import (
	"slices"
	"time"

	"github.com/Rana718/stockseed/internal/tables"
)

// Row is a decoded fixture record ready for insertion. Values are returned
// in the same order as Columns.
type Row interface {
	Columns() []string
	Values() []interface{}
}

type User struct {
	UserID string `json:"userId" yaml:"userId"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
}

type Product struct {
	ProductID     string   `json:"productId" yaml:"productId"`
	Name          string   `json:"name" yaml:"name"`
	Price         float64  `json:"price" yaml:"price"`
	Rating        *float64 `json:"rating" yaml:"rating"`
	StockQuantity int      `json:"stockQuantity" yaml:"stockQuantity"`
}

type Sale struct {
	SaleID      string    `json:"saleId" yaml:"saleId"`
	ProductID   string    `json:"productId" yaml:"productId"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Quantity    int       `json:"quantity" yaml:"quantity"`
	UnitPrice   float64   `json:"unitPrice" yaml:"unitPrice"`
	TotalAmount float64   `json:"totalAmount" yaml:"totalAmount"`
}

type Purchase struct {
	PurchaseID string    `json:"purchaseId" yaml:"purchaseId"`
	ProductID  string    `json:"productId" yaml:"productId"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Quantity   int       `json:"quantity" yaml:"quantity"`
	UnitCost   float64   `json:"unitCost" yaml:"unitCost"`
	TotalCost  float64   `json:"totalCost" yaml:"totalCost"`
}

type Expense struct {
	ExpenseID string    `json:"expenseId" yaml:"expenseId"`
	Category  string    `json:"category" yaml:"category"`
	Amount    float64   `json:"amount" yaml:"amount"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type SalesSummary struct {
	SalesSummaryID   string    `json:"salesSummaryId" yaml:"salesSummaryId"`
	TotalValue       float64   `json:"totalValue" yaml:"totalValue"`
	ChangePercentage *float64  `json:"changePercentage" yaml:"changePercentage"`
	Date             time.Time `json:"date" yaml:"date"`
}

type PurchaseSummary struct {
	PurchaseSummaryID string    `json:"purchaseSummaryId" yaml:"purchaseSummaryId"`
	TotalPurchased    float64   `json:"totalPurchased" yaml:"totalPurchased"`
	ChangePercentage  *float64  `json:"changePercentage" yaml:"changePercentage"`
	Date              time.Time `json:"date" yaml:"date"`
}

type ExpenseSummary struct {
	ExpenseSummaryID string    `json:"expenseSummaryId" yaml:"expenseSummaryId"`
	TotalExpenses    float64   `json:"totalExpenses" yaml:"totalExpenses"`
	Date             time.Time `json:"date" yaml:"date"`
}

type ExpenseByCategory struct {
	ExpenseByCategoryID string    `json:"expenseByCategoryId" yaml:"expenseByCategoryId"`
	ExpenseSummaryID    string    `json:"expenseSummaryId" yaml:"expenseSummaryId"`
	Category            string    `json:"category" yaml:"category"`
	Amount              int64     `json:"amount" yaml:"amount"`
	Date                time.Time `json:"date" yaml:"date"`
}

var (
	userColumns              = []string{"userId", "name", "email"}
	productColumns           = []string{"productId", "name", "price", "rating", "stockQuantity"}
	saleColumns              = []string{"saleId", "productId", "timestamp", "quantity", "unitPrice", "totalAmount"}
	purchaseColumns          = []string{"purchaseId", "productId", "timestamp", "quantity", "unitCost", "totalCost"}
	expenseColumns           = []string{"expenseId", "category", "amount", "timestamp"}
	salesSummaryColumns      = []string{"salesSummaryId", "totalValue", "changePercentage", "date"}
	purchaseSummaryColumns   = []string{"purchaseSummaryId", "totalPurchased", "changePercentage", "date"}
	expenseSummaryColumns    = []string{"expenseSummaryId", "totalExpenses", "date"}
	expenseByCategoryColumns = []string{"expenseByCategoryId", "expenseSummaryId", "category", "amount", "date"}
)

func (User) Columns() []string { return userColumns }
func (u User) Values() []interface{} {
	return []interface{}{u.UserID, u.Name, u.Email}
}

func (Product) Columns() []string { return productColumns }
func (p Product) Values() []interface{} {
	return []interface{}{p.ProductID, p.Name, p.Price, nullable(p.Rating), p.StockQuantity}
}

func (Sale) Columns() []string { return saleColumns }
func (s Sale) Values() []interface{} {
	return []interface{}{s.SaleID, s.ProductID, s.Timestamp, s.Quantity, s.UnitPrice, s.TotalAmount}
}

func (Purchase) Columns() []string { return purchaseColumns }
func (p Purchase) Values() []interface{} {
	return []interface{}{p.PurchaseID, p.ProductID, p.Timestamp, p.Quantity, p.UnitCost, p.TotalCost}
}

func (Expense) Columns() []string { return expenseColumns }
func (e Expense) Values() []interface{} {
	return []interface{}{e.ExpenseID, e.Category, e.Amount, e.Timestamp}
}

func (SalesSummary) Columns() []string { return salesSummaryColumns }
func (s SalesSummary) Values() []interface{} {
	return []interface{}{s.SalesSummaryID, s.TotalValue, nullable(s.ChangePercentage), s.Date}
}

func (PurchaseSummary) Columns() []string { return purchaseSummaryColumns }
func (p PurchaseSummary) Values() []interface{} {
	return []interface{}{p.PurchaseSummaryID, p.TotalPurchased, nullable(p.ChangePercentage), p.Date}
}

func (ExpenseSummary) Columns() []string { return expenseSummaryColumns }
func (e ExpenseSummary) Values() []interface{} {
	return []interface{}{e.ExpenseSummaryID, e.TotalExpenses, e.Date}
}

func (ExpenseByCategory) Columns() []string { return expenseByCategoryColumns }
func (e ExpenseByCategory) Values() []interface{} {
	return []interface{}{e.ExpenseByCategoryID, e.ExpenseSummaryID, e.Category, e.Amount, e.Date}
}

// Columns returns the column set of t in insertion order.
func Columns(t tables.Table) []string {
	r := New(t)
	if r == nil {
		return nil
	}
	return r.Columns()
}

// optionalColumns may be absent or null in a fixture row.
var optionalColumns = []string{"rating", "changePercentage"}

// Required returns the columns of t that every fixture row must carry
// with a non-null value.
func Required(t tables.Table) []string {
	var required []string
	for _, c := range Columns(t) {
		if !slices.Contains(optionalColumns, c) {
			required = append(required, c)
		}
	}
	return required
}

// nullable turns a nil pointer into an untyped nil so drivers write NULL.
func nullable(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// Record is a Row that can also be filled from a query result. Fields
// returns pointers to the struct fields in column order.
type Record interface {
	Row
	Fields() []interface{}
}

func (u *User) Fields() []interface{} {
	return []interface{}{&u.UserID, &u.Name, &u.Email}
}

func (p *Product) Fields() []interface{} {
	return []interface{}{&p.ProductID, &p.Name, &p.Price, &p.Rating, &p.StockQuantity}
}

func (s *Sale) Fields() []interface{} {
	return []interface{}{&s.SaleID, &s.ProductID, &s.Timestamp, &s.Quantity, &s.UnitPrice, &s.TotalAmount}
}

func (p *Purchase) Fields() []interface{} {
	return []interface{}{&p.PurchaseID, &p.ProductID, &p.Timestamp, &p.Quantity, &p.UnitCost, &p.TotalCost}
}

func (e *Expense) Fields() []interface{} {
	return []interface{}{&e.ExpenseID, &e.Category, &e.Amount, &e.Timestamp}
}

func (s *SalesSummary) Fields() []interface{} {
	return []interface{}{&s.SalesSummaryID, &s.TotalValue, &s.ChangePercentage, &s.Date}
}

func (p *PurchaseSummary) Fields() []interface{} {
	return []interface{}{&p.PurchaseSummaryID, &p.TotalPurchased, &p.ChangePercentage, &p.Date}
}

func (e *ExpenseSummary) Fields() []interface{} {
	return []interface{}{&e.ExpenseSummaryID, &e.TotalExpenses, &e.Date}
}

func (e *ExpenseByCategory) Fields() []interface{} {
	return []interface{}{&e.ExpenseByCategoryID, &e.ExpenseSummaryID, &e.Category, &e.Amount, &e.Date}
}

// New returns an empty record for t.
func New(t tables.Table) Record {
	switch t {
	case tables.Users:
		return &User{}
	case tables.Products:
		return &Product{}
	case tables.ExpenseSummary:
		return &ExpenseSummary{}
	case tables.SalesSummary:
		return &SalesSummary{}
	case tables.PurchaseSummary:
		return &PurchaseSummary{}
	case tables.Expenses:
		return &Expense{}
	case tables.Sales:
		return &Sale{}
	case tables.Purchases:
		return &Purchase{}
	case tables.ExpenseByCategory:
		return &ExpenseByCategory{}
	}
	return nil
}
