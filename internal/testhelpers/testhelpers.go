package testhelpers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/stockseed/internal/database"
)

// NewSQLiteAdapter returns an adapter on a fresh SQLite file with the
// dashboard schema applied. It is closed when the test completes.
func NewSQLiteAdapter(t *testing.T) *database.Adapter {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stockseed.db")
	a, err := database.Open(context.Background(), "sqlite", "sqlite://"+path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = a.Close()
	})

	if err := a.ApplySchema(context.Background()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return a
}

// WriteFixture marshals records as a JSON array into dir/name.
func WriteFixture(t *testing.T, dir, name string, records interface{}) string {
	t.Helper()

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// CountRows fails the test if the row count of table cannot be read.
func CountRows(t *testing.T, a *database.Adapter, table string) int64 {
	t.Helper()

	n, err := a.CountRows(context.Background(), table)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
