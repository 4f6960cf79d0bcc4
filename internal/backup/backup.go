package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Rana718/stockseed/internal/export"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/fatih/color"
)

// Store is what a backup needs from the database adapter.
type Store interface {
	export.Source
	CountRows(ctx context.Context, table string) (int64, error)
}

// Dir returns the directory a backup taken at now is written to.
func Dir(baseDir string, now time.Time) string {
	return filepath.Join(baseDir, "backup_"+now.Format("2006-01-02_15-04-05"))
}

// Create exports every table as JSON fixtures into a timestamped directory
// under baseDir and returns its path. Nothing is written when all tables
// are empty; the returned path is then "".
func Create(ctx context.Context, store Store, baseDir string, now time.Time) (string, error) {
	hasData, err := HasData(ctx, store)
	if err != nil {
		return "", err
	}
	if !hasData {
		color.Yellow("⚠️  Database is empty, skipping backup")
		return "", nil
	}

	dir := Dir(baseDir, now)
	if _, err := export.PerformExport(ctx, store, dir, export.FormatJSON); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	color.Green("💾 Backup created: %s", dir)
	return dir, nil
}

// HasData reports whether any table holds at least one row.
func HasData(ctx context.Context, store Store) (bool, error) {
	for _, t := range tables.LoadOrder {
		n, err := store.CountRows(ctx, t.Name())
		if err != nil {
			return false, fmt.Errorf("failed to count %s: %w", t.Name(), err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}
