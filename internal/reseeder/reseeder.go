package reseeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/fixtures"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/internal/types"
	"github.com/fatih/color"
)

// DefaultFixturesDir is used when Options.FixturesDir is empty.
const DefaultFixturesDir = "db/seedData"

// Store is the subset of the database adapter the reseeder needs.
// *database.Adapter satisfies it.
type Store interface {
	SuspendConstraints(ctx context.Context, table string) error
	RestoreConstraints(ctx context.Context, table string) error
	DeleteAll(ctx context.Context, table string) (int64, error)
	InsertSkipDuplicates(ctx context.Context, table, keyColumn string, columns []string, rows [][]interface{}) (int64, error)
}

type Options struct {
	FixturesDir string
	// Order overrides the tables seeded and their order. Nil means
	// tables.LoadOrder.
	Order []tables.Table
}

type Reseeder struct {
	store Store
	opts  Options
}

// ClearReport lists the outcome of every delete issued by ClearAll.
type ClearReport struct {
	Cleared []tables.Table
	Failed  []*TableClearError
}

func New(store Store, opts Options) *Reseeder {
	if opts.FixturesDir == "" {
		opts.FixturesDir = DefaultFixturesDir
	}
	if opts.Order == nil {
		opts.Order = tables.LoadOrder
	}
	return &Reseeder{store: store, opts: opts}
}

// Run clears every table and then seeds the configured tables. A seed
// failure stops the run; tables seeded before it keep their rows.
func (r *Reseeder) Run(ctx context.Context) error {
	color.Cyan("🧹 Clearing %d tables...", len(tables.DeletionOrder))
	report, err := r.ClearAll(ctx)
	if err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		color.Yellow("⚠️  %d table(s) could not be cleared, continuing", len(report.Failed))
	}

	fmt.Println()
	if err := r.Seed(ctx); err != nil {
		return err
	}

	color.Green("\n✅ Reseed completed successfully!")
	return nil
}

// ClearAll deletes the rows of every table in deletion order with
// constraint enforcement suspended on the guarded tables. Delete failures
// are collected in the report. Enforcement is restored on all guarded
// tables before returning; the returned error is non-nil only when that
// restore fails for a table whose suspension succeeded.
func (r *Reseeder) ClearAll(ctx context.Context) (*ClearReport, error) {
	suspended := make(map[tables.Table]bool, len(tables.Guarded))
	for _, t := range tables.Guarded {
		if err := r.store.SuspendConstraints(ctx, t.Name()); err != nil {
			color.Yellow("⚠️  Could not suspend constraints on %s: %v", t.Name(), err)
			continue
		}
		suspended[t] = true
	}

	report := &ClearReport{}
	for _, t := range tables.DeletionOrder {
		n, err := r.store.DeleteAll(ctx, t.Name())
		if err != nil {
			clearErr := &TableClearError{Table: t, Err: err}
			report.Failed = append(report.Failed, clearErr)
			color.Red("❌ Error clearing %s: %v", t, err)
			continue
		}
		report.Cleared = append(report.Cleared, t)
		color.Green("✅ Cleared %s (%d rows)", t, n)
	}

	// Restore even if the caller's context is already cancelled.
	restoreCtx := context.WithoutCancel(ctx)
	var errs []error
	for _, t := range tables.Guarded {
		if err := r.store.RestoreConstraints(restoreCtx, t.Name()); err != nil {
			if suspended[t] {
				errs = append(errs, fmt.Errorf("failed to restore constraints on %s: %w", t.Name(), err))
				continue
			}
			color.Yellow("⚠️  Could not restore constraints on %s: %v", t.Name(), err)
		}
	}
	return report, errors.Join(errs...)
}

// Seed loads the fixture of each configured table in order and stops at
// the first failure.
func (r *Reseeder) Seed(ctx context.Context) error {
	color.Cyan("🌱 Seeding %d tables from %s", len(r.opts.Order), r.opts.FixturesDir)

	for _, t := range r.opts.Order {
		if _, err := r.SeedModel(ctx, t, fixtures.Resolve(r.opts.FixturesDir, t)); err != nil {
			seedErr := &TableSeedError{Table: t, Err: err}
			color.Red("❌ Seeding failed: %v", seedErr)
			return seedErr
		}
	}
	return nil
}

// SeedModel reads the whole fixture at path and inserts its rows into t,
// skipping rows whose key already exists. It returns the number of rows
// inserted.
func (r *Reseeder) SeedModel(ctx context.Context, t tables.Table, path string) (int64, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("unknown table %s", t)
	}

	rows, err := fixtures.Load(t, path)
	if err != nil {
		return 0, &FixtureReadError{Path: path, Err: err}
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row.Values()
	}

	n, err := r.store.InsertSkipDuplicates(ctx, t.Name(), t.PrimaryKey(), types.Columns(t), values)
	if err != nil {
		writeErr := &StoreWriteError{Table: t, Err: err}
		if database.IsForeignKeyViolation(err) {
			writeErr.MissingParents = t.Parents()
		}
		return 0, writeErr
	}

	color.Green("✅ Seeded %s (%d rows, %d skipped)", t, n, int64(len(rows))-n)
	return n, nil
}
