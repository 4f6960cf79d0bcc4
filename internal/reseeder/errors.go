package reseeder

import (
	"fmt"
	"strings"

	"github.com/Rana718/stockseed/internal/tables"
)

// TableClearError is reported for a table whose rows could not be deleted.
// The clear phase records it and moves on to the next table.
type TableClearError struct {
	Table tables.Table
	Err   error
}

func (e *TableClearError) Error() string {
	return fmt.Sprintf("failed to clear %s: %v", e.Table, e.Err)
}

func (e *TableClearError) Unwrap() error { return e.Err }

// TableSeedError aborts the seed phase. Err is a *FixtureReadError or a
// *StoreWriteError.
type TableSeedError struct {
	Table tables.Table
	Err   error
}

func (e *TableSeedError) Error() string {
	return fmt.Sprintf("failed to seed %s: %v", e.Table, e.Err)
}

func (e *TableSeedError) Unwrap() error { return e.Err }

// FixtureReadError means the fixture file is missing or does not decode
// into rows of its table.
type FixtureReadError struct {
	Path string
	Err  error
}

func (e *FixtureReadError) Error() string {
	return fmt.Sprintf("failed to read fixture %s: %v", e.Path, e.Err)
}

func (e *FixtureReadError) Unwrap() error { return e.Err }

// StoreWriteError means the store rejected the bulk insert for a reason
// other than a duplicate key. MissingParents is set when the rows
// reference parent tables that were not seeded first.
type StoreWriteError struct {
	Table          tables.Table
	Err            error
	MissingParents []tables.Table
}

func (e *StoreWriteError) Error() string {
	if len(e.MissingParents) > 0 {
		names := make([]string, len(e.MissingParents))
		for i, p := range e.MissingParents {
			names[i] = p.Name()
		}
		return fmt.Sprintf("failed to insert into %s: rows reference %s, which was not seeded: %v",
			e.Table, strings.Join(names, ", "), e.Err)
	}
	return fmt.Sprintf("failed to insert into %s: %v", e.Table, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }
