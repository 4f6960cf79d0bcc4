package sqlite

import (
	_ "embed"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

type Dialect struct{}

func New() *Dialect {
	return &Dialect{}
}

func (Dialect) Name() string       { return "sqlite" }
func (Dialect) DriverName() string { return "sqlite3" }

func (Dialect) DSN(url string) (string, error) {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	return dbPath, nil
}

func (Dialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (Dialect) Quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

// Foreign keys are off by default in SQLite and the pragma is per
// connection.
func (Dialect) SessionSetup() []string {
	return []string{"PRAGMA foreign_keys = ON"}
}

func (Dialect) SuspendConstraints(table string) string {
	return "PRAGMA foreign_keys = OFF"
}

func (Dialect) RestoreConstraints(table string) string {
	return "PRAGMA foreign_keys = ON"
}

func (Dialect) SkipDuplicates(insert squirrel.InsertBuilder, keyColumn string) squirrel.InsertBuilder {
	return insert.Options("OR IGNORE")
}

func (Dialect) Schema() string {
	return schemaSQL
}
