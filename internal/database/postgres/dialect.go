package postgres

import (
	_ "embed"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schemaSQL string

type Dialect struct{}

func New() *Dialect {
	return &Dialect{}
}

func (Dialect) Name() string       { return "postgresql" }
func (Dialect) DriverName() string { return "pgx" }

func (Dialect) DSN(url string) (string, error) {
	return url, nil
}

func (Dialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

// Quote keeps the mixed-case table and column names intact.
func (Dialect) Quote(identifier string) string {
	return pgx.Identifier{identifier}.Sanitize()
}

func (Dialect) SessionSetup() []string {
	return nil
}

// DISABLE TRIGGER ALL also turns off the internal triggers that enforce
// foreign keys on the table.
func (d Dialect) SuspendConstraints(table string) string {
	return fmt.Sprintf("ALTER TABLE %s DISABLE TRIGGER ALL", d.Quote(table))
}

func (d Dialect) RestoreConstraints(table string) string {
	return fmt.Sprintf("ALTER TABLE %s ENABLE TRIGGER ALL", d.Quote(table))
}

func (Dialect) SkipDuplicates(insert squirrel.InsertBuilder, keyColumn string) squirrel.InsertBuilder {
	return insert.Suffix("ON CONFLICT DO NOTHING")
}

func (Dialect) Schema() string {
	return schemaSQL
}
