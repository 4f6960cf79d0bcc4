package mysql

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
)

//go:embed schema.sql
var schemaSQL string

type Dialect struct{}

func New() *Dialect {
	return &Dialect{}
}

func (Dialect) Name() string       { return "mysql" }
func (Dialect) DriverName() string { return "mysql" }

// DSN accepts either a driver DSN (user:pass@tcp(host:3306)/db) or a
// mysql:// URL, and always enables parseTime so DATETIME columns scan
// into time.Time.
func (Dialect) DSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = convertURL(strings.TrimPrefix(url, "mysql://"))
	}

	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// convertURL rewrites user:pass@host:port/db?params into the driver's
// user:pass@tcp(host:port)/db?params form.
func convertURL(rest string) string {
	atIndex := strings.LastIndex(rest, "@")
	if atIndex <= 0 {
		return rest
	}
	credentials := rest[:atIndex]
	remainder := rest[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return rest
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	replacer := strings.NewReplacer(
		"ssl-mode=REQUIRED", "tls=skip-verify",
		"ssl-mode=DISABLED", "tls=false",
		"sslmode=require", "tls=skip-verify",
		"sslmode=disable", "tls=false",
	)
	dbAndParams = replacer.Replace(dbAndParams)

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (Dialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (Dialect) Quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func (Dialect) SessionSetup() []string {
	return nil
}

// MySQL has no per-table switch; FOREIGN_KEY_CHECKS is session scoped,
// which is why the adapter pins a single connection.
func (Dialect) SuspendConstraints(table string) string {
	return "SET FOREIGN_KEY_CHECKS = 0"
}

func (Dialect) RestoreConstraints(table string) string {
	return "SET FOREIGN_KEY_CHECKS = 1"
}

// INSERT IGNORE would also downgrade foreign key failures to warnings, so
// duplicates are absorbed with a no-op update of the key instead.
func (d Dialect) SkipDuplicates(insert squirrel.InsertBuilder, keyColumn string) squirrel.InsertBuilder {
	key := d.Quote(keyColumn)
	return insert.Suffix(fmt.Sprintf("ON DUPLICATE KEY UPDATE %s = %s", key, key))
}

func (Dialect) Schema() string {
	return schemaSQL
}
