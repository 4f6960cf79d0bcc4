package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	pgForeignKeyViolation = "23503"
	pgUndefinedTable      = "42P01"

	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlNoSuchTable     = 1146
)

// IsForeignKeyViolation reports whether err is a referential integrity
// failure raised by any of the supported drivers.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		// ON DELETE RESTRICT is enforced by a trigger and reports
		// SQLITE_CONSTRAINT_TRIGGER rather than the foreign key code.
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
			(liteErr.Code == sqlite3.ErrConstraint && strings.Contains(liteErr.Error(), "FOREIGN KEY"))
	}

	return false
}

// IsUndefinedTable reports whether err says the table does not exist.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoSuchTable
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrError && strings.Contains(liteErr.Error(), "no such table")
	}

	return false
}
