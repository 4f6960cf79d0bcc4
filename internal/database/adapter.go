package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/stockseed/internal/database/common"
)

const (
	// DefaultBatchSize is the number of rows per INSERT statement.
	DefaultBatchSize = 100
	// MaxBatchSize caps the configured rows per INSERT statement.
	MaxBatchSize = 1000

	// maxBindParams is the PostgreSQL limit on parameters in one statement.
	maxBindParams = 65535
)

// Dialect holds the provider specific SQL used by the Adapter.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(url string) (string, error)
	Placeholder() squirrel.PlaceholderFormat
	Quote(identifier string) string
	SessionSetup() []string
	SuspendConstraints(table string) string
	RestoreConstraints(table string) string
	SkipDuplicates(insert squirrel.InsertBuilder, keyColumn string) squirrel.InsertBuilder
	Schema() string
}

// Adapter runs every statement over one pinned connection so session
// scoped settings (FOREIGN_KEY_CHECKS, PRAGMA foreign_keys) hold for the
// whole run.
type Adapter struct {
	db      *sql.DB
	conn    *sql.Conn
	dialect Dialect
	qb      squirrel.StatementBuilderType
	batch   int
}

// Open connects to the database and pins a single connection.
func Open(ctx context.Context, provider, url string) (*Adapter, error) {
	dialect, err := NewDialect(provider)
	if err != nil {
		return nil, err
	}

	dsn, err := dialect.DSN(url)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect.Name(), err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	a := &Adapter{
		db:      db,
		conn:    conn,
		dialect: dialect,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
		batch:   DefaultBatchSize,
	}

	if err := a.Ping(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range dialect.SessionSetup() {
		if err := a.Exec(ctx, stmt); err != nil {
			a.Close()
			return nil, fmt.Errorf("session setup %q: %w", stmt, err)
		}
	}

	return a, nil
}

// WithAdapter opens an adapter, runs fn and always closes the connection.
// A close error is reported only when fn itself succeeded.
func WithAdapter(ctx context.Context, provider, url string, fn func(*Adapter) error) (err error) {
	a, err := Open(ctx, provider, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database connection: %w", cerr)
		}
	}()

	return fn(a)
}

// Close releases the pinned connection and the pool. It is safe to call
// more than once.
func (a *Adapter) Close() error {
	var errs []error
	if a.conn != nil {
		errs = append(errs, a.conn.Close())
		a.conn = nil
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	return errors.Join(errs...)
}

func (a *Adapter) Ping(ctx context.Context) error {
	if a.conn == nil {
		return sql.ErrConnDone
	}
	return a.conn.PingContext(ctx)
}

func (a *Adapter) Provider() string {
	return a.dialect.Name()
}

// SetBatchSize changes the number of rows per INSERT statement. Values
// above MaxBatchSize are clamped.
func (a *Adapter) SetBatchSize(n int) {
	if n > 0 {
		a.batch = min(n, MaxBatchSize)
	}
}

// Exec runs a raw statement on the pinned connection.
func (a *Adapter) Exec(ctx context.Context, query string, args ...interface{}) error {
	if a.conn == nil {
		return sql.ErrConnDone
	}
	_, err := a.conn.ExecContext(ctx, query, args...)
	return err
}

func (a *Adapter) SuspendConstraints(ctx context.Context, table string) error {
	return a.Exec(ctx, a.dialect.SuspendConstraints(table))
}

func (a *Adapter) RestoreConstraints(ctx context.Context, table string) error {
	return a.Exec(ctx, a.dialect.RestoreConstraints(table))
}

// DeleteAll removes every row of table and returns the number deleted.
func (a *Adapter) DeleteAll(ctx context.Context, table string) (int64, error) {
	if a.conn == nil {
		return 0, sql.ErrConnDone
	}

	query, args, err := a.qb.Delete(a.dialect.Quote(table)).ToSql()
	if err != nil {
		return 0, err
	}

	result, err := a.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// InsertSkipDuplicates inserts rows into table, silently dropping rows
// that collide with a primary key or unique constraint. The rows are sent
// in batches inside one transaction, so the table is loaded completely or
// not at all. It returns the number of rows actually inserted.
func (a *Adapter) InsertSkipDuplicates(ctx context.Context, table, keyColumn string, columns []string, rows [][]interface{}) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if a.conn == nil {
		return 0, sql.ErrConnDone
	}

	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns given for %s", table)
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = a.dialect.Quote(col)
	}
	batch := min(a.batch, maxBindParams/len(columns))

	tx, err := a.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var inserted int64
	for start := 0; start < len(rows); start += batch {
		end := min(start+batch, len(rows))

		insert := a.qb.Insert(a.dialect.Quote(table)).Columns(quoted...)
		for i, row := range rows[start:end] {
			if len(row) != len(columns) {
				return 0, fmt.Errorf("row %d has %d values for %d columns", start+i, len(row), len(columns))
			}
			insert = insert.Values(row...)
		}
		insert = a.dialect.SkipDuplicates(insert, keyColumn)

		query, args, err := insert.ToSql()
		if err != nil {
			return 0, err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		n, _ := result.RowsAffected()
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit insert: %w", err)
	}
	return inserted, nil
}

// CountRows returns the number of rows in table.
func (a *Adapter) CountRows(ctx context.Context, table string) (int64, error) {
	if a.conn == nil {
		return 0, sql.ErrConnDone
	}

	query, args, err := a.qb.Select("COUNT(*)").From(a.dialect.Quote(table)).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := a.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ScanAll selects columns from table ordered by orderBy and scans each row
// into the targets returned by dest.
func (a *Adapter) ScanAll(ctx context.Context, table string, columns []string, orderBy string, dest func() []interface{}) error {
	if a.conn == nil {
		return sql.ErrConnDone
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = a.dialect.Quote(col)
	}

	sel := a.qb.Select(quoted...).From(a.dialect.Quote(table))
	if orderBy != "" {
		sel = sel.OrderBy(a.dialect.Quote(orderBy))
	}

	query, args, err := sel.ToSql()
	if err != nil {
		return err
	}

	rows, err := a.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := rows.Scan(dest()...); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
	}
	return rows.Err()
}

// ApplySchema creates the dashboard tables that do not exist yet.
func (a *Adapter) ApplySchema(ctx context.Context) error {
	for i, stmt := range common.SplitStatements(a.dialect.Schema()) {
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
