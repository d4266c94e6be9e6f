package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

// DB wraps sql.DB and remembers which driver opened it so queries written
// with ?-placeholders can be rebound for Postgres.
type DB struct {
	Client *sql.DB
	driver string
}

// Open creates a database handle with sane pool defaults. Supported drivers
// are "pgx" (Postgres) and "sqlite3" (dev and tests).
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case "pgx", "sqlite3":
	default:
		return nil, errors.New("unsupported db driver: " + driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{Client: db, driver: driver}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}

// Rebind rewrites ?-placeholders into the $N form when talking to Postgres.
func (d *DB) Rebind(query string) string {
	if d.driver != "pgx" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ExecContext executes a ?-placeholder query.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.Client.ExecContext(ctx, d.Rebind(query), args...)
}

// QueryContext runs a ?-placeholder query returning rows.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.Client.QueryContext(ctx, d.Rebind(query), args...)
}

// QueryRowContext runs a ?-placeholder query returning a single row.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.Client.QueryRowContext(ctx, d.Rebind(query), args...)
}

// Tx wraps sql.Tx with the same rebinding helpers.
type Tx struct {
	tx *sql.Tx
	db *DB
}

// BeginTx opens a transaction at the driver's default isolation. sqlite is
// serializable by construction; on Postgres the unique indexes carry the
// invariants that isolation alone would not.
func (d *DB) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := d.Client.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, db: d}, nil
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.db.Rebind(query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.db.Rebind(query), args...)
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// IsUniqueViolation reports whether err comes from a unique constraint,
// regardless of driver. Callers map it to their conflict error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [8]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
