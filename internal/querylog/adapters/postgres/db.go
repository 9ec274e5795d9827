package postgres

import (
	"context"
	"database/sql"
	"time"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// conn is the part of *sql.DB the query log uses.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryLogDB bounds every statement by a timeout so a slow database never holds up a metric query.
type queryLogDB struct {
	conn    conn
	timeout time.Duration
}

// NewQueryLogDB wraps db. A zero statementTimeout leaves statements bounded only by the caller's context.
func NewQueryLogDB(db *sql.DB, statementTimeout time.Duration) DB {
	return &queryLogDB{conn: db, timeout: statementTimeout}
}

func (d *queryLogDB) statementContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.timeout)
}

func (d *queryLogDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := d.statementContext(ctx)
	defer cancel()
	return d.conn.ExecContext(ctx, query, args...)
}

func (d *queryLogDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	ctx, cancel := d.statementContext(ctx)
	rows, err := d.conn.QueryContext(ctx, query, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &queryLogRows{Rows: rows, cancel: cancel}, nil
}

// queryLogRows releases the statement timeout once the rows are closed.
type queryLogRows struct {
	*sql.Rows
	cancel context.CancelFunc
}

func (r *queryLogRows) Close() error {
	defer r.cancel()
	return r.Rows.Close()
}
