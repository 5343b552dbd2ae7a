package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// RowsInterface wraps pgx.Rows for mocking
type RowsInterface interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
	Values() ([]any, error)
	FieldDescriptions() []pgconn.FieldDescription
}

// RowInterface mirrors pgx.Row for mocking QueryRow results.
type RowInterface interface {
	Scan(dest ...any) error
}

// RowsWrapper wraps pgx.Rows to implement RowsInterface
type RowsWrapper struct {
	rows pgx.Rows
}

// NewRowsWrapper creates a new RowsWrapper.
func NewRowsWrapper(rows pgx.Rows) RowsInterface {
	return &RowsWrapper{rows: rows}
}

// Next returns true if there are more rows to read.
func (r *RowsWrapper) Next() bool {
	return r.rows.Next()
}

// Scan scans the next row into the given destination.
func (r *RowsWrapper) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// Close closes the RowsWrapper.
func (r *RowsWrapper) Close() {
	r.rows.Close()
}

// Err returns the error from the RowsWrapper.
func (r *RowsWrapper) Err() error {
	return r.rows.Err()
}

// Values returns the decoded row values.
func (r *RowsWrapper) Values() ([]any, error) {
	return r.rows.Values()
}

// FieldDescriptions returns the field descriptions.
func (r *RowsWrapper) FieldDescriptions() []pgconn.FieldDescription {
	return r.rows.FieldDescriptions()
}

// PostgreSQLClient is the pool-backed client. Exec, Query, QueryRow and
// SendBatch join the transaction carried by ctx, if any.
type PostgreSQLClient interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (RowsInterface, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// SendBatch queues every statement of b in one round-trip.
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults

	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)

	Ping(ctx context.Context) error
	Close()
	Stats() *pgxpool.Stat
	DatabaseName() string
}

// SelectBuilder provides a fluent interface for building SELECT queries
type SelectBuilder interface {
	Select(columns ...string) SelectBuilder
	From(table string) SelectBuilder
	Where(condition string, args ...any) SelectBuilder
	WhereIn(column string, values ...any) SelectBuilder
	OrderBy(column string, desc ...bool) SelectBuilder
	Limit(limit int) SelectBuilder
	ForUpdate(skipLocked bool) SelectBuilder
	Build() (string, []any)
}
