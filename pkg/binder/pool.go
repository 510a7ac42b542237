package binder

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the transaction surface handed to units of work. It is the subset of
// pgx.Tx the binder guarantees on every backend, including the in-memory one.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is a checked-out pooled connection, exclusively owned by one unit of
// work from checkout to release. Exactly one of Release or Destroy must be
// called, exactly once.
type Conn interface {
	Begin(ctx context.Context) (Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Release returns the connection to the pool for reuse.
	Release()

	// Destroy discards the connection instead of returning it to the pool.
	// Used when the session state is unknown or known-dirty; the pool must
	// never hand this connection out again.
	Destroy()
}

// Pool hands out connections. Acquire blocks until a connection is available
// or ctx is done.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}
