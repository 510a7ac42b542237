package binder

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool adapts *pgxpool.Pool to the binder's Pool interface.
type pgxPool struct {
	pool *pgxpool.Pool
}

// NewPgxPool wraps a pgx connection pool for use with the binder.
func NewPgxPool(pool *pgxpool.Pool) Pool {
	return &pgxPool{pool: pool}
}

func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxConn{conn: conn}, nil
}

type pgxConn struct {
	conn *pgxpool.Conn
}

func (c *pgxConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (c *pgxConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c *pgxConn) Release() {
	c.conn.Release()
}

// Destroy hijacks the connection out of the pool's accounting and closes it.
// The pool opens a fresh connection on demand; this one is gone for good.
func (c *pgxConn) Destroy() {
	conn := c.conn.Hijack()
	_ = conn.Close(context.Background())
}
