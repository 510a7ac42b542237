package binder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MemoryPool is an in-memory stand-in for a PostgreSQL pool, for tests and
// development. Connections carry real session settings, and the row store
// honors the bound tenant the way row-filtering policies do: a bound tenant
// sees only its rows, the sentinel binding sees everything, and no binding
// sees nothing and cannot write.
//
// The pool records every statement in order, which makes bind-before-work
// ordering and reset-on-release assertable.
type MemoryPool struct {
	// SettingKey is the session setting the row store consults. Set it before
	// first use when the binder is configured with a non-default key.
	SettingKey string

	free chan *memoryConn

	mu        sync.Mutex
	conns     []*memoryConn
	store     map[string][]memoryRow
	events    []string
	destroyed int
	execHook  func(sql string, args []any) error
}

type memoryRow struct {
	owner  uuid.UUID
	values []any
}

// NewMemoryPool creates a pool with the given number of connections.
func NewMemoryPool(size int) *MemoryPool {
	if size <= 0 {
		size = 4
	}

	p := &MemoryPool{
		SettingKey: DefaultSettingKey,
		free:       make(chan *memoryConn, size),
		store:      make(map[string][]memoryRow),
	}
	for range size {
		conn := &memoryConn{pool: p, settings: make(map[string]string)}
		p.conns = append(p.conns, conn)
		p.free <- conn
	}
	return p
}

// Acquire hands out a free connection, blocking until one is available or
// ctx is done.
func (p *MemoryPool) Acquire(ctx context.Context) (Conn, error) {
	select {
	case conn := <-p.free:
		return conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Available reports how many connections are idle in the pool.
func (p *MemoryPool) Available() int {
	return len(p.free)
}

// Destroyed reports how many connections have been discarded.
func (p *MemoryPool) Destroyed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// DirtySessions counts live connections still carrying a session setting.
// After every unit of work this must be zero; anything else is a leak.
func (p *MemoryPool) DirtySessions() int {
	p.mu.Lock()
	conns := make([]*memoryConn, len(p.conns))
	copy(conns, p.conns)
	p.mu.Unlock()

	n := 0
	for _, c := range conns {
		c.mu.Lock()
		if !c.dead && len(c.settings) > 0 {
			n++
		}
		c.mu.Unlock()
	}
	return n
}

// Events returns the ordered statement log across all connections.
func (p *MemoryPool) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	copy(out, p.events)
	return out
}

// SetExecHook installs a hook consulted before every statement; a returned
// error fails that statement. Use it to inject bind, reset or commit
// failures.
func (p *MemoryPool) SetExecHook(hook func(sql string, args []any) error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.execHook = hook
}

// Seed inserts a row directly into the store, bypassing tenant checks.
// For fixtures; the sentinel owner marks bootstrap data.
func (p *MemoryPool) Seed(table string, owner uuid.UUID, values ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store[table] = append(p.store[table], memoryRow{owner: owner, values: values})
}

// RowCount reports stored rows for a table across all tenants.
func (p *MemoryPool) RowCount(table string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.store[table])
}

func (p *MemoryPool) settingKey() string {
	if p.SettingKey == "" {
		return DefaultSettingKey
	}
	return p.SettingKey
}

func (p *MemoryPool) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *MemoryPool) hook(sql string, args []any) error {
	p.mu.Lock()
	hook := p.execHook
	p.mu.Unlock()
	if hook == nil {
		return nil
	}
	return hook(sql, args)
}

type memoryConn struct {
	pool *MemoryPool

	mu       sync.Mutex
	settings map[string]string
	dead     bool
}

func (c *memoryConn) Begin(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.pool.record("begin")
	return &memoryTx{conn: c, local: make(map[string]string)}, nil
}

func (c *memoryConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if err := ctx.Err(); err != nil {
		return pgconn.CommandTag{}, err
	}
	if err := c.pool.hook(sql, args); err != nil {
		return pgconn.CommandTag{}, err
	}

	if key, value, local, ok := parseSetConfig(sql, args); ok {
		if local {
			// set_config(..., true) outside a transaction is a no-op.
			c.pool.record("set local (no tx) " + key)
			return pgconn.NewCommandTag("SELECT 1"), nil
		}
		c.applySession(key, value)
		c.pool.record("set session " + key + "=" + value)
		return pgconn.NewCommandTag("SELECT 1"), nil
	}

	c.pool.record(sql)
	return pgconn.NewCommandTag(""), nil
}

func (c *memoryConn) applySession(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value == "" {
		delete(c.settings, key)
		return
	}
	c.settings[key] = value
}

func (c *memoryConn) Release() {
	c.pool.record("release")
	c.pool.free <- c
}

// Destroy drops the connection and slots a fresh one into the pool, mirroring
// how a real pool replaces closed connections.
func (c *memoryConn) Destroy() {
	c.mu.Lock()
	c.dead = true
	c.mu.Unlock()

	replacement := &memoryConn{pool: c.pool, settings: make(map[string]string)}
	c.pool.mu.Lock()
	c.pool.destroyed++
	c.pool.conns = append(c.pool.conns, replacement)
	c.pool.mu.Unlock()

	c.pool.record("destroy")
	c.pool.free <- replacement
}

type memoryTx struct {
	conn *memoryConn

	mu     sync.Mutex
	local  map[string]string
	staged []stagedWrite
	closed bool
}

type stagedWrite struct {
	table string
	row   memoryRow
}

func (t *memoryTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return pgconn.CommandTag{}, pgx.ErrTxClosed
	}
	if err := ctx.Err(); err != nil {
		return pgconn.CommandTag{}, err
	}
	if err := t.conn.pool.hook(sql, args); err != nil {
		return pgconn.CommandTag{}, err
	}

	if key, value, local, ok := parseSetConfig(sql, args); ok {
		if local {
			t.local[key] = value
			t.conn.pool.record("set local " + key + "=" + value)
		} else {
			t.conn.applySession(key, value)
			t.conn.pool.record("set session " + key + "=" + value)
		}
		return pgconn.NewCommandTag("SELECT 1"), nil
	}

	if table, ok := insertTable(sql); ok {
		owner, err := t.currentTenant()
		if err != nil {
			return pgconn.CommandTag{}, err
		}
		t.staged = append(t.staged, stagedWrite{
			table: table,
			row:   memoryRow{owner: owner, values: args},
		})
		t.conn.pool.record(sql)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}

	t.conn.pool.record(sql)
	return pgconn.NewCommandTag(""), nil
}

func (t *memoryTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, pgx.ErrTxClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.conn.pool.hook(sql, args); err != nil {
		return nil, err
	}
	t.conn.pool.record(sql)

	table, ok := selectTable(sql)
	if !ok {
		return &memoryRows{idx: -1}, nil
	}
	return &memoryRows{rows: t.visibleRows(table), idx: -1}, nil
}

func (t *memoryTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	rows, err := t.Query(ctx, sql, args...)
	if err != nil {
		return &memoryRowResult{err: err}
	}
	mr := rows.(*memoryRows)
	if len(mr.rows) == 0 {
		return &memoryRowResult{err: pgx.ErrNoRows}
	}
	return &memoryRowResult{values: mr.rows[0].values}
}

func (t *memoryTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	clear(t.local)

	if err := ctx.Err(); err != nil {
		t.staged = nil
		t.conn.pool.record("commit failed")
		return err
	}
	if err := t.conn.pool.hook("COMMIT", nil); err != nil {
		t.staged = nil
		t.conn.pool.record("commit failed")
		return err
	}

	p := t.conn.pool
	p.mu.Lock()
	for _, w := range t.staged {
		p.store[w.table] = append(p.store[w.table], w.row)
	}
	p.mu.Unlock()
	t.staged = nil

	p.record("commit")
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	t.staged = nil
	clear(t.local)

	t.conn.pool.record("rollback")
	return nil
}

// currentTenant resolves the binding, transaction setting first. Writes
// without a binding are denied the way a WITH CHECK policy denies them.
func (t *memoryTx) currentTenant() (uuid.UUID, error) {
	value, ok := t.setting(t.conn.pool.settingKey())
	if !ok || value == "" {
		return uuid.Nil, rlsDenied("new row violates row-level security policy")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, rlsDenied("tenant setting is not a valid identifier")
	}
	return id, nil
}

func (t *memoryTx) setting(key string) (string, bool) {
	if value, ok := t.local[key]; ok {
		return value, true
	}
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	value, ok := t.conn.settings[key]
	return value, ok
}

// visibleRows applies the tenant filter over committed and staged rows: a
// bound tenant sees its own, the sentinel binding sees everything, no binding
// sees nothing.
func (t *memoryTx) visibleRows(table string) []memoryRow {
	value, ok := t.setting(t.conn.pool.settingKey())
	if !ok || value == "" {
		return nil
	}
	owner, err := uuid.Parse(value)
	if err != nil {
		return nil
	}

	var out []memoryRow
	p := t.conn.pool
	p.mu.Lock()
	for _, row := range p.store[table] {
		if owner == uuid.Nil || row.owner == owner {
			out = append(out, row)
		}
	}
	p.mu.Unlock()

	for _, w := range t.staged {
		if w.table != table {
			continue
		}
		if owner == uuid.Nil || w.row.owner == owner {
			out = append(out, w.row)
		}
	}
	return out
}

func rlsDenied(msg string) error {
	return &pgconn.PgError{Severity: "ERROR", Code: "42501", Message: msg}
}

// parseSetConfig recognizes the binder's parameterized set_config statements.
func parseSetConfig(sql string, args []any) (key, value string, local, ok bool) {
	if !strings.Contains(sql, "set_config") || len(args) != 2 {
		return "", "", false, false
	}
	key, kok := args[0].(string)
	value, vok := args[1].(string)
	if !kok || !vok {
		return "", "", false, false
	}
	return key, value, strings.Contains(sql, "true"), true
}

// insertTable extracts the target table from an INSERT statement.
func insertTable(sql string) (string, bool) {
	fields := strings.Fields(sql)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "insert") {
		return "", false
	}
	for i, f := range fields {
		if strings.EqualFold(f, "into") && i+1 < len(fields) {
			return tableName(fields[i+1]), true
		}
	}
	return "", false
}

// selectTable extracts the table from a SELECT ... FROM statement.
func selectTable(sql string) (string, bool) {
	fields := strings.Fields(sql)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "select") {
		return "", false
	}
	for i, f := range fields {
		if strings.EqualFold(f, "from") && i+1 < len(fields) {
			return tableName(fields[i+1]), true
		}
	}
	return "", false
}

func tableName(f string) string {
	f = strings.TrimSuffix(f, ";")
	if i := strings.IndexByte(f, '('); i >= 0 {
		f = f[:i]
	}
	return strings.ToLower(f)
}

type memoryRows struct {
	rows []memoryRow
	idx  int
	err  error
}

func (r *memoryRows) Close()                                       {}
func (r *memoryRows) Err() error                                   { return r.err }
func (r *memoryRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *memoryRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *memoryRows) RawValues() [][]byte                          { return nil }
func (r *memoryRows) Conn() *pgx.Conn                              { return nil }

func (r *memoryRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *memoryRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.rows) {
		return pgx.ErrNoRows
	}
	return scanValues(r.rows[r.idx].values, dest)
}

func (r *memoryRows) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.rows) {
		return nil, pgx.ErrNoRows
	}
	return r.rows[r.idx].values, nil
}

type memoryRowResult struct {
	values []any
	err    error
}

func (r *memoryRowResult) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanValues(r.values, dest)
}

// scanValues copies stored values into scan destinations positionally.
func scanValues(values []any, dest []any) error {
	if len(dest) > len(values) {
		return fmt.Errorf("memory pool: %d scan destinations for %d values", len(dest), len(values))
	}
	for i, d := range dest {
		if err := assign(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assign(dst, src any) error {
	switch d := dst.(type) {
	case *string:
		v, ok := src.(string)
		if !ok {
			return assignError(dst, src)
		}
		*d = v
	case *int:
		switch v := src.(type) {
		case int:
			*d = v
		case int64:
			*d = int(v)
		default:
			return assignError(dst, src)
		}
	case *int64:
		switch v := src.(type) {
		case int64:
			*d = v
		case int:
			*d = int64(v)
		default:
			return assignError(dst, src)
		}
	case *bool:
		v, ok := src.(bool)
		if !ok {
			return assignError(dst, src)
		}
		*d = v
	case *uuid.UUID:
		v, ok := src.(uuid.UUID)
		if !ok {
			return assignError(dst, src)
		}
		*d = v
	case *time.Time:
		v, ok := src.(time.Time)
		if !ok {
			return assignError(dst, src)
		}
		*d = v
	case *any:
		*d = src
	default:
		return fmt.Errorf("memory pool: unsupported scan destination %T", dst)
	}
	return nil
}

func assignError(dst, src any) error {
	return fmt.Errorf("memory pool: cannot scan %T into %T", src, dst)
}
