package binder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/tenantguard/pkg/guard"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Statements issued by the binder. Key and value travel as parameters, never
// interpolated into SQL. The bind is transaction-local (is_local = true) so
// the setting cannot outlive the transaction; the reset clears the
// session-level value as a second line of defense before the connection is
// reused.
const (
	bindSQL  = `SELECT set_config($1, $2, true)`
	resetSQL = `SELECT set_config($1, $2, false)`
)

// UnitOfWork is the caller-supplied logic executed inside a bound
// transaction. The ctx it receives carries the tenant Context; the Tx is
// bound to that tenant for the whole transaction.
type UnitOfWork func(ctx context.Context, tx Tx) error

// Binder checks out pooled connections, applies the tenant annotation
// atomically with transaction start, and guarantees the annotation is cleared
// before the connection returns to the pool.
type Binder struct {
	pool           Pool
	guard          *guard.Guard
	settingKey     string
	acquireTimeout time.Duration
	log            *slog.Logger
	metrics        *Metrics
	tracer         trace.Tracer
}

// New creates a Binder over the given pool, authorizing every unit of work
// against the guard before any connection is touched.
func New(pool Pool, g *guard.Guard, opts ...Option) (*Binder, error) {
	if pool == nil {
		return nil, errors.New("binder: pool is required")
	}
	if g == nil {
		return nil, errors.New("binder: guard is required")
	}

	b := &Binder{
		pool:       pool,
		guard:      g,
		settingKey: DefaultSettingKey,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// SettingKey returns the session setting key the binder writes.
func (b *Binder) SettingKey() string {
	return b.settingKey
}

// WithTenantTx runs fn inside a transaction bound to the given tenant. The
// bind statement is the first statement of the transaction, so every caller
// statement executes under the tenant's row-filtering predicates. System
// contexts are rejected here; they go through WithSystemTx.
func (b *Binder) WithTenantTx(ctx context.Context, tc tenant.Context, op guard.Operation, fn UnitOfWork) error {
	if tc.System() {
		return errors.Join(guard.ErrSystemOperation, guard.ErrForbidden)
	}
	if err := b.guard.Authorize(tc, op); err != nil {
		return err
	}
	return b.run(ctx, tc, op, tc.TenantID().String(), fn)
}

// WithSystemTx runs fn bound to the sentinel identifier for privileged
// cross-tenant work. It requires a system context and an operation declared
// system-level on the guard; everything else is denied before the pool is
// touched. Connection hygiene is identical to WithTenantTx.
func (b *Binder) WithSystemTx(ctx context.Context, tc tenant.Context, op guard.Operation, fn UnitOfWork) error {
	if !tc.System() {
		return errors.Join(guard.ErrSystemOperation, guard.ErrForbidden)
	}
	if err := b.guard.Authorize(tc, op); err != nil {
		return err
	}
	return b.run(ctx, tc, op, tenant.SentinelTenantID.String(), fn)
}

func (b *Binder) run(ctx context.Context, tc tenant.Context, op guard.Operation, settingValue string, fn UnitOfWork) (err error) {
	start := time.Now()

	if b.tracer != nil {
		var span trace.Span
		ctx, span = b.tracer.Start(ctx, "tenantguard.tx", trace.WithAttributes(
			attribute.String("tenant.id", tc.String()),
			attribute.Bool("tenant.system", tc.System()),
			attribute.String("tenant.operation", string(op)),
		))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}()
	}
	if b.metrics != nil {
		defer func() {
			b.metrics.TxDuration.Observe(time.Since(start).Seconds())
		}()
	}

	conn, err := b.acquire(ctx)
	if err != nil {
		return err
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		// Nothing was bound; the connection is still clean.
		conn.Release()
		return err
	}

	if bindErr := b.bind(ctx, tx, settingValue); bindErr != nil {
		// The session state is unknown after a failed bind: roll back and
		// discard rather than risk a half-applied annotation in the pool.
		cleanup := context.WithoutCancel(ctx)
		_ = tx.Rollback(cleanup)
		b.discard(cleanup, conn, "bind", bindErr)
		return errors.Join(ErrBindFailed, bindErr)
	}

	committed := false
	completed := false
	defer func() {
		// Cleanup must survive caller cancellation and fn panics. On panic
		// the runtime re-raises after this defer returns.
		cleanup := context.WithoutCancel(ctx)
		if !committed {
			_ = tx.Rollback(cleanup)
		}
		resetErr := b.resetAndRelease(cleanup, conn)
		if completed && resetErr != nil && err == nil {
			err = resetErr
		}
	}()

	err = fn(tenant.WithContext(ctx, tc), tx)
	completed = true
	if err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

func (b *Binder) acquire(ctx context.Context) (Conn, error) {
	acquireCtx := ctx
	if b.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, b.acquireTimeout)
		defer cancel()
	}

	conn, err := b.pool.Acquire(acquireCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, errors.Join(ErrPoolExhausted, err)
		}
		return nil, err
	}
	return conn, nil
}

func (b *Binder) bind(ctx context.Context, tx Tx, value string) error {
	_, err := tx.Exec(ctx, bindSQL, b.settingKey, value)
	if b.metrics != nil {
		b.metrics.observeBind(err)
	}
	return err
}

// resetAndRelease clears the session setting and returns the connection to
// the pool. The reset is attempted exactly once: if it fails the connection
// is discarded, never released, so stale tenant state cannot reach a future
// checkout.
func (b *Binder) resetAndRelease(ctx context.Context, conn Conn) error {
	_, err := conn.Exec(ctx, resetSQL, b.settingKey, "")
	if b.metrics != nil {
		b.metrics.observeReset(err)
	}
	if err != nil {
		b.discard(ctx, conn, "reset", err)
		return errors.Join(ErrResetFailed, err)
	}
	conn.Release()
	return nil
}

func (b *Binder) discard(ctx context.Context, conn Conn, stage string, cause error) {
	conn.Destroy()
	if b.metrics != nil {
		b.metrics.Discarded.Inc()
	}
	b.log.ErrorContext(ctx, "connection discarded",
		slog.String("stage", stage),
		slog.Any("error", cause),
	)
}
