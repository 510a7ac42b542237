package binder

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// DefaultSettingKey is the session setting consulted by row-filtering
// policies unless overridden with WithSettingKey.
const DefaultSettingKey = "app.current_tenant_id"

// Option configures a Binder at construction time.
type Option func(*Binder)

// WithSettingKey overrides the session setting key the binder writes. It must
// match the key the policy catalogue derives predicates from.
func WithSettingKey(key string) Option {
	return func(b *Binder) {
		if key != "" {
			b.settingKey = key
		}
	}
}

// WithLogger sets a logger for connection hygiene failures.
func WithLogger(log *slog.Logger) Option {
	return func(b *Binder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithMetrics wires Prometheus collectors for binds, resets and discards.
func WithMetrics(m *Metrics) Option {
	return func(b *Binder) {
		b.metrics = m
	}
}

// WithTracer enables a span per bound transaction.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Binder) {
		b.tracer = tracer
	}
}

// WithAcquireTimeout bounds how long a unit of work waits for a pooled
// connection. Zero means wait as long as the caller's context allows.
func WithAcquireTimeout(d time.Duration) Option {
	return func(b *Binder) {
		if d > 0 {
			b.acquireTimeout = d
		}
	}
}
