package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithContext attaches a tenant Context to the request context. Downstream
// code reads it with FromContext and never mutates it; concurrent requests
// each carry their own value, so propagation survives handler suspension
// without leaking across units of work.
func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// FromContext retrieves the tenant Context from the context.
// Returns the zero Context and false if none is attached.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(contextKey{}).(Context)
	if !ok || !tc.Valid() {
		return Context{}, false
	}
	return tc, true
}

// IDFromContext retrieves just the tenant identifier from the context.
// Returns the zero UUID and false if no tenant Context is attached.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tc, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return tc.TenantID(), true
}

// MustFromContext retrieves the tenant Context from the context.
// Panics if none is attached. Use this only in handlers guarded by
// RequireTenant, where absence indicates a wiring bug rather than bad input.
func MustFromContext(ctx context.Context) Context {
	tc, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant context")
	}
	return tc
}

// LoggerExtractor returns a logger context extractor that stamps every log
// record emitted inside a unit of work with the bound tenant.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if tc, ok := FromContext(ctx); ok {
			if tc.System() {
				return slog.String("tenant_id", "system"), true
			}
			return slog.String("tenant_id", tc.TenantID().String()), true
		}
		return slog.Attr{}, false
	}
}
