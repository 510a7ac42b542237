package requestid

import "context"

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithContext attaches a request identifier to the context.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext retrieves the request identifier, or "" when none is attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
