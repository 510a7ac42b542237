package pg

import "context"

// logger is the slice of slog the migration path needs. Accepting the
// interface keeps *slog.Logger out of the package API.
type logger interface {
	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}
