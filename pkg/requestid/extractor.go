package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a logger context extractor that stamps log records
// with the request identifier. Paired with the tenant extractor it ties every
// record to both the unit of work and the tenant it ran for.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
