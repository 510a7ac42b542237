package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware configuration.
type config struct {
	directory     Directory
	cache         Cache
	cacheTTL      time.Duration
	errorHandler  ErrorHandler
	skipPaths     []string
	requireActive bool
	allowSystem   bool
	logger        *slog.Logger
}

// Option configures the propagation middleware.
type Option func(*config)

// WithDirectory enables registry validation: resolved tenants must exist in
// the directory (and be active, unless WithRequireActive(false)).
func WithDirectory(d Directory) Option {
	return func(c *config) {
		c.directory = d
	}
}

// WithCache sets a custom cache for directory records.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets how long directory records stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithRequireActive controls whether suspended tenants are rejected.
// Enabled by default.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

// WithSystemSources allows this surface to mint system contexts from system
// credentials. Disabled by default: ordinary API surfaces reject system
// claims with ErrSystemNotAllowed.
func WithSystemSources(allow bool) Option {
	return func(c *config) {
		c.allowSystem = allow
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely,
// e.g. health and metrics endpoints.
func WithSkipPaths(paths []string) Option {
	return func(c *config) {
		c.skipPaths = paths
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets a logger for resolution failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, ErrMissingTenant):
		http.Error(w, "Missing tenant", http.StatusForbidden)
	case errors.Is(err, ErrSentinelTenant), errors.Is(err, ErrSystemNotAllowed), errors.Is(err, ErrSystemRequired):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ErrInvalidTenantID):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrNoContext):
		http.Error(w, "Missing tenant", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
