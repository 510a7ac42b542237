package tenant

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware resolves the tenant identity for each request and stores it in
// the request context. Resolution is fail-closed: requests without a valid
// tenant credential are rejected before reaching the handler, unless the
// request path matches a configured skip prefix.
//
// The source extracts credentials from the request. When a directory is
// configured, resolved tenants are validated against it and inactive tenants
// are rejected. Directory lookups are cached.
func Middleware(source CredentialSource, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewNoopCache(),
		cacheTTL:      5 * time.Minute,
		errorHandler:  defaultErrorHandler,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.directory != nil && cfg.cacheTTL > 0 {
		if _, ok := cfg.cache.(*noopCache); ok {
			cfg.cache = NewMemoryCache()
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			tc, err := resolve(r, source, cfg)
			if err != nil {
				if cfg.logger != nil {
					cfg.logger.ErrorContext(r.Context(), "tenant resolution failed",
						slog.String("path", r.URL.Path),
						slog.Any("error", err),
					)
				}
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
		})
	}
}

// resolve turns request credentials into a validated tenant context.
func resolve(r *http.Request, source CredentialSource, cfg *config) (Context, error) {
	claims, err := source.Credentials(r)
	if err != nil {
		return Context{}, err
	}

	tc, err := Resolve(claims)
	if err != nil {
		return Context{}, err
	}

	if tc.System() {
		if !cfg.allowSystem {
			return Context{}, ErrSystemNotAllowed
		}
		return tc, nil
	}

	if cfg.directory != nil {
		record, err := lookup(r, tc, cfg)
		if err != nil {
			return Context{}, err
		}
		if cfg.requireActive && !record.Active {
			return Context{}, ErrInactiveTenant
		}
	}

	return tc, nil
}

func lookup(r *http.Request, tc Context, cfg *config) (*Record, error) {
	ctx := r.Context()
	if record, ok := cfg.cache.Get(ctx, tc.TenantID()); ok {
		return record, nil
	}
	record, err := cfg.directory.Lookup(ctx, tc.TenantID())
	if err != nil {
		return nil, err
	}
	cfg.cache.Set(ctx, tc.TenantID(), record, cfg.cacheTTL)
	return record, nil
}

// RequireTenant rejects requests whose context carries no regular tenant.
// System contexts are rejected too: handlers behind this middleware operate
// on exactly one tenant's data.
func RequireTenant(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, ok := FromContext(r.Context())
			if !ok || tc.System() {
				cfg.errorHandler(w, r, ErrNoContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSystem rejects requests whose context does not carry a system
// principal. Use for administrative surfaces such as cross-tenant reporting.
func RequireSystem(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, ok := FromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrNoContext)
				return
			}
			if !tc.System() {
				cfg.errorHandler(w, r, ErrSystemRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
