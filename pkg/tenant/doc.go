// Package tenant provides fail-closed tenant identity resolution and context
// propagation for multi-tenant services.
//
// The package turns request credentials into an immutable tenant Context,
// attaches it to the request context, and makes it available to every layer
// below. Resolution never falls back to a default tenant: a request without a
// valid tenant claim is rejected before it reaches a handler.
//
// # Architecture
//
// The package is built around three core concepts:
//
// 1. Credential sources - Extract tenant claims from HTTP requests (verified JWT claims, trusted gateway headers)
// 2. Directory - Validates resolved tenants against a registry and their active state
// 3. Middleware - Orchestrates resolution, directory validation, caching, and context propagation
//
// This separation keeps credential verification (which belongs to the auth
// layer) independent from tenant propagation: sources consume already
// verified claims and never perform signature checks themselves.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantguard/pkg/tenant"
//
//	// Read claims that an upstream auth middleware already verified.
//	source := tenant.NewContextSource()
//
//	// Validate tenants against the registry, with caching.
//	mw := tenant.Middleware(source,
//		tenant.WithDirectory(tenant.NewPgxDirectory(pool)),
//		tenant.WithCacheTTL(10*time.Minute),
//		tenant.WithSkipPaths([]string{"/health", "/metrics"}),
//	)
//
//	router.Use(mw)
//
//	// Access the tenant in handlers.
//	func handler(w http.ResponseWriter, r *http.Request) {
//		tc, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// Rejected upstream; unreachable behind the middleware.
//			return
//		}
//		_ = tc.TenantID()
//	}
//
// # System Principals
//
// Background jobs and administrative tooling operate without a tenant. They
// carry an explicit system Context created with NewSystem, never a sentinel
// tenant identifier. HTTP surfaces reject system credentials unless opted in
// with WithSystemSources(true), and RequireSystem gates the surfaces reserved
// for them.
//
// # Caching
//
// Directory lookups are cached with TTL expiration. The default in-memory
// cache handles concurrent access and LRU eviction; NewRedisCache shares
// lookups across instances.
//
// # Error Handling
//
// The package defines specific errors for each rejection:
//
//   - ErrUnauthenticated: no usable credential on the request
//   - ErrMissingTenant: credential carries no tenant claim
//   - ErrInvalidTenantID: malformed tenant identifier
//   - ErrSentinelTenant: the reserved sentinel presented as a tenant
//   - ErrTenantNotFound: directory has no record for the tenant
//   - ErrInactiveTenant: tenant exists but is suspended
//
// The default error handler maps these to appropriate HTTP status codes;
// custom handlers can be configured with WithErrorHandler.
package tenant
