package tenant

import "errors"

var (
	// ErrUnauthenticated is returned when the request carries no usable
	// credential. Propagation aborts before any connection is touched.
	ErrUnauthenticated = errors.New("no usable credential")

	// ErrMissingTenant is returned when the credential carries no tenant
	// claim and the caller is not flagged as system. There is no implicit
	// fallback to the sentinel tenant.
	ErrMissingTenant = errors.New("credential carries no tenant claim")

	// ErrInvalidTenantID is returned when the tenant claim is not a
	// well-formed identifier.
	ErrInvalidTenantID = errors.New("invalid tenant identifier")

	// ErrSentinelTenant is returned when the reserved sentinel identifier is
	// presented as an ordinary tenant.
	ErrSentinelTenant = errors.New("sentinel tenant is not a valid tenant")

	// ErrSystemNotAllowed is returned when a system credential arrives on a
	// surface that does not accept system callers.
	ErrSystemNotAllowed = errors.New("system credentials not accepted here")

	// ErrNoContext is returned when an operation requires a tenant Context
	// and none is attached to the request.
	ErrNoContext = errors.New("no tenant context")

	// ErrSystemRequired is returned when a surface reserved for system
	// principals receives a regular tenant context.
	ErrSystemRequired = errors.New("system context required")

	// ErrTenantNotFound is returned when the tenant registry has no record
	// for the resolved identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInactiveTenant is returned when the resolved tenant exists but is
	// suspended or otherwise inactive.
	ErrInactiveTenant = errors.New("tenant is inactive")
)
