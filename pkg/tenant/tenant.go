package tenant

import (
	"time"

	"github.com/google/uuid"
)

// SentinelTenantID is the reserved all-zero identifier denoting "no tenant".
// Rows owned by it are platform bootstrap data created before the first tenant
// existed. It is never a valid tenant for ordinary request paths; binding it
// requires an explicit system context.
var SentinelTenantID = uuid.Nil

// Context is the immutable tenant binding for one unit of work. It is created
// once per request by Resolve (or one of the constructors), travels with the
// request's context.Context, and is discarded when the request ends. A zero
// Context is invalid and fails every authorization check.
type Context struct {
	tenantID uuid.UUID
	system   bool
	issuedAt time.Time
}

// ContextOption configures optional Context fields at construction time.
// Context values cannot be modified afterwards.
type ContextOption func(*Context)

// WithIssuedAt sets the issue timestamp, normally taken from the credential's
// iat claim. Zero timestamps are ignored.
func WithIssuedAt(ts time.Time) ContextOption {
	return func(c *Context) {
		if !ts.IsZero() {
			c.issuedAt = ts
		}
	}
}

// New creates a tenant Context for the given tenant identifier.
// The sentinel (all-zero) identifier is rejected with ErrSentinelTenant:
// bootstrap data access goes through NewSystem, never through an ordinary
// tenant binding.
func New(tenantID uuid.UUID, opts ...ContextOption) (Context, error) {
	if tenantID == SentinelTenantID {
		return Context{}, ErrSentinelTenant
	}

	c := Context{
		tenantID: tenantID,
		issuedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

// NewSystem creates a privileged cross-tenant Context. It is the only
// constructor that may carry the sentinel identifier, and the only path to
// operations declared system-level. Callers must gate it behind an explicit
// privilege check; it must never be a fallback for a missing tenant claim.
func NewSystem(opts ...ContextOption) Context {
	c := Context{
		tenantID: SentinelTenantID,
		system:   true,
		issuedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// TenantID returns the bound tenant identifier. For system contexts this is
// the sentinel identifier.
func (c Context) TenantID() uuid.UUID {
	return c.tenantID
}

// System reports whether this context carries cross-tenant privileges.
func (c Context) System() bool {
	return c.system
}

// IssuedAt returns when the context was issued, for auditing and expiry.
func (c Context) IssuedAt() time.Time {
	return c.issuedAt
}

// Valid reports whether the context was produced by a constructor. The zero
// Context is invalid: it carries the sentinel identifier without system
// privileges and must never reach the database layer.
func (c Context) Valid() bool {
	return c.system || c.tenantID != SentinelTenantID
}

// IsSentinel reports whether the bound identifier is the reserved sentinel.
func (c Context) IsSentinel() bool {
	return c.tenantID == SentinelTenantID
}

// String renders the context for logs. It never exposes more than the tenant
// identifier.
func (c Context) String() string {
	if c.system {
		return "system"
	}
	return c.tenantID.String()
}
