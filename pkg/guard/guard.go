package guard

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

// Operation names a unit of data access submitted for authorization, e.g.
// "invoices.read" or "tenants.provision". Operations are tenant-scoped unless
// declared system-level at construction.
type Operation string

// Guard is the default-deny isolation policy. An operation proceeds only when
// a valid tenant context is bound, or when the operation was explicitly
// declared system-level and the caller carries system privileges. Everything
// else is denied.
//
// The guard is immutable after construction and safe for concurrent use.
type Guard struct {
	// systemOps contains all operations reserved for system contexts.
	// This map is treated as immutable after initialization for thread safety.
	systemOps map[Operation]struct{}
}

// Option configures a Guard at construction time.
type Option func(*Guard)

// WithSystemOperations declares operations that only system contexts may
// perform. A regular tenant presenting one of these is denied, and a system
// context presenting anything else is denied too.
func WithSystemOperations(ops ...Operation) Option {
	return func(g *Guard) {
		for _, op := range ops {
			g.systemOps[op] = struct{}{}
		}
	}
}

// New creates a Guard. Without options every operation is tenant-scoped and
// system contexts cannot do anything; declare the platform's maintenance
// operations with WithSystemOperations.
func New(opts ...Option) *Guard {
	g := &Guard{systemOps: make(map[Operation]struct{})}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsSystemOperation reports whether op was declared system-level.
func (g *Guard) IsSystemOperation(op Operation) bool {
	_, ok := g.systemOps[op]
	return ok
}

// Authorize checks whether the tenant context may perform the operation.
//
// The decision table is deliberately small:
//   - invalid or zero context: denied
//   - system-level operation without system privileges: denied
//   - system context on a tenant-scoped operation: denied, system callers
//     act only through their declared operations
//   - otherwise: allowed
func (g *Guard) Authorize(tc tenant.Context, op Operation) error {
	if !tc.Valid() {
		return errors.Join(ErrNoTenant, ErrForbidden)
	}

	if g.IsSystemOperation(op) {
		if !tc.System() {
			return errors.Join(ErrSystemOperation, ErrForbidden)
		}
		return nil
	}

	if tc.System() || tc.IsSentinel() {
		return ErrForbidden
	}
	return nil
}

// AuthorizeContext checks the operation against the tenant context attached
// to ctx. Missing context is denied, not defaulted.
func (g *Guard) AuthorizeContext(ctx context.Context, op Operation) error {
	tc, ok := tenant.FromContext(ctx)
	if !ok {
		return errors.Join(ErrNoTenant, ErrForbidden)
	}
	return g.Authorize(tc, op)
}

// VerifyOwnership checks that an entity owned by owner may be touched under
// the given tenant context. It backs up the database policy layer: even when
// application code forgot a tenant filter, a mismatched row is rejected here.
// System contexts pass, they operate under explicitly authorized system
// operations.
func (g *Guard) VerifyOwnership(tc tenant.Context, owner uuid.UUID) error {
	if !tc.Valid() {
		return errors.Join(ErrNoTenant, ErrForbidden)
	}
	if tc.System() {
		return nil
	}
	if owner == tenant.SentinelTenantID || owner != tc.TenantID() {
		return errors.Join(ErrOwnershipMismatch, ErrForbidden)
	}
	return nil
}
