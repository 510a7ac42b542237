package guard

import "errors"

// Domain errors for isolation decisions.
var (
	// ErrForbidden is returned when an operation is denied. It is the
	// authorization failure callers surface; never map it to a generic
	// server error, operators distinguish isolation denials from bugs.
	ErrForbidden = errors.New("guard.forbidden")

	// ErrNoTenant is returned when no valid tenant context accompanies the
	// operation.
	ErrNoTenant = errors.New("guard.no_tenant_context")

	// ErrSystemOperation is returned when a system-level operation is
	// attempted without system privileges.
	ErrSystemOperation = errors.New("guard.system_operation")

	// ErrOwnershipMismatch is returned when an entity belongs to a different
	// tenant than the bound context.
	ErrOwnershipMismatch = errors.New("guard.ownership_mismatch")
)
