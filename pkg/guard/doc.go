// Package guard implements the default-deny isolation policy for tenant-scoped
// data access.
//
// A Guard authorizes (tenant context, operation) pairs. Operations are
// tenant-scoped unless declared system-level at construction; a valid tenant
// context is required for the former, system privileges for the latter, and
// everything else is denied. The guard never consults request state or the
// database: it is a pure decision over the context and the operation name,
// cheap enough to run before every connection checkout.
//
// # Usage
//
//	g := guard.New(
//		guard.WithSystemOperations("tenants.provision", "billing.sweep"),
//	)
//
//	// Deny before any connection is touched.
//	if err := g.Authorize(tc, "invoices.read"); err != nil {
//		return err
//	}
//
// VerifyOwnership adds a second line of defense behind the database policy
// layer for code paths that load rows through caches or search indexes where
// no row-filtering predicate runs.
//
// All denials wrap ErrForbidden, so callers map them to authorization
// failures with a single errors.Is check.
package guard
