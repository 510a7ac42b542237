// Package binder checks out pooled PostgreSQL connections with a tenant
// annotation applied atomically with transaction start, and guarantees the
// annotation never leaks into a future checkout.
//
// Row-filtering policies read a session setting (app.current_tenant_id by
// default). The binder writes it with a transaction-local set_config as the
// FIRST statement of every transaction, so every caller statement runs
// filtered. Ordering matters: an annotation applied after any query would
// leave that first query unfiltered.
//
// # Connection Hygiene
//
// A connection is exclusively owned by one unit of work from checkout to
// release and ends in exactly one of two states:
//
//   - released clean: commit or rollback, then a session-level reset of the
//     setting, then Release
//   - destroyed: the bind or reset statement failed, so the session state is
//     unknown and the connection is discarded instead of returned
//
// The reset runs on every exit path: success, unit error, commit failure,
// panic (re-raised afterwards) and caller cancellation. A failed reset is the
// highest-severity failure mode in the system, because a released connection
// still carrying a tenant setting would hand one tenant's visibility to the
// next checkout. It is therefore attempted exactly once and failure means
// Destroy, surfaced as ErrResetFailed and counted on the discarded-connections
// metric.
//
// # Usage
//
//	g := guard.New(guard.WithSystemOperations("billing.sweep"))
//	b, err := binder.New(binder.NewPgxPool(pool), g,
//		binder.WithMetrics(binder.NewMetrics(nil)),
//	)
//	if err != nil {
//		return err
//	}
//
//	err = b.WithTenantTx(ctx, tc, "invoices.read", func(ctx context.Context, tx binder.Tx) error {
//		rows, err := tx.Query(ctx, `SELECT id, amount FROM invoices`)
//		...
//	})
//
// System maintenance runs through WithSystemTx with a system context and an
// operation declared system-level on the guard; it binds the sentinel
// identifier instead of a tenant.
//
// MemoryPool provides an in-memory Pool with the same hygiene observable for
// tests and development, including a tenant-filtered row store that honors
// the bound setting.
package binder
