// Package policy declares and enforces the row-level security catalogue.
//
// Every tenant-scoped entity registers a Policy naming its table, its tenant
// column and the session setting its predicates consult. The catalogue turns
// those declarations into a goose migration (WriteMigration) and into a
// startup check (Validate) that fails when an entity is missing a policy, so
// an unprotected table is caught before it serves traffic.
//
// Predicates are derived, never assembled by callers:
//
//	tenant_id = NULLIF(current_setting('app.current_tenant_id', true), '')::uuid
//
// A session without the annotation reads an empty setting, the expression
// collapses to NULL, and no row matches. Policies with AllowSystem add a
// branch matching the all-zeros sentinel so system operations bound through
// the sentinel reach every row of that table.
//
// Catalogues live in YAML next to the schema migrations:
//
//	version: 1
//	policies:
//	  - entity: note
//	    table: notes
//	  - entity: tenant
//	    table: tenants
//	    allow_system: true
//
// Load with LoadFile, validate at startup, and generate the migration with
// cmd/policygen.
package policy
