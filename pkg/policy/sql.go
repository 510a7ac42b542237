package policy

import (
	"fmt"
	"io"
	"strings"
)

// WriteMigration emits a goose migration enforcing every registered policy:
// RLS enabled and forced per table, then one policy per operation named
// <entity>_tenant_<op>. FORCE applies the predicates to the table owner too,
// so an application role that happens to own the schema gets no bypass.
// Output is ordered by entity and stable across runs.
//
// No DELETE policy is emitted: with RLS forced and no applicable policy,
// deletes are denied outright. Entities that need deletes get a hand-written
// policy in a later migration.
func (c *Catalogue) WriteMigration(w io.Writer) error {
	policies := c.sorted()
	if len(policies) == 0 {
		return ErrEmptyCatalogue
	}

	var b strings.Builder
	b.WriteString("-- Code generated by policygen; DO NOT EDIT.\n\n")

	b.WriteString("-- +goose Up\n")
	for i, p := range policies {
		if i > 0 {
			b.WriteString("\n")
		}
		pred := p.Predicate()
		fmt.Fprintf(&b, "ALTER TABLE %s ENABLE ROW LEVEL SECURITY;\n", p.Table)
		fmt.Fprintf(&b, "ALTER TABLE %s FORCE ROW LEVEL SECURITY;\n", p.Table)
		fmt.Fprintf(&b, "CREATE POLICY %s_tenant_select ON %s FOR SELECT USING (%s);\n", p.Entity, p.Table, pred)
		fmt.Fprintf(&b, "CREATE POLICY %s_tenant_insert ON %s FOR INSERT WITH CHECK (%s);\n", p.Entity, p.Table, pred)
		fmt.Fprintf(&b, "CREATE POLICY %s_tenant_update ON %s FOR UPDATE USING (%s) WITH CHECK (%s);\n", p.Entity, p.Table, pred, pred)
	}

	b.WriteString("\n-- +goose Down\n")
	for i, p := range policies {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "DROP POLICY IF EXISTS %s_tenant_update ON %s;\n", p.Entity, p.Table)
		fmt.Fprintf(&b, "DROP POLICY IF EXISTS %s_tenant_insert ON %s;\n", p.Entity, p.Table)
		fmt.Fprintf(&b, "DROP POLICY IF EXISTS %s_tenant_select ON %s;\n", p.Entity, p.Table)
		fmt.Fprintf(&b, "ALTER TABLE %s NO FORCE ROW LEVEL SECURITY;\n", p.Table)
		fmt.Fprintf(&b, "ALTER TABLE %s DISABLE ROW LEVEL SECURITY;\n", p.Table)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
