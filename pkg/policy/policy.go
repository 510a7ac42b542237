package policy

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Defaults applied by Register and Predicate when a policy leaves the
// corresponding field empty. The setting key matches the binder's default so
// a catalogue and a binder built without options agree on the annotation.
const (
	DefaultTenantColumn = "tenant_id"
	DefaultSettingKey   = "app.current_tenant_id"
)

// Generated policy names append "_tenant_<op>" to the entity; the entity is
// capped so the longest name stays within PostgreSQL's identifier limit.
const maxEntityLen = 63 - len("_tenant_update")

var (
	identRe      = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)
	settingKeyRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*\.[a-z_][a-z0-9_]*$`)
)

// Policy declares row-level isolation for one entity: which table it lives
// in, which column carries the owning tenant, and which session setting the
// predicates consult. AllowSystem widens the predicates so the sentinel
// binding used for system operations reaches every row of that table.
type Policy struct {
	Entity       string `yaml:"entity"`
	Table        string `yaml:"table"`
	TenantColumn string `yaml:"tenant_column"`
	SettingKey   string `yaml:"setting_key"`
	AllowSystem  bool   `yaml:"allow_system"`
}

// Predicate returns the canonical row-filter expression for the policy.
// Callers never assemble this by hand.
//
// The setting is read with missing_ok and passed through NULLIF, so an absent
// or empty annotation yields NULL and the comparison excludes every row: an
// unbound session reads and writes nothing.
func (p Policy) Predicate() string {
	p = p.withDefaults()

	expr := fmt.Sprintf("NULLIF(current_setting('%s', true), '')::uuid", p.SettingKey)
	base := fmt.Sprintf("%s = %s", p.TenantColumn, expr)
	if !p.AllowSystem {
		return base
	}
	return fmt.Sprintf("(%s OR %s = '%s'::uuid)", base, expr, uuid.Nil)
}

func (p Policy) withDefaults() Policy {
	if p.TenantColumn == "" {
		p.TenantColumn = DefaultTenantColumn
	}
	if p.SettingKey == "" {
		p.SettingKey = DefaultSettingKey
	}
	return p
}

// validate runs on a defaulted copy. Every name that ends up inside generated
// SQL must match the safe identifier pattern; there is no quoting layer.
func (p Policy) validate() error {
	if p.Entity == "" {
		return fmt.Errorf("%w: entity is required", ErrInvalidPolicy)
	}
	if !identRe.MatchString(p.Entity) {
		return fmt.Errorf("%w: entity %q is not a safe identifier", ErrInvalidPolicy, p.Entity)
	}
	if len(p.Entity) > maxEntityLen {
		return fmt.Errorf("%w: entity %q exceeds %d characters", ErrInvalidPolicy, p.Entity, maxEntityLen)
	}
	if p.Table == "" {
		return fmt.Errorf("%w: entity %q: table is required", ErrInvalidPolicy, p.Entity)
	}
	if !identRe.MatchString(p.Table) {
		return fmt.Errorf("%w: entity %q: table %q is not a safe identifier", ErrInvalidPolicy, p.Entity, p.Table)
	}
	if !identRe.MatchString(p.TenantColumn) {
		return fmt.Errorf("%w: entity %q: tenant column %q is not a safe identifier", ErrInvalidPolicy, p.Entity, p.TenantColumn)
	}
	if !settingKeyRe.MatchString(p.SettingKey) {
		return fmt.Errorf("%w: entity %q: setting key %q is not a valid two-part setting name", ErrInvalidPolicy, p.Entity, p.SettingKey)
	}
	return nil
}
