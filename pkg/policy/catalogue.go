package policy

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Catalogue holds the registered policies, one per entity. Register at
// startup, Validate before serving, emit migrations from the same instance
// so the database predicates and the application agree.
type Catalogue struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

func NewCatalogue() *Catalogue {
	return &Catalogue{policies: make(map[string]Policy)}
}

// Register adds a policy after applying defaults and validating every name
// that would reach generated SQL. Registering the same entity twice is an
// error; policies are declarations, not state to be overwritten.
func (c *Catalogue) Register(p Policy) error {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.policies[p.Entity]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicatePolicy, p.Entity)
	}
	c.policies[p.Entity] = p
	return nil
}

// Get returns the registered policy for an entity, defaults applied.
func (c *Catalogue) Get(entity string) (Policy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.policies[entity]
	return p, ok
}

// Entities lists registered entities in sorted order.
func (c *Catalogue) Entities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.policies))
	for entity := range c.policies {
		out = append(out, entity)
	}
	slices.Sort(out)
	return out
}

// Validate confirms every listed entity has a policy. Call it at startup
// with the full set of tenant-scoped entities; a gap fails closed here
// instead of surfacing as missing rows in production.
func (c *Catalogue) Validate(entities ...string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var missing []string
	for _, entity := range entities {
		if _, ok := c.policies[entity]; !ok {
			missing = append(missing, entity)
		}
	}
	if len(missing) > 0 {
		return errors.Join(ErrPolicyMissing, fmt.Errorf("entities without a policy: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// sorted returns all policies ordered by entity, for deterministic emission.
func (c *Catalogue) sorted() []Policy {
	out := make([]Policy, 0, len(c.Entities()))
	for _, entity := range c.Entities() {
		p, _ := c.Get(entity)
		out = append(out, p)
	}
	return out
}
