package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Owned marks a domain entity as belonging to a single tenant. Embed it in
// entity structs so ownership travels with the value:
//
//	type Invoice struct {
//	    tenant.Owned
//	    ID     uuid.UUID
//	    Amount int64
//	}
type Owned struct {
	TenantID uuid.UUID `json:"tenant_id" db:"tenant_id"`
}

// Own stamps ownership from a tenant context. System contexts produce the
// sentinel owner, which storage layers must reject on write.
func Own(tc Context) Owned {
	return Owned{TenantID: tc.TenantID()}
}

// OwnFromContext stamps ownership from the tenant attached to ctx.
func OwnFromContext(ctx context.Context) (Owned, error) {
	tc, ok := FromContext(ctx)
	if !ok {
		return Owned{}, ErrNoContext
	}
	return Own(tc), nil
}

// BelongsTo reports whether the entity is owned by the given tenant context.
// System contexts may read any entity; regular tenants only their own.
func (o Owned) BelongsTo(tc Context) bool {
	if tc.System() {
		return true
	}
	return o.TenantID != uuid.Nil && o.TenantID == tc.TenantID()
}
