package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is a row in the platform's tenant registry.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Directory looks tenants up in the platform registry. Implementations must
// return ErrTenantNotFound when no record matches the identifier.
type Directory interface {
	Lookup(ctx context.Context, id uuid.UUID) (*Record, error)
}

// DirectoryFunc is an adapter to allow ordinary functions as Directories.
type DirectoryFunc func(ctx context.Context, id uuid.UUID) (*Record, error)

// Lookup calls the function.
func (f DirectoryFunc) Lookup(ctx context.Context, id uuid.UUID) (*Record, error) {
	return f(ctx, id)
}
