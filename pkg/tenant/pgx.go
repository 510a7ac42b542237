package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// rowQuerier is the subset of pgxpool.Pool (or pgx.Conn, or pgx.Tx) the
// directory needs.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tenantsTable is the registry table materialized by the platform's schema
// migrations. It is not tenant-scoped; no isolation policy applies to it.
const tenantsTable = "tenants"

// PgxDirectory loads tenant records from the registry table over pgx.
type PgxDirectory struct {
	db rowQuerier
}

// NewPgxDirectory creates a registry-backed directory. The querier is
// typically a *pgxpool.Pool.
func NewPgxDirectory(db rowQuerier) *PgxDirectory {
	return &PgxDirectory{db: db}
}

// Lookup fetches the tenant record by identifier.
func (d *PgxDirectory) Lookup(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := d.db.QueryRow(ctx,
		`SELECT id, name, active, created_at FROM `+tenantsTable+` WHERE id = $1`, id)

	var rec Record
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Active, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &rec, nil
}
