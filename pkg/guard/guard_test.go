package guard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/guard"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	g := guard.New(guard.WithSystemOperations("tenants.provision"))

	t.Run("allows a valid tenant on a tenant-scoped operation", func(t *testing.T) {
		t.Parallel()

		tc, err := tenant.New(uuid.New())
		require.NoError(t, err)

		assert.NoError(t, g.Authorize(tc, "invoices.read"))
	})

	t.Run("denies the zero context", func(t *testing.T) {
		t.Parallel()

		err := g.Authorize(tenant.Context{}, "invoices.read")
		require.ErrorIs(t, err, guard.ErrForbidden)
		require.ErrorIs(t, err, guard.ErrNoTenant)
	})

	t.Run("denies a system context on a tenant-scoped operation", func(t *testing.T) {
		t.Parallel()

		err := g.Authorize(tenant.NewSystem(), "invoices.read")
		require.ErrorIs(t, err, guard.ErrForbidden)
	})

	t.Run("denies a tenant on a system-level operation", func(t *testing.T) {
		t.Parallel()

		tc, err := tenant.New(uuid.New())
		require.NoError(t, err)

		authzErr := g.Authorize(tc, "tenants.provision")
		require.ErrorIs(t, authzErr, guard.ErrForbidden)
		require.ErrorIs(t, authzErr, guard.ErrSystemOperation)
	})

	t.Run("allows a system context on a system-level operation", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, g.Authorize(tenant.NewSystem(), "tenants.provision"))
	})

	t.Run("undeclared operations are tenant-scoped", func(t *testing.T) {
		t.Parallel()

		plain := guard.New()
		tc, err := tenant.New(uuid.New())
		require.NoError(t, err)

		assert.NoError(t, plain.Authorize(tc, "anything.at.all"))
		assert.ErrorIs(t, plain.Authorize(tenant.NewSystem(), "anything.at.all"), guard.ErrForbidden)
	})
}

func TestAuthorizeContext(t *testing.T) {
	t.Parallel()

	g := guard.New()

	t.Run("reads the tenant from the context", func(t *testing.T) {
		t.Parallel()

		tc, err := tenant.New(uuid.New())
		require.NoError(t, err)

		ctx := tenant.WithContext(context.Background(), tc)
		assert.NoError(t, g.AuthorizeContext(ctx, "invoices.read"))
	})

	t.Run("denies when no tenant is attached", func(t *testing.T) {
		t.Parallel()

		err := g.AuthorizeContext(context.Background(), "invoices.read")
		require.ErrorIs(t, err, guard.ErrForbidden)
		require.ErrorIs(t, err, guard.ErrNoTenant)
	})
}

func TestIsSystemOperation(t *testing.T) {
	t.Parallel()

	g := guard.New(guard.WithSystemOperations("billing.sweep"))

	assert.True(t, g.IsSystemOperation("billing.sweep"))
	assert.False(t, g.IsSystemOperation("invoices.read"))
}

func TestVerifyOwnership(t *testing.T) {
	t.Parallel()

	g := guard.New()

	t.Run("owner matches the bound tenant", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		tc, err := tenant.New(id)
		require.NoError(t, err)

		assert.NoError(t, g.VerifyOwnership(tc, id))
	})

	t.Run("denies a cross-tenant row", func(t *testing.T) {
		t.Parallel()

		tc, err := tenant.New(uuid.New())
		require.NoError(t, err)

		ownErr := g.VerifyOwnership(tc, uuid.New())
		require.ErrorIs(t, ownErr, guard.ErrForbidden)
		require.ErrorIs(t, ownErr, guard.ErrOwnershipMismatch)
	})

	t.Run("denies sentinel-owned rows for regular tenants", func(t *testing.T) {
		t.Parallel()

		tc, err := tenant.New(uuid.New())
		require.NoError(t, err)

		assert.ErrorIs(t, g.VerifyOwnership(tc, tenant.SentinelTenantID), guard.ErrForbidden)
	})

	t.Run("system contexts may touch any row", func(t *testing.T) {
		t.Parallel()

		sys := tenant.NewSystem()
		assert.NoError(t, g.VerifyOwnership(sys, uuid.New()))
		assert.NoError(t, g.VerifyOwnership(sys, tenant.SentinelTenantID))
	})

	t.Run("denies the zero context", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, g.VerifyOwnership(tenant.Context{}, uuid.New()), guard.ErrNoTenant)
	})
}
