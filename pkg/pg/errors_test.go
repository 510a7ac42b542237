package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantguard/pkg/pg"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsNotFoundError(nil))
	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("load tenant: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))
}

func TestIsTxClosedError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsTxClosedError(nil))
	assert.True(t, pg.IsTxClosedError(pgx.ErrTxClosed))
	assert.False(t, pg.IsTxClosedError(pgx.ErrNoRows))
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsDuplicateKeyError(nil))
	assert.True(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsDuplicateKeyError(errors.New("duplicate")))
}

func TestIsForeignKeyViolationError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsForeignKeyViolationError(nil))
	assert.True(t, pg.IsForeignKeyViolationError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsForeignKeyViolationError(&pgconn.PgError{Code: "23505"}))
}

func TestIsPolicyViolationError(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.IsPolicyViolationError(nil))

	denial := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "42501",
		Message:  "new row violates row-level security policy for table \"notes\"",
	}
	assert.True(t, pg.IsPolicyViolationError(denial))
	assert.True(t, pg.IsPolicyViolationError(fmt.Errorf("insert note: %w", denial)))

	assert.False(t, pg.IsPolicyViolationError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsPolicyViolationError(errors.New("permission denied")))
}
