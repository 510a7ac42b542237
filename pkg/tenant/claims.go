package tenant

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the verified credential payload handed over by the upstream
// authentication layer. Signature, expiry and audience verification happen
// before this package sees the payload; Resolve only extracts and validates
// the tenant claim.
type Claims struct {
	// TenantID is the tenant claim, a UUID in string form.
	TenantID string `json:"tenant_id,omitempty"`
	// System marks privileged platform callers. It is set by the issuer for
	// maintenance tooling, never for ordinary user credentials.
	System bool `json:"system,omitempty"`

	jwt.RegisteredClaims
}

// Resolve turns a verified credential payload into a tenant Context.
//
// Resolution fails closed: a payload without a tenant claim is rejected with
// ErrMissingTenant unless the issuer explicitly flagged the caller as system.
// There is no fallback to the sentinel tenant; a zero-UUID claim fails with
// ErrSentinelTenant. The Context's issue timestamp is taken from the iat
// claim when present.
func Resolve(claims *Claims) (Context, error) {
	if claims == nil {
		return Context{}, ErrUnauthenticated
	}

	issuedAt := time.Now()
	if claims.IssuedAt != nil && !claims.IssuedAt.IsZero() {
		issuedAt = claims.IssuedAt.Time
	}

	if claims.System {
		return NewSystem(WithIssuedAt(issuedAt)), nil
	}

	raw := strings.TrimSpace(claims.TenantID)
	if raw == "" {
		return Context{}, ErrMissingTenant
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return Context{}, errors.Join(ErrInvalidTenantID, err)
	}

	return New(id, WithIssuedAt(issuedAt))
}
