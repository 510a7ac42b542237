package tenant

import (
	"context"
	"net/http"
	"strings"
)

// CredentialSource extracts the verified credential payload from an HTTP
// request. Returning a nil Claims with a nil error means the request carries
// no usable credential; the middleware rejects it with ErrUnauthenticated.
type CredentialSource interface {
	Credentials(r *http.Request) (*Claims, error)
}

// SourceFunc is an adapter to allow ordinary functions as CredentialSources.
type SourceFunc func(r *http.Request) (*Claims, error)

// Credentials calls the function.
func (f SourceFunc) Credentials(r *http.Request) (*Claims, error) {
	return f(r)
}

// claimsKey is a private type for the claims handoff between the upstream
// authentication middleware and ContextSource.
type claimsKey struct{}

// WithClaims stores verified claims in the context. Called by the upstream
// authentication middleware after it has verified the credential.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext retrieves verified claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// ContextSource reads claims an upstream authentication middleware deposited
// in the request context via WithClaims. This is the default wiring when the
// service verifies tokens itself.
type ContextSource struct{}

// NewContextSource creates a source backed by the request context.
func NewContextSource() *ContextSource {
	return &ContextSource{}
}

// Credentials returns the claims stored in the request context, or nil when
// the authentication layer did not run.
func (s *ContextSource) Credentials(r *http.Request) (*Claims, error) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return nil, nil
	}
	return claims, nil
}

// HeaderSource trusts tenant identity headers set by a fronting gateway that
// already verified the caller. Use it only behind infrastructure that strips
// these headers from external traffic.
type HeaderSource struct {
	// TenantHeader carries the tenant identifier (e.g. "X-Tenant-ID").
	TenantHeader string
	// SystemHeader, when non-empty and present on the request, marks the
	// caller as a privileged system operation. Leave empty to reject system
	// credentials on this surface entirely.
	SystemHeader string
}

// NewHeaderSource creates a gateway-header source.
func NewHeaderSource(tenantHeader string) *HeaderSource {
	if tenantHeader == "" {
		tenantHeader = "X-Tenant-ID"
	}
	return &HeaderSource{TenantHeader: tenantHeader}
}

// Credentials builds claims from the trusted headers. Requests without the
// tenant header (and without the system header) carry no credential.
func (s *HeaderSource) Credentials(r *http.Request) (*Claims, error) {
	id := strings.TrimSpace(r.Header.Get(s.TenantHeader))
	system := s.SystemHeader != "" && r.Header.Get(s.SystemHeader) != ""

	if id == "" && !system {
		return nil, nil
	}
	return &Claims{TenantID: id, System: system}, nil
}
