package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/requestid"
)

func serveWithID(t *testing.T, headerValue string) (seen string, rec *httptest.ResponseRecorder) {
	t.Helper()

	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if headerValue != "" {
		req.Header.Set(requestid.Header, headerValue)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates an identifier when none is supplied", func(t *testing.T) {
		t.Parallel()

		seen, rec := serveWithID(t, "")
		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses a valid client identifier", func(t *testing.T) {
		t.Parallel()

		seen, rec := serveWithID(t, "gateway-7f3a_01")
		assert.Equal(t, "gateway-7f3a_01", seen)
		assert.Equal(t, "gateway-7f3a_01", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed identifiers", func(t *testing.T) {
		t.Parallel()

		for _, invalid := range []string{
			"has spaces",
			"path/separators",
			"test<script>alert(1)</script>",
			strings.Repeat("a", 129),
		} {
			seen, rec := serveWithID(t, invalid)
			assert.NotEqual(t, invalid, seen)
			assert.NotEmpty(t, seen)
			assert.NotEqual(t, invalid, rec.Header().Get(requestid.Header))
		}
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := requestid.WithContext(context.Background(), "test-id")
	assert.Equal(t, "test-id", requestid.FromContext(ctx))
	assert.Empty(t, requestid.FromContext(context.Background()))
}
