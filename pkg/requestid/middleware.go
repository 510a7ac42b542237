package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the canonical request correlation header.
const Header = "X-Request-ID"

// validID bounds the length so hostile values cannot bloat logs or response
// headers.
var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// Middleware tags every request with a correlation identifier. A valid
// client-supplied X-Request-ID is reused so the identifier survives hops
// between services; a missing or malformed one is replaced with a fresh UUID.
// The chosen identifier is stored in the request context and echoed in the
// response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !validID.MatchString(id) {
			id = uuid.New().String()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}
