// Package requestid assigns every request an ID that is echoed in the
// response and attached to every log line for that request.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"rutkit/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxInboundLength bounds caller-supplied IDs so they cannot bloat logs.
const maxInboundLength = 128

// Middleware reuses a caller-supplied X-Request-ID when it is present and
// short enough, otherwise it generates a random UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
