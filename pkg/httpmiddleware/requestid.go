package httpmiddleware

import (
	"context"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by the RequestID
// middleware, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID tags every request with an identifier. A valid incoming
// X-Request-ID header is reused, anything else is replaced with a fresh
// UUID. The ID is echoed on the response, stored in the context, and added
// to the contextual logger so all request-scoped log lines carry it.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if !validRequestID(id) {
				id = uuid.New().String()
			}

			w.Header().Set("X-Request-ID", id)

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			ctx = zctx.With(ctx, zap.String("request_id", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validRequestID accepts non-empty printable ASCII up to 128 bytes.
func validRequestID(id string) bool {
	if len(id) == 0 || len(id) > 128 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}
	return true
}
