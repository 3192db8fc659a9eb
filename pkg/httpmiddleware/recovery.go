package httpmiddleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Recovery converts panics into 500 responses. The panic value and stack are
// logged; the client gets a generic JSON error.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					zctx.From(r.Context()).Error("panic recovered",
						zap.Any("panic", rec),
						zap.Stack("stack"),
					)
					w.Header().Set("Connection", "close")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"code":    http.StatusInternalServerError,
						"message": "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
