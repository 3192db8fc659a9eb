// Package httpmiddleware provides net/http middleware used by the API
// server: request identification, panic recovery, access logging, CORS, and
// rate limiting.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies middlewares to h in order: the first middleware becomes the
// outermost layer.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
