// ABOUTME: Middleware type and chaining utility for route handlers
// ABOUTME: Composes middleware so the first listed runs outermost

package middleware

import "net/http"

// Middleware wraps a handler with behavior shared across routes.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h so Chain(h, a, b) serves as a(b(h)). Nil entries are
// skipped, which lets callers leave optional layers unset.
func Chain(h http.HandlerFunc, middlewares ...Middleware) http.HandlerFunc {
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		if mw := middlewares[i]; mw != nil {
			wrapped = mw(wrapped)
		}
	}
	return wrapped
}
