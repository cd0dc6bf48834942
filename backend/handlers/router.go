// ABOUTME: Builds the HTTP router from the route table and middleware chain
// ABOUTME: Shared by the service entry point and end-to-end tests

package handlers

import (
	"net/http"
	"time"

	"github.com/uxsforge/mission-planner/backend/config"
	"github.com/uxsforge/mission-planner/backend/middleware"
)

const rateLimitWindow = time.Minute

// NewRouter registers every route with logging, CORS, metrics, and rate
// limiting applied. metrics may be nil. Health is never rate limited.
func NewRouter(cfg *config.Config, h *Handler, metrics *middleware.Metrics) *http.ServeMux {
	var origins []string
	var defaultLimiter, writeLimiter *middleware.RateLimiter
	if cfg != nil {
		origins = cfg.CORSAllowedOrigins
		if cfg.RateLimitEnabled {
			defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, rateLimitWindow)
			writeLimiter = middleware.NewRateLimiter(cfg.RateLimitWrite, rateLimitWindow)
		}
	}
	cors := middleware.CORSWithConfig(origins)

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		limiter := defaultLimiter
		switch {
		case route.Write:
			limiter = writeLimiter
		case route.Path == "/api/v1/health":
			limiter = nil
		}

		mux.HandleFunc(route.Pattern(), middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			metrics.Instrument(route.Path),
			middleware.RateLimit(limiter, middleware.ClientIP),
		))
	}

	// Preflight for every API path; the handler is never reached.
	mux.HandleFunc("OPTIONS /api/v1/", middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, cors))

	if metrics != nil && (cfg == nil || cfg.MetricsEnabled) {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return mux
}
