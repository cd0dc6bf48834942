// ABOUTME: Rate limiting middleware with fixed-window counters
// ABOUTME: Limits calculation requests per client IP and reports remaining quota

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// sweepEvery is how many new windows are opened between full sweeps of
// expired entries. Memory stays bounded by active keys plus this many.
const sweepEvery = 100

// window tracks requests for one client in the current period.
type window struct {
	count     int
	expiresAt time.Time
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter enforces a maximum number of requests per time window.
// Each client key gets an independent counter.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	opened  int
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter that allows limit requests per period.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it fits the quota.
func (rl *RateLimiter) Allow(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	d := Decision{Limit: rl.limit}

	// The boundary instant opens a new window so a denial never carries a
	// zero retry interval.
	w, ok := rl.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		rl.windows[key] = &window{count: 1, expiresAt: now.Add(rl.period)}
		rl.opened++
		if rl.opened >= sweepEvery {
			rl.sweep(now)
			rl.opened = 0
		}
		d.Allowed = true
		d.Remaining = rl.limit - 1
		return d
	}

	if w.count < rl.limit {
		w.count++
		d.Allowed = true
		d.Remaining = rl.limit - w.count
		return d
	}

	d.RetryAfter = w.expiresAt.Sub(now)
	return d
}

// Len reports how many client windows are currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// sweep drops expired windows. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if !now.Before(w.expiresAt) {
			delete(rl.windows, k)
		}
	}
}

// ClientIP keys a request by the leftmost valid X-Forwarded-For address,
// else by RemoteAddr without its port. X-Forwarded-For is only trustworthy
// behind a proxy that sets it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" && net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// RateLimit returns middleware enforcing limiter per keyFunc. A nil limiter
// or key function disables it; an empty key passes through unlimited.
// Allowed responses carry X-RateLimit-Limit and X-RateLimit-Remaining.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			d := limiter.Allow(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if d.Allowed {
				next(w, r)
				return
			}

			retrySeconds := int(math.Ceil(d.RetryAfter.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", r.URL.Path, "retry_after", retrySeconds)

			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       "Rate limit exceeded",
				"code":        http.StatusTooManyRequests,
				"retry_after": retrySeconds,
			})
		}
	}
}
