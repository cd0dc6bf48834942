// ABOUTME: Unit tests for rate limiting middleware
// ABOUTME: Tests the fixed-window limiter, client keying, and 429 responses

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// steppedClock is a manually advanced clock for the limiter
type steppedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *steppedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newSteppedLimiter(limit int, period time.Duration) (*RateLimiter, *steppedClock) {
	clock := &steppedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, period)
	rl.now = clock.Now
	return rl, clock
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		d := rl.Allow("client")
		if !d.Allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
		if d.Remaining != 2-i {
			t.Errorf("Request %d: expected %d remaining, got %d", i+1, 2-i, d.Remaining)
		}
	}
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl, clock := newSteppedLimiter(2, time.Minute)

	rl.Allow("client")
	clock.Advance(15 * time.Second)
	rl.Allow("client")

	d := rl.Allow("client")
	if d.Allowed {
		t.Fatal("Third request should be rejected")
	}
	if d.RetryAfter != 45*time.Second {
		t.Errorf("Expected retry after 45s, got %v", d.RetryAfter)
	}
	if d.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", d.Remaining)
	}
}

func TestRateLimiter_SeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("key-a").Allowed {
		t.Fatal("First request for key-a should be allowed")
	}
	if !rl.Allow("key-b").Allowed {
		t.Fatal("First request for key-b should be allowed (separate quota)")
	}
	if rl.Allow("key-a").Allowed {
		t.Fatal("Second request for key-a should be rejected")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl, clock := newSteppedLimiter(1, time.Minute)

	rl.Allow("client")
	if rl.Allow("client").Allowed {
		t.Fatal("Second request should be rejected")
	}

	// The exact expiry instant opens a new window.
	clock.Advance(time.Minute)
	if !rl.Allow("client").Allowed {
		t.Fatal("Request at window boundary should be allowed")
	}
}

func TestRateLimiter_SweepDropsExpiredWindows(t *testing.T) {
	rl, clock := newSteppedLimiter(1, time.Second)

	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("stale-%d", i))
	}
	clock.Advance(2 * time.Second)

	// Opening sweepEvery new windows triggers a sweep of the stale ones.
	for i := 0; i < sweepEvery; i++ {
		rl.Allow(fmt.Sprintf("fresh-%d", i))
	}

	if n := rl.Len(); n > sweepEvery {
		t.Errorf("Expected stale windows to be swept, got %d tracked", n)
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(100, time.Minute)

	var wg sync.WaitGroup
	allowed := make([]bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			allowed[idx] = rl.Allow("concurrent-key").Allowed
		}(i)
	}

	wg.Wait()

	allowedCount := 0
	for _, a := range allowed {
		if a {
			allowedCount++
		}
	}

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		xff      string
		remote   string
		expected string
	}{
		{name: "single IP", xff: "203.0.113.1", expected: "ip:203.0.113.1"},
		{name: "multiple IPs takes leftmost", xff: "203.0.113.1, 198.51.100.1", expected: "ip:203.0.113.1"},
		{name: "XFF with spaces", xff: "  203.0.113.1 , 10.0.0.1 ", expected: "ip:203.0.113.1"},
		{name: "garbage XFF falls back", xff: "not-an-ip", remote: "10.0.0.9:4000", expected: "ip:10.0.0.9"},
		{name: "no XFF uses RemoteAddr", remote: "192.168.1.1:12345", expected: "ip:192.168.1.1"},
		{name: "RemoteAddr without port", remote: "192.168.1.1", expected: "ip:192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}

			if key := ClientIP(r); key != tt.expected {
				t.Errorf("ClientIP() = %q, want %q", key, tt.expected)
			}
		})
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	for name, mw := range map[string]func(http.HandlerFunc) http.HandlerFunc{
		"nil limiter": RateLimit(nil, ClientIP),
		"empty key":   RateLimit(NewRateLimiter(1, time.Minute), func(*http.Request) string { return "" }),
	} {
		t.Run(name, func(t *testing.T) {
			wrapped := mw(okHandler)
			for i := 0; i < 3; i++ {
				w := httptest.NewRecorder()
				wrapped(w, httptest.NewRequest(http.MethodPost, "/api/v1/feasibility", nil))
				if w.Code != http.StatusOK {
					t.Fatalf("Request %d: expected 200, got %d", i+1, w.Code)
				}
			}
		})
	}
}

func TestRateLimitMiddleware_QuotaHeaders(t *testing.T) {
	wrapped := RateLimit(NewRateLimiter(5, time.Minute), ClientIP)(okHandler)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/comms/analyze", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	wrapped(w, r)

	if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Errorf("Expected X-RateLimit-Limit 5, got %q", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("Expected X-RateLimit-Remaining 4, got %q", got)
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	wrapped := RateLimit(NewRateLimiter(1, time.Minute), ClientIP)(okHandler)

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/feasibility", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		wrapped(w, r)
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("First request should be 200, got %d", w.Code)
	}

	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Second request should be 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	if body["error"] != "Rate limit exceeded" {
		t.Errorf("Expected error 'Rate limit exceeded', got %q", body["error"])
	}
	if body["code"] != float64(http.StatusTooManyRequests) {
		t.Errorf("Expected code 429, got %v", body["code"])
	}
	if _, ok := body["retry_after"]; !ok {
		t.Error("Expected retry_after field in response body")
	}
}
