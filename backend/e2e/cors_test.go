// ABOUTME: Integration tests for CORS handling through the real router
// ABOUTME: Verifies allowlisted origins, rejected origins, and API-wide preflight

package e2e

import (
	"net/http"
	"testing"
)

func TestCORSIntegration_AllowlistThroughRouter(t *testing.T) {
	cfg := testConfig()
	cfg.CORSAllowedOrigins = []string{"https://planner.example.com", "http://localhost:5173"}
	server, _ := newTestServer(t, cfg)

	tests := []struct {
		name           string
		origin         string
		expectedOrigin string
	}{
		{"allowed origin", "https://planner.example.com", "https://planner.example.com"},
		{"localhost dev origin", "http://localhost:5173", "http://localhost:5173"},
		{"disallowed origin", "https://evil.example", ""},
		{"different port", "http://localhost:3000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/health", nil)
			req.Header.Set("Origin", tt.origin)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("Expected status 200, got %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.expectedOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.expectedOrigin)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Error("Expected X-Request-ID on every response")
			}
		})
	}
}

func TestCORSIntegration_PreflightOnPostRoute(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/v1/comms/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204 preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Unexpected allowed methods %q", got)
	}
}
