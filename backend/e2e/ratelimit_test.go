// ABOUTME: End-to-end tests for rate limiting through the real router
// ABOUTME: Covers write limits, health exemption, disabled mode, and env-driven config

package e2e

import (
	"net/http"
	"testing"

	"github.com/uxsforge/mission-planner/backend/config"
	"github.com/uxsforge/mission-planner/backend/models"
)

func TestRateLimit_E2E_WriteRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitWrite = 2
	server, _ := newTestServer(t, cfg)

	body := models.ValidatePlatformRequest{Design: quadDesign("quad-a")}
	for i := 0; i < 2; i++ {
		if resp := postJSON(t, server.URL+"/api/v1/platforms/validate", body); resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}

	resp := postJSON(t, server.URL+"/api/v1/platforms/validate", body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 after write limit, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if e := decodeBody[map[string]any](t, resp); e["error"] != "Rate limit exceeded" {
		t.Errorf("Unexpected body %v", e)
	}

	// Read-only calculation routes use the separate default limiter.
	bom := postJSON(t, server.URL+"/api/v1/platforms/bom", quadDesign("quad-a"))
	if bom.StatusCode != http.StatusOK {
		t.Errorf("Expected BOM to be unaffected by write limit, got %d", bom.StatusCode)
	}
}

func TestRateLimit_E2E_HealthExempt(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitDefault = 1
	server, _ := newTestServer(t, cfg)

	for i := 0; i < 5; i++ {
		resp, err := http.Get(server.URL + "/api/v1/health")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Health request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}
}

func TestRateLimit_E2E_DisabledFromEnv(t *testing.T) {
	t.Cleanup(withTestEnv(t, map[string]string{
		"RATE_LIMIT_ENABLED": "false",
		"RATE_LIMIT_WRITE":   "1",
	}))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	server, _ := newTestServer(t, cfg)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, server.URL+"/api/v1/missions/logistics", models.LogisticsRequest{
			Plan:    reconPlan("quad-a"),
			Designs: []models.PlatformDesign{quadDesign("quad-a")},
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d: expected 200 with limits disabled, got %d", i+1, resp.StatusCode)
		}
	}
}
