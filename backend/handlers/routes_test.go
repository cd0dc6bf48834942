// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields, no duplicates, and the expected endpoints

package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := NewHandler(nil, nil)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Path == "" {
			t.Errorf("Route %d: Path is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := NewHandler(nil, nil)

	seen := make(map[string]bool)
	for _, route := range h.Routes() {
		if seen[route.Pattern()] {
			t.Errorf("Duplicate route: %s", route.Pattern())
		}
		seen[route.Pattern()] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := NewHandler(nil, nil)

	expected := map[string]bool{
		"GET /api/v1/health":                          false,
		"GET /api/v1/openapi.yaml":                    false,
		"POST /api/v1/platforms/validate":             false,
		"GET /api/v1/platforms":                       false,
		"POST /api/v1/platforms/bom":                  false,
		"POST /api/v1/platforms/battery-requirements": false,
		"POST /api/v1/comms/analyze":                  false,
		"POST /api/v1/comms/relay-placement":          false,
		"GET /api/v1/comms/radios":                    false,
		"POST /api/v1/missions/logistics":             false,
		"POST /api/v1/feasibility":                    false,
		"POST /api/v1/parts/import":                   false,
	}

	for _, route := range h.Routes() {
		if _, ok := expected[route.Pattern()]; ok {
			expected[route.Pattern()] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestRoutes_WriteRoutesArePosts(t *testing.T) {
	h := NewHandler(nil, nil)

	for _, route := range h.Routes() {
		if route.Write && route.Method != http.MethodPost {
			t.Errorf("Write route %s should be POST", route.Pattern())
		}
	}
}
