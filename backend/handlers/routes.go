// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods, handlers, and rate-limit class

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	Write   bool             // counts against the stricter write rate limit
}

// Pattern returns the ServeMux pattern for the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & documentation
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},

		// Platform physics
		{Method: http.MethodPost, Path: "/api/v1/platforms/validate", Handler: h.ValidatePlatform, Write: true},
		{Method: http.MethodGet, Path: "/api/v1/platforms", Handler: h.ListPlatforms},
		{Method: http.MethodPost, Path: "/api/v1/platforms/bom", Handler: h.PlatformBOM},
		{Method: http.MethodPost, Path: "/api/v1/platforms/battery-requirements", Handler: h.BatteryRequirements},

		// RF link budget
		{Method: http.MethodPost, Path: "/api/v1/comms/analyze", Handler: h.AnalyzeComms},
		{Method: http.MethodPost, Path: "/api/v1/comms/relay-placement", Handler: h.RelayPlacement},
		{Method: http.MethodGet, Path: "/api/v1/comms/radios", Handler: h.SuggestRadios},

		// Sustainment
		{Method: http.MethodPost, Path: "/api/v1/missions/logistics", Handler: h.MissionLogistics, Write: true},

		// Combined
		{Method: http.MethodPost, Path: "/api/v1/feasibility", Handler: h.Feasibility, Write: true},

		// Catalogue
		{Method: http.MethodPost, Path: "/api/v1/parts/import", Handler: h.ImportParts, Write: true},
	}
}
