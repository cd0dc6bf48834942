// ABOUTME: Test helpers for e2e tests
// ABOUTME: Starts the real router on an httptest server and issues JSON requests

package e2e

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/uxsforge/mission-planner/backend/cache"
	"github.com/uxsforge/mission-planner/backend/config"
	"github.com/uxsforge/mission-planner/backend/handlers"
	"github.com/uxsforge/mission-planner/backend/middleware"
	"github.com/uxsforge/mission-planner/backend/models"
)

// testConfig mirrors config.Load defaults without touching the environment.
func testConfig() *config.Config {
	return &config.Config{
		Port:                    "0",
		CacheTTL:                300,
		MetricsEnabled:          true,
		RateLimitEnabled:        true,
		RateLimitDefault:        100,
		RateLimitWrite:          30,
		BatteryDepthOfDischarge: 0.8,
		PowerEfficiency:         0.85,
		DefaultTemperatureC:     15,
	}
}

// newTestServer wires handlers, cache, metrics, and middleware exactly as
// main does, on a private Prometheus registry.
func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *middleware.Metrics) {
	t.Helper()

	h := handlers.NewHandler(cfg, cache.New[models.CommsAnalysis](time.Duration(cfg.CacheTTL)*time.Second))
	metrics, err := middleware.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	h.SetMetrics(metrics)

	server := httptest.NewServer(handlers.NewRouter(cfg, h, metrics))
	t.Cleanup(server.Close)
	return server, metrics
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

// withTestEnv clears the environment, applies vars, and returns a restore func.
func withTestEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()
	original := os.Environ()
	os.Clearenv()
	os.Setenv("ENV_FILE", t.TempDir()+"/missing.env")
	for k, v := range vars {
		os.Setenv(k, v)
	}
	return func() {
		os.Clearenv()
		for _, kv := range original {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	}
}

func quadDesign(id string) models.PlatformDesign {
	motors := make([]models.Motor, 4)
	for i := range motors {
		motors[i] = models.Motor{
			Part:        models.Part{Name: "2306 1700KV", WeightG: 50, CostUSD: 25},
			KV:          1700,
			MaxThrustG:  1000,
			MaxCurrentA: 25,
			MaxPowerW:   40,
		}
	}
	return models.PlatformDesign{
		ID:   id,
		Name: "Recon Quad " + id,
		Components: models.PlatformComponents{
			Airframe: &models.Airframe{Part: models.Part{Name: "5in Frame", WeightG: 250, CostUSD: 80}, Type: "multi-rotor", MaxPayloadG: 1500},
			Motors:   motors,
			ESC:      &models.ESC{Part: models.Part{Name: "4in1 35A", WeightG: 30}, MaxCurrentA: 35},
			Battery: &models.Battery{
				Part:            models.Part{Name: "4S 5000mAh", WeightG: 500, CostUSD: 90},
				CapacityWh:      74,
				VoltageNominalV: 14.8,
				MaxDischargeA:   100,
			},
			FlightController: &models.FlightController{Part: models.Part{Name: "H7 FC", WeightG: 10}, CurrentDrawMA: 200},
			Radios:           []models.Radio{{Part: models.Part{Name: "ELRS RX", WeightG: 20}, PowerConsumptionW: 1}},
			Sensors:          []models.Sensor{{Part: models.Part{Name: "Day Camera", WeightG: 30}, PowerConsumptionW: 2}},
		},
	}
}

func equatorNode(id string, meters float64) models.CommsNode {
	return models.CommsNode{
		ID:       id,
		Name:     id,
		Location: models.NodeLocation{Lat: 0, Lon: meters / 6371000 * 180 / math.Pi},
	}
}

func reconPlan(platformIDs ...string) models.MissionPlan {
	return models.MissionPlan{
		ID:            "recon-1",
		Name:          "Valley Recon",
		DurationHours: 3,
		Terrain:       "temperate",
		Team:          models.MissionTeam{Size: 3, Roles: []string{"Team Lead", "UxS Pilot", "Comms Specialist"}},
		Platforms:     platformIDs,
		Phases: []models.MissionPhase{
			{Name: "Infil", Type: models.PhaseInfil, DurationHours: 1, ActivityLevel: models.ActivityLow, PlatformsActive: platformIDs[:1]},
			{Name: "On Station", Type: models.PhaseOnStation, DurationHours: 1.5, ActivityLevel: models.ActivityHigh, PlatformsActive: platformIDs},
			{Name: "Exfil", Type: models.PhaseExfil, DurationHours: 0.5, ActivityLevel: models.ActivityMedium, PlatformsActive: platformIDs[:1]},
		},
	}
}
