// ABOUTME: HTTP handler wiring for the mission feasibility API
// ABOUTME: Owns the calculators, the comms analysis cache, and the design/plan registry

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/uxsforge/mission-planner/backend/cache"
	"github.com/uxsforge/mission-planner/backend/config"
	"github.com/uxsforge/mission-planner/backend/middleware"
	"github.com/uxsforge/mission-planner/backend/models"
	"github.com/uxsforge/mission-planner/backend/services"
)

// maxRequestBodySize caps JSON and CSV request bodies at 1 MiB.
const maxRequestBodySize = 1 << 20

// defaultRegistryMaxEntries bounds each of the design and plan registries.
const defaultRegistryMaxEntries = 1000

// Calculator labels used for engine metrics.
const (
	calcPhysics     = "physics"
	calcComms       = "comms"
	calcSustainment = "sustainment"
	calcFeasibility = "feasibility"
)

type Handler struct {
	cfg         *config.Config
	physics     *services.PhysicsCalculator
	comms       *services.LinkBudgetCalculator
	sustainment *services.SustainmentCalculator
	metrics     *middleware.Metrics

	commsCache *cache.Cache[models.CommsAnalysis]
	commsGroup singleflight.Group

	registryMutex sync.RWMutex
	registryLimit int
	designs       map[string]models.PlatformDesign
	designOrder   []string
	plans         map[string]models.MissionPlan
	planOrder     []string
}

// NewHandler builds a handler. cfg and commsCache may be nil (tests):
// a nil cfg uses the default energy model and a nil cache disables caching.
func NewHandler(cfg *config.Config, commsCache *cache.Cache[models.CommsAnalysis]) *Handler {
	physicsCfg := services.DefaultPhysicsConfig()
	registryLimit := defaultRegistryMaxEntries
	if cfg != nil {
		if cfg.RegistryMaxEntries > 0 {
			registryLimit = cfg.RegistryMaxEntries
		}
		physicsCfg = services.PhysicsConfig{
			DepthOfDischarge:    cfg.BatteryDepthOfDischarge,
			Efficiency:          cfg.PowerEfficiency,
			DefaultTemperatureC: cfg.DefaultTemperatureC,
		}
	}

	return &Handler{
		cfg:           cfg,
		physics:       services.NewPhysicsCalculator(physicsCfg),
		comms:         services.NewLinkBudgetCalculator(nil),
		sustainment:   services.NewSustainmentCalculator(),
		commsCache:    commsCache,
		designs:       make(map[string]models.PlatformDesign),
		plans:         make(map[string]models.MissionPlan),
		registryLimit: registryLimit,
	}
}

// SetMetrics attaches a metrics collector for engine calculation counters.
func (h *Handler) SetMetrics(m *middleware.Metrics) {
	h.metrics = m
}

// SetElevation replaces the terrain oracle used by relay placement.
func (h *Handler) SetElevation(e services.ElevationLookup) {
	h.comms = services.NewLinkBudgetCalculator(e)
}

// storeDesign records a validated design, preserving first-seen order.
// Past the registry limit the oldest design is evicted.
func (h *Handler) storeDesign(d models.PlatformDesign) {
	h.registryMutex.Lock()
	defer h.registryMutex.Unlock()
	if _, exists := h.designs[d.ID]; !exists {
		h.designOrder = append(h.designOrder, d.ID)
	}
	h.designs[d.ID] = d
	h.designOrder = evictOldest(h.designs, h.designOrder, h.registryLimit)
}

func (h *Handler) storePlan(p models.MissionPlan) {
	h.registryMutex.Lock()
	defer h.registryMutex.Unlock()
	if _, exists := h.plans[p.ID]; !exists {
		h.planOrder = append(h.planOrder, p.ID)
	}
	h.plans[p.ID] = p
	h.planOrder = evictOldest(h.plans, h.planOrder, h.registryLimit)
}

// evictOldest drops entries from the front of order until at most limit remain
func evictOldest[V any](entries map[string]V, order []string, limit int) []string {
	if limit <= 0 || len(order) <= limit {
		return order
	}
	drop := len(order) - limit
	for _, id := range order[:drop] {
		delete(entries, id)
	}
	slog.Debug("Registry entries evicted", "count", drop)
	return append([]string(nil), order[drop:]...)
}

func (h *Handler) designSnapshot() []models.PlatformDesign {
	h.registryMutex.RLock()
	defer h.registryMutex.RUnlock()
	out := make([]models.PlatformDesign, 0, len(h.designOrder))
	for _, id := range h.designOrder {
		out = append(out, h.designs[id])
	}
	return out
}

func (h *Handler) planSnapshot() []models.MissionPlan {
	h.registryMutex.RLock()
	defer h.registryMutex.RUnlock()
	out := make([]models.MissionPlan, 0, len(h.planOrder))
	for _, id := range h.planOrder {
		out = append(out, h.plans[id])
	}
	return out
}

// decodeJSON reads a size-limited JSON body into v and writes the 400
// response itself when decoding fails.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		slog.Debug("Rejected malformed JSON body", "path", r.URL.Path, "error", err)
		h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorWithDetails(w, message, "", code)
}

func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}
