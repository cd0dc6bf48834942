// ABOUTME: HTTP handlers for platform physics endpoints
// ABOUTME: Validates designs, lists the registry, and derives BOMs and battery estimates

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/uxsforge/mission-planner/backend/models"
	"github.com/uxsforge/mission-planner/backend/services"
)

// ValidatePlatform runs the physics validator, stores the validated design,
// and reports which stored mission plans reference it.
func (h *Handler) ValidatePlatform(w http.ResponseWriter, r *http.Request) {
	var req models.ValidatePlatformRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Design.ID == "" {
		req.Design.ID = uuid.NewString()
	}

	design := h.physics.ValidateDesign(req.Design, req.PlatformType)
	h.storeDesign(design)
	h.metrics.RecordCalculation(calcPhysics, design.Validation.Pass)

	affected := services.AffectedPlans(h.planSnapshot(), design.ID)
	if len(affected) > 0 {
		slog.Info("Validated design is used by stored missions",
			"platform_id", design.ID,
			"missions", len(affected),
		)
	}

	h.writeJSON(w, http.StatusOK, models.ValidatePlatformResponse{
		Design:           design,
		Validation:       *design.Validation,
		AffectedMissions: affected,
	})
}

// ListPlatforms returns every validated design in first-validated order.
func (h *Handler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"designs": h.designSnapshot(),
	})
}

// PlatformBOM returns the bill of materials for a design.
func (h *Handler) PlatformBOM(w http.ResponseWriter, r *http.Request) {
	var design models.PlatformDesign
	if !h.decodeJSON(w, r, &design) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.physics.BOM(design))
}

// BatteryRequirements estimates batteries needed for a mission duration.
func (h *Handler) BatteryRequirements(w http.ResponseWriter, r *http.Request) {
	var req models.BatteryRequirementsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.physics.BatteryRequirements(req.Design, req.MissionDurationHours, req.Environment))
}
