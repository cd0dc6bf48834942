// ABOUTME: HTTP handler for mission sustainment and packing calculations
// ABOUTME: Resolves platform designs inline or from the validated-design registry

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/uxsforge/mission-planner/backend/models"
)

// MissionLogistics computes batteries, swaps, phase power, and packing
// lists for a plan and stores the plan for change tracking.
func (h *Handler) MissionLogistics(w http.ResponseWriter, r *http.Request) {
	var req models.LogisticsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Plan.ID == "" {
		req.Plan.ID = uuid.NewString()
	}

	result := h.sustainment.Logistics(req.Plan, h.resolveDesigns(req.Designs))
	h.storePlan(req.Plan)
	h.metrics.RecordCalculation(calcSustainment, result.Sustainment.Feasibility.Pass)

	h.writeJSON(w, http.StatusOK, result)
}

// resolveDesigns validates inline designs that lack a validation result and
// falls back to the registry for ids not supplied inline.
func (h *Handler) resolveDesigns(inline []models.PlatformDesign) []models.PlatformDesign {
	designs := make([]models.PlatformDesign, 0, len(inline))
	supplied := make(map[string]bool, len(inline))

	for _, d := range inline {
		if d.Validation == nil {
			d = h.physics.ValidateDesign(d, "")
		}
		designs = append(designs, d)
		supplied[d.ID] = true
	}

	for _, d := range h.designSnapshot() {
		if !supplied[d.ID] {
			designs = append(designs, d)
		}
	}
	return designs
}
