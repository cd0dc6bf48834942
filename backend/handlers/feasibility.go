// ABOUTME: HTTP handler for the combined mission feasibility check
// ABOUTME: Validates platforms and analyses comms concurrently, then computes logistics

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/uxsforge/mission-planner/backend/models"
)

// Feasibility answers whether a whole mission is viable.
func (h *Handler) Feasibility(w http.ResponseWriter, r *http.Request) {
	var req models.FeasibilityRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	report, err := h.checkFeasibility(r.Context(), req)
	if err != nil {
		slog.Warn("Feasibility check abandoned", "error", err)
		h.writeError(w, "Request cancelled", http.StatusServiceUnavailable)
		return
	}
	h.metrics.RecordCalculation(calcFeasibility, report.Pass)
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) checkFeasibility(ctx context.Context, req models.FeasibilityRequest) (models.FeasibilityReport, error) {
	validated := make([]models.PlatformDesign, len(req.Designs))
	var analysis models.CommsAnalysis

	g, gctx := errgroup.WithContext(ctx)
	for i, design := range req.Designs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			validated[i] = h.physics.ValidateDesign(design, "")
			h.metrics.RecordCalculation(calcPhysics, validated[i].Validation.Pass)
			return nil
		})
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		analysis, _ = h.analyzeComms(req.Comms)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.FeasibilityReport{}, fmt.Errorf("feasibility fan-out: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return models.FeasibilityReport{}, fmt.Errorf("feasibility logistics: %w", err)
	}

	logistics := h.sustainment.Logistics(req.Plan, validated)
	h.metrics.RecordCalculation(calcSustainment, logistics.Sustainment.Feasibility.Pass)

	return buildReport(validated, analysis, logistics), nil
}

func buildReport(designs []models.PlatformDesign, comms models.CommsAnalysis, logistics models.MissionLogistics) models.FeasibilityReport {
	report := models.FeasibilityReport{
		Pass:      true,
		Platforms: make([]models.PlatformCheck, 0, len(designs)),
		Comms:     comms,
		Logistics: logistics,
		Summary:   []string{},
	}

	for _, d := range designs {
		report.Platforms = append(report.Platforms, models.PlatformCheck{
			DesignID:   d.ID,
			DesignName: d.Name,
			Validation: *d.Validation,
		})
		if !d.Validation.Pass {
			report.Pass = false
			report.Summary = append(report.Summary,
				fmt.Sprintf("Platform %s failed validation with %d error(s)", displayName(d), len(d.Validation.Errors)))
		}
	}

	if !comms.Feasibility.Pass {
		report.Pass = false
		report.Summary = append(report.Summary,
			fmt.Sprintf("Comms plan failed with %d error(s)", len(comms.Feasibility.Errors)))
	}
	if !logistics.Sustainment.Feasibility.Pass {
		report.Pass = false
		report.Summary = append(report.Summary,
			fmt.Sprintf("Logistics failed with %d error(s)", len(logistics.Sustainment.Feasibility.Errors)))
	}
	if report.Pass {
		report.Summary = append(report.Summary, "Mission is feasible")
	}
	return report
}

func displayName(d models.PlatformDesign) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}
