// ABOUTME: HTTP handlers for RF link-budget endpoints
// ABOUTME: Caches analyses by request hash and coalesces identical concurrent requests

package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/uxsforge/mission-planner/backend/models"
	"github.com/uxsforge/mission-planner/backend/services"
)

// AnalyzeComms computes link budgets for every node pair.
func (h *Handler) AnalyzeComms(w http.ResponseWriter, r *http.Request) {
	var req models.CommsAnalysisRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	analysis, cached := h.analyzeComms(req)
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	h.writeJSON(w, http.StatusOK, analysis)
}

// analyzeComms returns a cached analysis when an identical request was seen
// within the cache TTL. Concurrent identical requests share one computation.
func (h *Handler) analyzeComms(req models.CommsAnalysisRequest) (models.CommsAnalysis, bool) {
	key, err := commsCacheKey(req)
	if err != nil || h.commsCache == nil {
		analysis := h.comms.Analyze(req)
		h.metrics.RecordCalculation(calcComms, analysis.Feasibility.Pass)
		return analysis, false
	}

	if analysis, found := h.commsCache.Get(key); found {
		return analysis, true
	}

	v, _, _ := h.commsGroup.Do(key, func() (any, error) {
		analysis := h.comms.Analyze(req)
		h.metrics.RecordCalculation(calcComms, analysis.Feasibility.Pass)
		h.commsCache.Set(key, analysis)
		return analysis, nil
	})
	return v.(models.CommsAnalysis), false
}

func commsCacheKey(req models.CommsAnalysisRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding comms request: %w", err)
	}
	sum := sha256.Sum256(body)
	return "comms:" + hex.EncodeToString(sum[:]), nil
}

// RelayPlacement suggests a relay site between two nodes.
func (h *Handler) RelayPlacement(w http.ResponseWriter, r *http.Request) {
	var req models.RelayPlacementRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, h.comms.RecommendRelayPlacement(req.Node1, req.Node2))
}

// SuggestRadios lists radio classes for a distance, data rate, and terrain
// given as query parameters.
func (h *Handler) SuggestRadios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	distanceKm, err := queryFloat(q.Get("distance_km"))
	if err != nil {
		h.writeError(w, "distance_km must be a number", http.StatusBadRequest)
		return
	}
	dataRateKbps, err := queryFloat(q.Get("data_rate_kbps"))
	if err != nil {
		h.writeError(w, "data_rate_kbps must be a number", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": services.SuggestRadios(distanceKm, dataRateKbps, q.Get("terrain")),
	})
}

// queryFloat parses an optional numeric query value; empty means 0.
func queryFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
