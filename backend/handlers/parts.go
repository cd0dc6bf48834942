// ABOUTME: HTTP handler for parts catalogue CSV import
// ABOUTME: Validates each row and reports accepted and rejected parts

package handlers

import (
	"errors"
	"net/http"

	"github.com/uxsforge/mission-planner/backend/models"
	"github.com/uxsforge/mission-planner/backend/services"
)

// ImportParts parses a CSV body for the category named in ?category=.
func (h *Handler) ImportParts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if !services.IsPartCategory(category) {
		h.writeError(w, "Unknown part category: "+category, http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	result, err := services.ParsePartsCSV(body, models.PartCategory(category))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return
		}
		h.writeErrorWithDetails(w, "Invalid CSV", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
