// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports service status, comms cache size, and registry counts

package handlers

import "net/http"

// Health returns API health status with cache and registry counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cacheEntries := 0
	if h.commsCache != nil {
		cacheEntries = h.commsCache.Len()
	}

	h.registryMutex.RLock()
	designs, plans := len(h.designs), len(h.plans)
	h.registryMutex.RUnlock()

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cache": map[string]any{
			"enabled":       h.commsCache != nil,
			"comms_entries": cacheEntries,
		},
		"registry": map[string]int{
			"designs": designs,
			"plans":   plans,
		},
	})
}
