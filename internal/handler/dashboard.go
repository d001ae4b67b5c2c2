package handler

import "net/http"

// GET /v1/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboard.Counts()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}
