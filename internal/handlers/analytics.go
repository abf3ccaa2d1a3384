package handlers

import "net/http"

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Store.Analytics(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) Heatmap(w http.ResponseWriter, r *http.Request) {
	points, err := h.Store.Heatmap(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}
