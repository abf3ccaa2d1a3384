package handlers

import (
	"net/http"
	"strconv"
)

func (h *Handler) Ambassadors(w http.ResponseWriter, r *http.Request) {
	ambassadors, err := h.Store.Ambassadors(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ambassadors)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboardType := r.URL.Query().Get("type")
	if leaderboardType == "" {
		leaderboardType = "acts"
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.Store.Leaderboard(r.Context(), leaderboardType, limit)
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
