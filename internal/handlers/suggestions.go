package handlers

import "net/http"

// Suggestions serves short AI-generated kindness ideas, falling back to a
// static list when the generative API is unavailable.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = "en"
	}

	respondJSON(w, http.StatusOK, h.AI.SuggestActs(r.Context(), language))
}
