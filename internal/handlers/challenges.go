package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/metrics"
	"github.com/ahmed88lk/KindnessChain/internal/middleware"
)

func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.Store.ListChallenges(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, challenges)
}

func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.Store.GetChallengeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Challenge not found")
			return
		}
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, challenge)
}

func (h *Handler) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.Store.GetChallengeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Challenge not found")
			return
		}
		serverError(w, r, err)
		return
	}
	if challenge.Expired {
		respondMessage(w, http.StatusBadRequest, "Challenge has expired")
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, r, err)
		return
	}

	joined, err := h.Store.JoinChallenge(r.Context(), user.ID, challenge.ID, h.JoinBonusCoins)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyJoined) {
			respondMessage(w, http.StatusBadRequest, "User has already joined this challenge")
			return
		}
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Challenge not found")
			return
		}
		serverError(w, r, err)
		return
	}

	metrics.ChallengeJoins.Inc()
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "challenge": joined})
}
