package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/metrics"
	"github.com/ahmed88lk/KindnessChain/internal/middleware"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

func (h *Handler) ListActs(w http.ResponseWriter, r *http.Request) {
	acts, err := h.Store.ListActs(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, acts)
}

func (h *Handler) GetAct(w http.ResponseWriter, r *http.Request) {
	act, err := h.Store.GetActByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Act not found")
			return
		}
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, act)
}

func (h *Handler) CreateAct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string           `json:"title"`
		Description string           `json:"description"`
		Category    string           `json:"category"`
		Location    *models.Location `json:"location"`
		Tags        []string         `json:"tags"`
		Anonymous   bool             `json:"anonymous"`
		Media       *models.Media    `json:"media"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Title == "" || req.Description == "" || req.Category == "" {
		respondMessage(w, http.StatusBadRequest, "Title, description, and category are required")
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

	act := &models.KindnessAct{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Date:        time.Now().UTC(),
		Media:       req.Media,
		Tags:        req.Tags,
		Anonymous:   req.Anonymous,
	}
	if !req.Anonymous {
		act.UserID = &user.ID
	}

	if err := h.Store.CreateAct(r.Context(), act, user.ID, h.ActRewardCoins); err != nil {
		serverError(w, r, err)
		return
	}

	if !act.Anonymous {
		act.Author = &models.ActAuthor{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}

	metrics.ActsCreated.Inc()
	respondJSON(w, http.StatusCreated, act)
}

var validReactions = map[string]bool{
	"hearts":   true,
	"inspired": true,
	"thanks":   true,
}

func (h *Handler) ReactToAct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReactionType string `json:"reactionType"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if !validReactions[req.ReactionType] {
		respondMessage(w, http.StatusBadRequest, "Invalid reaction type")
		return
	}

	reactions, err := h.Store.AddReaction(r.Context(), chi.URLParam(r, "id"), req.ReactionType)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Act not found")
			return
		}
		serverError(w, r, err)
		return
	}

	metrics.Reactions.WithLabelValues(req.ReactionType).Inc()
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "reactions": reactions})
}
