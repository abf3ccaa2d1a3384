package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/middleware"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.DashboardStats(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetUser serves a profile to the user themselves or to an admin.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "id")
	requesterID := middleware.UserID(r.Context())

	if requesterID != targetID {
		requester, err := h.Store.GetUserByID(r.Context(), requesterID)
		if err != nil || requester.Role != models.RoleAdmin {
			respondMessage(w, http.StatusForbidden, "Not authorized to access this user data")
			return
		}
	}

	user, err := h.Store.GetUserByID(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string `json:"name"`
		Email         *string `json:"email"`
		Role          *string `json:"role"`
		IsAmbassador  *bool   `json:"isAmbassador"`
		Language      *string `json:"language"`
		Avatar        *string `json:"avatar"`
		KindnessCoins *int    `json:"kindnessCoins"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, r, err)
		return
	}

	// Admin role can never be granted through this endpoint.
	if req.Role != nil && *req.Role == models.RoleAdmin && user.Role != models.RoleAdmin {
		respondMessage(w, http.StatusForbidden, "Cannot upgrade user to admin role")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsAmbassador != nil {
		user.IsAmbassador = *req.IsAmbassador
	}
	if req.Language != nil {
		user.Language = *req.Language
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.KindnessCoins != nil {
		user.KindnessCoins = *req.KindnessCoins
	}

	if err := h.Store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			respondMessage(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, r, err)
		return
	}

	// An admin may delete their own account but not another admin's.
	if user.Role == models.RoleAdmin && user.ID != middleware.UserID(r.Context()) {
		respondMessage(w, http.StatusForbidden, "Cannot delete other admin accounts")
		return
	}

	if err := h.Store.DeleteUser(r.Context(), user.ID); err != nil {
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
		"id":      user.ID,
	})
}
