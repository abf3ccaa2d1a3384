package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ahmed88lk/KindnessChain/internal/auth"
	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/metrics"
	"github.com/ahmed88lk/KindnessChain/internal/middleware"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

// userProfile is the user payload the auth endpoints return. It never
// carries the password hash and always carries the joined challenge ids.
type userProfile struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Avatar           string   `json:"avatar"`
	KindnessStreak   int      `json:"kindnessStreak"`
	KindnessCoins    int      `json:"kindnessCoins"`
	Acts             int      `json:"acts"`
	IsAmbassador     bool     `json:"isAmbassador"`
	JoinedChallenges []string `json:"joinedChallenges"`
	Language         string   `json:"language"`
	Role             string   `json:"role"`
}

func profileOf(u *models.User, joined []string) userProfile {
	if joined == nil {
		joined = []string{}
	}
	return userProfile{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Avatar:           u.Avatar,
		KindnessStreak:   u.KindnessStreak,
		KindnessCoins:    u.KindnessCoins,
		Acts:             u.Acts,
		IsAmbassador:     u.IsAmbassador,
		JoinedChallenges: joined,
		Language:         u.Language,
		Role:             u.Role,
	}
}

type authResponse struct {
	User  userProfile `json:"user"`
	Token string      `json:"token"`
}

func defaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(w, r, err)
		return
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hash,
		Avatar:        defaultAvatar(req.Name),
		KindnessCoins: h.StartingCoins,
		Language:      "fr",
		Role:          models.RoleUser,
	}

	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			respondMessage(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		serverError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.JWTSecret, h.JWTExpire)
	if err != nil {
		serverError(w, r, err)
		return
	}

	metrics.Registrations.Inc()
	respondJSON(w, http.StatusCreated, authResponse{User: profileOf(user, nil), Token: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// Same message for unknown email and wrong password, so the endpoint
	// cannot be used to probe which emails are registered.
	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		serverError(w, r, err)
		return
	}
	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.JWTSecret, h.JWTExpire)
	if err != nil {
		serverError(w, r, err)
		return
	}

	if err := h.Store.TouchLastLogin(r.Context(), user.ID); err != nil {
		log.WithError(err).Warn("failed to record last login")
	}

	joined, err := h.Store.JoinedChallengeIDs(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{User: profileOf(user, joined), Token: token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, r, err)
		return
	}

	joined, err := h.Store.JoinedChallengeIDs(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, profileOf(user, joined))
}

// UpdatePreferences changes the self-service profile fields only.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Avatar   *string `json:"avatar"`
		Language *string `json:"language"`
	}
	if !decodeBody(w, r, &req) {
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

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Language != nil {
		user.Language = *req.Language
	}

	if err := h.Store.UpdateUser(r.Context(), user); err != nil {
		serverError(w, r, err)
		return
	}

	joined, err := h.Store.JoinedChallengeIDs(r.Context(), user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, profileOf(user, joined))
}
