// Package handlers implements the REST surface. Handlers talk to storage
// through the Store interface so they can be exercised in tests without a
// database.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ahmed88lk/KindnessChain/internal/ai"
	"github.com/ahmed88lk/KindnessChain/internal/config"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

// Store is the persistence surface the handlers need. *db.Database
// implements it.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string) error
	JoinedChallengeIDs(ctx context.Context, userID string) ([]string, error)

	CreateAct(ctx context.Context, act *models.KindnessAct, creatorID string, rewardCoins int) error
	ListActs(ctx context.Context) ([]models.KindnessAct, error)
	GetActByID(ctx context.Context, id string) (*models.KindnessAct, error)
	AddReaction(ctx context.Context, actID, reactionType string) (*models.Reactions, error)

	ListChallenges(ctx context.Context) ([]models.Challenge, error)
	GetChallengeByID(ctx context.Context, id string) (*models.Challenge, error)
	JoinChallenge(ctx context.Context, userID, challengeID string, bonusCoins int) (*models.Challenge, error)

	Ambassadors(ctx context.Context) ([]models.Ambassador, error)
	Leaderboard(ctx context.Context, leaderboardType string, limit int) ([]models.LeaderboardEntry, error)
	Analytics(ctx context.Context) (*models.AnalyticsSummary, error)
	Heatmap(ctx context.Context) ([]models.HeatmapPoint, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type Handler struct {
	Store Store
	AI    *ai.Client

	JWTSecret []byte
	JWTExpire time.Duration

	StartingCoins  int
	ActRewardCoins int
	JoinBonusCoins int
}

func New(store Store, aiClient *ai.Client, cfg *config.Config) *Handler {
	return &Handler{
		Store:          store,
		AI:             aiClient,
		JWTSecret:      []byte(cfg.JWTSecret),
		JWTExpire:      cfg.JWTExpire,
		StartingCoins:  cfg.StartingCoins,
		ActRewardCoins: cfg.ActRewardCoins,
		JoinBonusCoins: cfg.JoinBonusCoins,
	}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "API is running"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// serverError hides internals from the caller and logs the real cause.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	respondMessage(w, http.StatusInternalServerError, "Server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
