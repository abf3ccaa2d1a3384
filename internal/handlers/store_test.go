package handlers_test

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ahmed88lk/KindnessChain/internal/ai"
	"github.com/ahmed88lk/KindnessChain/internal/config"
	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/handlers"
	"github.com/ahmed88lk/KindnessChain/internal/middleware"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

const testJWTSecret = "handler-test-secret"

// fakeStore is an in-memory handlers.Store. It mirrors the database
// semantics the handlers rely on: duplicate emails and duplicate joins
// surface as the same sentinel errors the real store returns.
type fakeStore struct {
	mu         sync.Mutex
	users      []*models.User
	acts       []*models.KindnessAct
	challenges []*models.Challenge
	joins      map[string]map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{joins: map[string]map[string]bool{}}
}

func (s *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return db.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now().UTC()
	clone := *u
	s.users = append(s.users, &clone)
	return nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUser(id)
	if u == nil {
		return nil, db.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *fakeStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (s *fakeStore) UpdateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return db.ErrEmailTaken
		}
	}
	existing := s.findUser(u.ID)
	if existing == nil {
		return db.ErrNotFound
	}
	*existing = *u
	return nil
}

func (s *fakeStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (s *fakeStore) TouchLastLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.findUser(id); u != nil {
		now := time.Now().UTC()
		u.LastLogin = &now
	}
	return nil
}

func (s *fakeStore) JoinedChallengeIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for id := range s.joins[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeStore) CreateAct(_ context.Context, act *models.KindnessAct, creatorID string, rewardCoins int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creator := s.findUser(creatorID)
	if creator == nil {
		return db.ErrNotFound
	}

	act.CreatedAt = time.Now().UTC()
	if act.Tags == nil {
		act.Tags = []string{}
	}
	clone := *act
	s.acts = append(s.acts, &clone)

	now := time.Now().UTC()
	creator.Acts++
	creator.KindnessCoins += rewardCoins
	creator.KindnessStreak++
	creator.LastActAt = &now
	return nil
}

func (s *fakeStore) ListActs(_ context.Context) ([]models.KindnessAct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acts := make([]models.KindnessAct, 0, len(s.acts))
	for i := len(s.acts) - 1; i >= 0; i-- {
		acts = append(acts, s.withAuthor(s.acts[i]))
	}
	return acts, nil
}

func (s *fakeStore) GetActByID(_ context.Context, id string) (*models.KindnessAct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, act := range s.acts {
		if act.ID == id {
			clone := s.withAuthor(act)
			return &clone, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) withAuthor(act *models.KindnessAct) models.KindnessAct {
	clone := *act
	if clone.Anonymous {
		clone.UserID = nil
		return clone
	}
	if clone.UserID != nil {
		if u := s.findUser(*clone.UserID); u != nil {
			clone.Author = &models.ActAuthor{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
		}
	}
	return clone
}

func (s *fakeStore) AddReaction(_ context.Context, actID, reactionType string) (*models.Reactions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, act := range s.acts {
		if act.ID != actID {
			continue
		}
		switch reactionType {
		case "hearts":
			act.Reactions.Hearts++
		case "inspired":
			act.Reactions.Inspired++
		case "thanks":
			act.Reactions.Thanks++
		}
		r := act.Reactions
		return &r, nil
	}
	return nil, db.ErrNotFound
}

func (s *fakeStore) ListChallenges(_ context.Context) ([]models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenges := make([]models.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		challenges = append(challenges, *c)
	}
	return challenges, nil
}

func (s *fakeStore) GetChallengeByID(_ context.Context, id string) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findChallenge(id)
	if c == nil {
		return nil, db.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *fakeStore) JoinChallenge(_ context.Context, userID, challengeID string, bonusCoins int) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findChallenge(challengeID)
	if c == nil {
		return nil, db.ErrNotFound
	}
	if s.joins[userID][challengeID] {
		return nil, db.ErrAlreadyJoined
	}
	if s.joins[userID] == nil {
		s.joins[userID] = map[string]bool{}
	}
	s.joins[userID][challengeID] = true

	if u := s.findUser(userID); u != nil {
		u.KindnessCoins += bonusCoins
	}
	c.Participants++
	clone := *c
	return &clone, nil
}

func (s *fakeStore) Ambassadors(_ context.Context) ([]models.Ambassador, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ambassadors := []models.Ambassador{}
	for _, u := range s.users {
		if u.IsAmbassador {
			ambassadors = append(ambassadors, models.Ambassador{
				ID: u.ID, Name: u.Name, Avatar: u.Avatar, Acts: u.Acts,
			})
		}
	}
	return ambassadors, nil
}

func (s *fakeStore) Leaderboard(_ context.Context, leaderboardType string, limit int) ([]models.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := []models.LeaderboardEntry{}
	for _, u := range s.users {
		score := u.Acts
		if leaderboardType == "coins" {
			score = u.KindnessCoins
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID: u.ID, Name: u.Name, Avatar: u.Avatar, Score: score,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *fakeStore) Analytics(_ context.Context) (*models.AnalyticsSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.AnalyticsSummary{
		TotalActs:       len(s.acts),
		TotalUsers:      len(s.users),
		TotalChallenges: len(s.challenges),
		ActsByCategory:  []models.CategoryCount{},
		TopChallenges:   []models.TopChallenge{},
		RecentActivity:  []models.KindnessAct{},
	}, nil
}

func (s *fakeStore) Heatmap(_ context.Context) ([]models.HeatmapPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	points := []models.HeatmapPoint{}
	for _, act := range s.acts {
		if act.Location == nil || (act.Location.Lat == 0 && act.Location.Lng == 0) {
			continue
		}
		weight := 30 + act.Reactions.Total()
		if weight > 80 {
			weight = 80
		}
		points = append(points, models.HeatmapPoint{Lat: act.Location.Lat, Lng: act.Location.Lng, Weight: weight})
	}
	return points, nil
}

func (s *fakeStore) DashboardStats(_ context.Context) (*models.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.DashboardStats{
		TotalUsers:     len(s.users),
		TotalActs:      len(s.acts),
		ActsByCategory: []models.CategoryCount{},
		RecentUsers:    []models.User{},
		RecentActs:     []models.KindnessAct{},
	}
	for _, u := range s.users {
		switch u.Role {
		case models.RoleAdmin:
			stats.UsersByRole.Admin++
		case models.RoleModerator:
			stats.UsersByRole.Moderator++
		default:
			stats.UsersByRole.User++
		}
	}
	return stats, nil
}

func (s *fakeStore) findUser(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *fakeStore) findChallenge(id string) *models.Challenge {
	for _, c := range s.challenges {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// newTestServer wires the handlers into the same route tree the server
// binary uses, backed by the fake store.
func newTestServer(store *fakeStore) http.Handler {
	cfg := &config.Config{
		JWTSecret:      testJWTSecret,
		JWTExpire:      time.Hour,
		StartingCoins:  50,
		ActRewardCoins: 10,
		JoinBonusCoins: 5,
	}
	h := handlers.New(store, ai.NewClient(""), cfg)
	jwtSecret := []byte(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Get("/api/status", h.Status)
	r.Get("/api/suggestions", h.Suggestions)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))
			r.Get("/me", h.Me)
			r.Put("/preferences", h.UpdatePreferences)
		})
	})

	r.Route("/api/acts", func(r chi.Router) {
		r.Get("/", h.ListActs)
		r.Get("/{id}", h.GetAct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))
			r.Post("/", h.CreateAct)
			r.Post("/{id}/react", h.ReactToAct)
		})
	})

	r.Route("/api/challenges", func(r chi.Router) {
		r.Get("/", h.ListChallenges)
		r.Get("/{id}", h.GetChallenge)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))
			r.Post("/{id}/join", h.JoinChallenge)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.Get("/{id}", h.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(store))
			r.Get("/", h.ListUsers)
			r.Get("/dashboard-stats", h.DashboardStats)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/", h.Analytics)
		r.Get("/heatmap", h.Heatmap)
	})

	r.Route("/api/community", func(r chi.Router) {
		r.Get("/ambassadors", h.Ambassadors)
		r.Get("/leaderboard", h.Leaderboard)
	})

	return r
}
