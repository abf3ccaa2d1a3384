package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ahmed88lk/KindnessChain/internal/ai"
	"github.com/ahmed88lk/KindnessChain/internal/config"
	"github.com/ahmed88lk/KindnessChain/internal/db"
	"github.com/ahmed88lk/KindnessChain/internal/handlers"
	"github.com/ahmed88lk/KindnessChain/internal/jobs"
	"github.com/ahmed88lk/KindnessChain/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.JSONFormatter{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	h := handlers.New(database, ai.NewClient(cfg.GeminiAPIKey), cfg)
	jwtSecret := []byte(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-auth-token")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/api/status", h.Status)
	r.Get("/api/suggestions", h.Suggestions)
	r.Handle("/metrics", promhttp.Handler())

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
			r.Use(middleware.RequireAdmin(database))
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

	scheduler := jobs.NewScheduler(database)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
