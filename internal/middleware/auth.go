package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ahmed88lk/KindnessChain/internal/auth"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

// TokenHeader is the bearer token header the frontend sends.
const TokenHeader = "x-auth-token"

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user id stored by RequireAuth, or ""
// when the request was not authenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID is exported for handler tests that bypass the middleware.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserDirectory is the role lookup RequireAdmin needs.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

func RequireAuth(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			userID, err := auth.GetUserIDFromToken(token, jwtSecret)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func RequireAdmin(users UserDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := users.GetUserByID(r.Context(), UserID(r.Context()))
			if err != nil || user.Role != models.RoleAdmin {
				writeMessage(w, http.StatusForbidden, "Access denied. Admin role required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
