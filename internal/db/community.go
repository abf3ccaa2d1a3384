package db

import (
	"context"
	"fmt"

	"github.com/ahmed88lk/KindnessChain/internal/models"
)

// Ambassadors returns the flagged users ordered by act count. The location
// shown is the name from the user's most recent located act.
func (db *Database) Ambassadors(ctx context.Context) ([]models.Ambassador, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT u.id, u.name, u.avatar, u.acts,
		        COALESCE((SELECT a.location->>'name'
		                  FROM kindness_acts a
		                  WHERE a.user_id = u.id AND a.location IS NOT NULL
		                  ORDER BY a.created_at DESC
		                  LIMIT 1), '') AS location
		 FROM users u
		 WHERE u.is_ambassador
		 ORDER BY u.acts DESC
		 LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ambassadors := []models.Ambassador{}
	for rows.Next() {
		var a models.Ambassador
		if err := rows.Scan(&a.ID, &a.Name, &a.Avatar, &a.Acts, &a.Location); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ambassadors = append(ambassadors, a)
	}
	return ambassadors, rows.Err()
}

// Leaderboard ranks users by act count or coin balance.
func (db *Database) Leaderboard(ctx context.Context, leaderboardType string, limit int) ([]models.LeaderboardEntry, error) {
	orderField := "acts"
	if leaderboardType == "coins" {
		orderField = "kindness_coins"
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, avatar, `+orderField+`
		 FROM users
		 ORDER BY `+orderField+` DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Avatar, &e.Score); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
