package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ahmed88lk/KindnessChain/internal/models"
)

const challengeColumns = `id, title, description, category, difficulty, points,
	participants, deadline, is_team_challenge, image, expired, created_at`

func scanChallenge(row pgx.Row) (*models.Challenge, error) {
	var (
		c     models.Challenge
		image *string
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Difficulty,
		&c.Points, &c.Participants, &c.Deadline, &c.IsTeamChallenge, &image,
		&c.Expired, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if image != nil {
		c.Image = *image
	}
	return &c, nil
}

func (db *Database) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+challengeColumns+` FROM challenges ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

func (db *Database) GetChallengeByID(ctx context.Context, id string) (*models.Challenge, error) {
	return scanChallenge(db.Pool.QueryRow(ctx,
		`SELECT `+challengeColumns+` FROM challenges WHERE id = $1`, id))
}

// JoinChallenge records the join, awards the coin bonus and bumps the
// participant counter as one atomic unit. The unique constraint on
// (user_id, challenge_id) is the single source of truth for duplicate
// joins, so concurrent requests cannot both succeed.
func (db *Database) JoinChallenge(ctx context.Context, userID, challengeID string, bonusCoins int) (*models.Challenge, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO user_challenges (user_id, challenge_id) VALUES ($1, $2)`,
		userID, challengeID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET kindness_coins = kindness_coins + $2, updated_at = now() WHERE id = $1`,
		userID, bonusCoins)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	challenge, err := scanChallenge(tx.QueryRow(ctx,
		`UPDATE challenges SET participants = participants + 1
		 WHERE id = $1
		 RETURNING `+challengeColumns, challengeID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return challenge, nil
}

// MarkExpiredChallenges flags challenges whose deadline has passed.
// Run by the hourly cron job.
func (db *Database) MarkExpiredChallenges(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE challenges SET expired = TRUE WHERE NOT expired AND deadline < now()`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return tag.RowsAffected(), nil
}
