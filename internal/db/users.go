package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ahmed88lk/KindnessChain/internal/models"
)

const userColumns = `id, name, email, password_hash, avatar, kindness_streak,
	kindness_coins, acts, is_ambassador, language, role, last_login,
	last_act_at, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar,
		&u.KindnessStreak, &u.KindnessCoins, &u.Acts, &u.IsAmbassador,
		&u.Language, &u.Role, &u.LastLogin, &u.LastActAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &u, nil
}

// CreateUser persists a new user. The caller supplies the id, the hashed
// password and the starting coin balance.
func (db *Database) CreateUser(ctx context.Context, u *models.User) error {
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, avatar, kindness_coins, language, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, u.KindnessCoins, u.Language, u.Role,
	).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (db *Database) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (db *Database) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser writes back the mutable profile fields.
func (db *Database) UpdateUser(ctx context.Context, u *models.User) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users
		 SET name = $2, email = $3, avatar = $4, language = $5, role = $6,
		     is_ambassador = $7, kindness_coins = $8, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Avatar, u.Language, u.Role, u.IsAmbassador, u.KindnessCoins)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the account. Acts keep their rows with user_id nulled
// by the foreign key, so the feed survives account deletion.
func (db *Database) DeleteUser(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Database) TouchLastLogin(ctx context.Context, id string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (db *Database) JoinedChallengeIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT challenge_id FROM user_challenges WHERE user_id = $1 ORDER BY joined_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ResetStaleStreaks zeroes the streak of every user whose latest act is
// older than the start of the previous day. Run by the daily cron job.
func (db *Database) ResetStaleStreaks(ctx context.Context) (int64, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET kindness_streak = 0
		 WHERE kindness_streak > 0
		   AND (last_act_at IS NULL OR last_act_at < date_trunc('day', now()) - interval '1 day')`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return tag.RowsAffected(), nil
}
