package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ahmed88lk/KindnessChain/internal/models"
)

const actColumns = `a.id, a.title, a.description, a.category, a.location,
	a.date, a.media, a.tags, a.anonymous, a.reaction_hearts,
	a.reaction_inspired, a.reaction_thanks, a.user_id, a.created_at,
	u.name, u.avatar`

func scanAct(row pgx.Row) (*models.KindnessAct, error) {
	var (
		a                         models.KindnessAct
		locationJSON, mediaJSON   []byte
		tagsJSON                  []byte
		authorName, authorAvatar  *string
	)

	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Category, &locationJSON,
		&a.Date, &mediaJSON, &tagsJSON, &a.Anonymous, &a.Reactions.Hearts,
		&a.Reactions.Inspired, &a.Reactions.Thanks, &a.UserID, &a.CreatedAt,
		&authorName, &authorAvatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if locationJSON != nil {
		var loc models.Location
		if err := json.Unmarshal(locationJSON, &loc); err == nil {
			a.Location = &loc
		}
	}
	if mediaJSON != nil {
		var media models.Media
		if err := json.Unmarshal(mediaJSON, &media); err == nil {
			a.Media = &media
		}
	}
	a.Tags = []string{}
	if tagsJSON != nil {
		if err := json.Unmarshal(tagsJSON, &a.Tags); err != nil {
			a.Tags = []string{}
		}
	}

	// Anonymous acts never expose owner information.
	if a.Anonymous {
		a.UserID = nil
	} else if a.UserID != nil && authorName != nil {
		avatar := ""
		if authorAvatar != nil {
			avatar = *authorAvatar
		}
		a.Author = &models.ActAuthor{ID: *a.UserID, Name: *authorName, Avatar: avatar}
	}

	return &a, nil
}

// CreateAct inserts the act and updates the creator's counters in one
// transaction. The creator is rewarded even for anonymous acts; only the
// act row drops the owner reference.
func (db *Database) CreateAct(ctx context.Context, act *models.KindnessAct, creatorID string, rewardCoins int) error {
	locationJSON, err := marshalNullable(act.Location)
	if err != nil {
		return err
	}
	mediaJSON, err := marshalNullable(act.Media)
	if err != nil {
		return err
	}
	if act.Tags == nil {
		act.Tags = []string{}
	}
	tagsJSON, err := json.Marshal(act.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO kindness_acts (id, title, description, category, location, date, media, tags, anonymous, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		act.ID, act.Title, act.Description, act.Category, locationJSON,
		act.Date, mediaJSON, tagsJSON, act.Anonymous, act.UserID,
	).Scan(&act.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users
		 SET acts = acts + 1, kindness_coins = kindness_coins + $2,
		     kindness_streak = kindness_streak + 1, last_act_at = now(),
		     updated_at = now()
		 WHERE id = $1`,
		creatorID, rewardCoins)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (db *Database) ListActs(ctx context.Context) ([]models.KindnessAct, error) {
	return db.queryActs(ctx, 0)
}

// RecentActs returns the newest acts, used by dashboards and analytics.
func (db *Database) RecentActs(ctx context.Context, limit int) ([]models.KindnessAct, error) {
	return db.queryActs(ctx, limit)
}

func (db *Database) queryActs(ctx context.Context, limit int) ([]models.KindnessAct, error) {
	query := `SELECT ` + actColumns + `
		 FROM kindness_acts a
		 LEFT JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	acts := []models.KindnessAct{}
	for rows.Next() {
		a, err := scanAct(rows)
		if err != nil {
			return nil, err
		}
		acts = append(acts, *a)
	}
	return acts, rows.Err()
}

func (db *Database) GetActByID(ctx context.Context, id string) (*models.KindnessAct, error) {
	return scanAct(db.Pool.QueryRow(ctx,
		`SELECT `+actColumns+`
		 FROM kindness_acts a
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE a.id = $1`, id))
}

// AddReaction bumps one reaction counter with a single UPDATE so concurrent
// reactions to the same act cannot undercount each other.
func (db *Database) AddReaction(ctx context.Context, actID, reactionType string) (*models.Reactions, error) {
	var column string
	switch reactionType {
	case "hearts":
		column = "reaction_hearts"
	case "inspired":
		column = "reaction_inspired"
	case "thanks":
		column = "reaction_thanks"
	default:
		return nil, fmt.Errorf("unknown reaction type %q", reactionType)
	}

	var r models.Reactions
	err := db.Pool.QueryRow(ctx,
		`UPDATE kindness_acts SET `+column+` = `+column+` + 1
		 WHERE id = $1
		 RETURNING reaction_hearts, reaction_inspired, reaction_thanks`,
		actID,
	).Scan(&r.Hearts, &r.Inspired, &r.Thanks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &r, nil
}

func marshalNullable(v any) ([]byte, error) {
	switch val := v.(type) {
	case *models.Location:
		if val == nil {
			return nil, nil
		}
	case *models.Media:
		if val == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json field: %w", err)
	}
	return data, nil
}
