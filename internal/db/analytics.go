package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/ahmed88lk/KindnessChain/internal/models"
)

func (db *Database) actsByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT category, COUNT(*) FROM kindness_acts GROUP BY category ORDER BY COUNT(*) DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Analytics aggregates the public community statistics.
func (db *Database) Analytics(ctx context.Context) (*models.AnalyticsSummary, error) {
	var s models.AnalyticsSummary

	err := db.Pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM kindness_acts),
		        (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM challenges),
		        (SELECT COUNT(DISTINCT location->>'name') FROM kindness_acts WHERE location IS NOT NULL)`,
	).Scan(&s.TotalActs, &s.TotalUsers, &s.TotalChallenges, &s.TotalCountries)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if s.ActsByCategory, err = db.actsByCategory(ctx); err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT title, participants FROM challenges ORDER BY participants DESC LIMIT 3`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	s.TopChallenges = []models.TopChallenge{}
	for rows.Next() {
		var tc models.TopChallenge
		if err := rows.Scan(&tc.Name, &tc.Participants); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.TopChallenges = append(s.TopChallenges, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.ImpactEstimates = estimateImpact(s.ActsByCategory)

	if s.RecentActivity, err = db.RecentActs(ctx, 5); err != nil {
		return nil, err
	}

	return &s, nil
}

// estimateImpact converts category counts into the rough community impact
// numbers shown on the dashboard. The multipliers come straight from the
// product's original estimates.
func estimateImpact(categories []models.CategoryCount) models.ImpactEstimates {
	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Category] = c.Count
	}
	environmental := counts["Environmental"]
	donation := counts["Donation"]
	volunteering := counts["Volunteering"]

	return models.ImpactEstimates{
		TreesPlanted:     int(math.Floor(float64(environmental) * 2.5)),
		MealsProvided:    donation * 4,
		HoursVolunteered: volunteering * 3,
		MoneyDonated:     (donation + environmental) * 15,
	}
}

// Heatmap returns one weighted point per located act. Weight grows with the
// act's reaction total and is capped so a single viral act cannot wash out
// the map.
func (db *Database) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT location, reaction_hearts + reaction_inspired + reaction_thanks
		 FROM kindness_acts
		 WHERE location IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	points := []models.HeatmapPoint{}
	for rows.Next() {
		var (
			locationJSON []byte
			reactions    int
		)
		if err := rows.Scan(&locationJSON, &reactions); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		var loc models.Location
		if err := json.Unmarshal(locationJSON, &loc); err != nil {
			continue
		}
		if loc.Lat == 0 && loc.Lng == 0 {
			continue
		}

		weight := 30 + reactions
		if weight > 80 {
			weight = 80
		}
		points = append(points, models.HeatmapPoint{Lat: loc.Lat, Lng: loc.Lng, Weight: weight})
	}
	return points, rows.Err()
}

// DashboardStats aggregates the admin dashboard numbers.
func (db *Database) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats

	err := db.Pool.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM users), (SELECT COUNT(*) FROM kindness_acts)`,
	).Scan(&s.TotalUsers, &s.TotalActs)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			role  string
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		switch role {
		case models.RoleAdmin:
			s.UsersByRole.Admin = count
		case models.RoleModerator:
			s.UsersByRole.Moderator = count
		default:
			s.UsersByRole.User = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if s.ActsByCategory, err = db.actsByCategory(ctx); err != nil {
		return nil, err
	}

	users, err := db.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) > 5 {
		users = users[:5]
	}
	s.RecentUsers = users

	if s.RecentActs, err = db.RecentActs(ctx, 5); err != nil {
		return nil, err
	}

	return &s, nil
}
