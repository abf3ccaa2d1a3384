package models

import "time"

type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Avatar         string     `json:"avatar"`
	KindnessStreak int        `json:"kindnessStreak"`
	KindnessCoins  int        `json:"kindnessCoins"`
	Acts           int        `json:"acts"`
	IsAmbassador   bool       `json:"isAmbassador"`
	Language       string     `json:"language"`
	Role           string     `json:"role"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	LastActAt      *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Roles stored on a user.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type Reactions struct {
	Hearts   int `json:"hearts"`
	Inspired int `json:"inspired"`
	Thanks   int `json:"thanks"`
}

func (r Reactions) Total() int {
	return r.Hearts + r.Inspired + r.Thanks
}

// ActAuthor is the public slice of a user attached to a non-anonymous act.
type ActAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type KindnessAct struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    *Location  `json:"location"`
	Date        time.Time  `json:"date"`
	Media       *Media     `json:"media"`
	Tags        []string   `json:"tags"`
	Anonymous   bool       `json:"anonymous"`
	Reactions   Reactions  `json:"reactions"`
	UserID      *string    `json:"userId,omitempty"`
	Author      *ActAuthor `json:"author,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Challenge struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Difficulty      string    `json:"difficulty"`
	Points          int       `json:"points"`
	Participants    int       `json:"participants"`
	Deadline        time.Time `json:"deadline"`
	IsTeamChallenge bool      `json:"isTeamChallenge"`
	Image           string    `json:"image,omitempty"`
	Expired         bool      `json:"expired"`
	CreatedAt       time.Time `json:"createdAt"`
}

type UserChallenge struct {
	ID          int       `json:"id"`
	UserID      string    `json:"userId"`
	ChallengeID string    `json:"challengeId"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type Ambassador struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Acts     int    `json:"acts"`
	Location string `json:"location,omitempty"`
}

type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type RoleCounts struct {
	Admin     int `json:"admin"`
	Moderator int `json:"moderator"`
	User      int `json:"user"`
}

type DashboardStats struct {
	TotalUsers     int             `json:"totalUsers"`
	TotalActs      int             `json:"totalActs"`
	UsersByRole    RoleCounts      `json:"usersByRole"`
	ActsByCategory []CategoryCount `json:"actsByCategory"`
	RecentUsers    []User          `json:"recentUsers"`
	RecentActs     []KindnessAct   `json:"recentActs"`
}

type TopChallenge struct {
	Name         string `json:"name"`
	Participants int    `json:"participants"`
}

type ImpactEstimates struct {
	TreesPlanted     int `json:"treesPlanted"`
	MealsProvided    int `json:"mealsProvided"`
	HoursVolunteered int `json:"hoursVolunteered"`
	MoneyDonated     int `json:"moneyDonated"`
}

type AnalyticsSummary struct {
	TotalActs       int             `json:"totalActs"`
	TotalUsers      int             `json:"totalUsers"`
	TotalChallenges int             `json:"totalChallenges"`
	TotalCountries  int             `json:"totalCountries"`
	ActsByCategory  []CategoryCount `json:"actsByCategory"`
	TopChallenges   []TopChallenge  `json:"topChallenges"`
	ImpactEstimates ImpactEstimates `json:"impactEstimates"`
	RecentActivity  []KindnessAct   `json:"recentActivity"`
}

type HeatmapPoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight int     `json:"weight"`
}
