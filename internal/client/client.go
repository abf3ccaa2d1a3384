// Package client is a typed consumer of the KindnessChain REST API, one
// method per endpoint. There is no retry, caching or request coalescing;
// every call is a single HTTP round trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ahmed88lk/KindnessChain/internal/middleware"
	"github.com/ahmed88lk/KindnessChain/internal/models"
)

// APIError carries the status code and the server-supplied message of a
// non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken installs the bearer token used for authenticated calls. The
// session lives on the client value, not in any global state.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(middleware.TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var serverMsg struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&serverMsg); err == nil && serverMsg.Message != "" {
			apiErr.Message = serverMsg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Profile is the user payload returned by the auth endpoints.
type Profile struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Avatar           string   `json:"avatar"`
	KindnessStreak   int      `json:"kindnessStreak"`
	KindnessCoins    int      `json:"kindnessCoins"`
	Acts             int      `json:"acts"`
	IsAmbassador     bool     `json:"isAmbassador"`
	JoinedChallenges []string `json:"joinedChallenges"`
	Language         string   `json:"language"`
	Role             string   `json:"role"`
}

type AuthResult struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type Preferences struct {
	Name     *string `json:"name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Language *string `json:"language,omitempty"`
}

func (c *Client) UpdatePreferences(ctx context.Context, prefs Preferences) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPut, "/api/auth/preferences", prefs, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ListActs(ctx context.Context) ([]models.KindnessAct, error) {
	var acts []models.KindnessAct
	if err := c.do(ctx, http.MethodGet, "/api/acts", nil, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

func (c *Client) GetAct(ctx context.Context, id string) (*models.KindnessAct, error) {
	var act models.KindnessAct
	if err := c.do(ctx, http.MethodGet, "/api/acts/"+url.PathEscape(id), nil, &act); err != nil {
		return nil, err
	}
	return &act, nil
}

type CreateActRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Location    *models.Location `json:"location,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Anonymous   bool             `json:"anonymous"`
	Media       *models.Media    `json:"media,omitempty"`
}

func (c *Client) CreateAct(ctx context.Context, req CreateActRequest) (*models.KindnessAct, error) {
	var act models.KindnessAct
	if err := c.do(ctx, http.MethodPost, "/api/acts", req, &act); err != nil {
		return nil, err
	}
	return &act, nil
}

type ReactResult struct {
	Success   bool             `json:"success"`
	Reactions models.Reactions `json:"reactions"`
}

func (c *Client) ReactToAct(ctx context.Context, id, reactionType string) (*ReactResult, error) {
	var result ReactResult
	err := c.do(ctx, http.MethodPost, "/api/acts/"+url.PathEscape(id)+"/react",
		map[string]string{"reactionType": reactionType}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := c.do(ctx, http.MethodGet, "/api/challenges", nil, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (c *Client) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := c.do(ctx, http.MethodGet, "/api/challenges/"+url.PathEscape(id), nil, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

type JoinResult struct {
	Success   bool             `json:"success"`
	Challenge models.Challenge `json:"challenge"`
}

func (c *Client) JoinChallenge(ctx context.Context, id string) (*JoinResult, error) {
	var result JoinResult
	err := c.do(ctx, http.MethodPost, "/api/challenges/"+url.PathEscape(id)+"/join", nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Ambassadors(ctx context.Context) ([]models.Ambassador, error) {
	var ambassadors []models.Ambassador
	if err := c.do(ctx, http.MethodGet, "/api/community/ambassadors", nil, &ambassadors); err != nil {
		return nil, err
	}
	return ambassadors, nil
}

func (c *Client) Leaderboard(ctx context.Context, leaderboardType string, limit int) ([]models.LeaderboardEntry, error) {
	path := "/api/community/leaderboard?type=" + url.QueryEscape(leaderboardType) +
		"&limit=" + strconv.Itoa(limit)
	var entries []models.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) Analytics(ctx context.Context) (*models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary
	if err := c.do(ctx, http.MethodGet, "/api/analytics", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) Heatmap(ctx context.Context) ([]models.HeatmapPoint, error) {
	var points []models.HeatmapPoint
	if err := c.do(ctx, http.MethodGet, "/api/analytics/heatmap", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) Suggestions(ctx context.Context, language string) ([]string, error) {
	var suggestions []string
	path := "/api/suggestions?language=" + url.QueryEscape(language)
	if err := c.do(ctx, http.MethodGet, path, nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
