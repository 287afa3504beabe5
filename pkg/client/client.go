package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mindly-app/duel-engine/internal/models"
)

// Client is a Go SDK for the duel-engine API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new duel-engine client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateDuelRequest mirrors the API's duel creation payload
type CreateDuelRequest struct {
	UserID     string `json:"user_id"`
	Subject    string `json:"subject"`
	Difficulty string `json:"difficulty,omitempty"`
	Opponent   string `json:"opponent,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// CreateDuel starts a new duel
func (c *Client) CreateDuel(ctx context.Context, req CreateDuelRequest) (*models.DuelView, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var duel models.DuelView
	if err := c.call(ctx, http.MethodPost, "/api/v1/duels", bytes.NewReader(body), &duel); err != nil {
		return nil, err
	}
	return &duel, nil
}

// GetDuel retrieves a duel by ID
func (c *Client) GetDuel(ctx context.Context, id string) (*models.DuelView, error) {
	var duel models.DuelView
	if err := c.call(ctx, http.MethodGet, "/api/v1/duels/"+url.PathEscape(id), nil, &duel); err != nil {
		return nil, err
	}
	return &duel, nil
}

// SubmitAnswer answers the duel's current question
func (c *Client) SubmitAnswer(ctx context.Context, id, answer string) (*models.AnswerResponse, error) {
	body, err := json.Marshal(models.AnswerRequest{Answer: answer})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp models.AnswerResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/duels/"+url.PathEscape(id)+"/answers", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AbandonDuel discards a duel
func (c *Client) AbandonDuel(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/v1/duels/"+url.PathEscape(id), nil, nil)
}

// ListDuels retrieves live duels, optionally filtered by user
func (c *Client) ListDuels(ctx context.Context, userID string) ([]*models.DuelView, error) {
	path := "/api/v1/duels"
	if userID != "" {
		path += "?user_id=" + url.QueryEscape(userID)
	}

	var data struct {
		Duels []*models.DuelView `json:"duels"`
		Total int                `json:"total"`
	}
	if err := c.call(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Duels, nil
}

// ListSubjects retrieves the supported subjects and difficulties
func (c *Client) ListSubjects(ctx context.Context) ([]models.Subject, []models.Difficulty, error) {
	var data struct {
		Subjects     []models.Subject    `json:"subjects"`
		Difficulties []models.Difficulty `json:"difficulties"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/subjects", nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Subjects, data.Difficulties, nil
}

// ListResults retrieves completed duel results for a user
func (c *Client) ListResults(ctx context.Context, userID string, limit int) ([]*models.DuelResult, error) {
	path := "/api/v1/results"
	params := url.Values{}
	if userID != "" {
		params.Set("user_id", userID)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var data struct {
		Results []*models.DuelResult `json:"results"`
		Total   int                  `json:"total"`
	}
	if err := c.call(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Results, nil
}

// GetResult retrieves a completed duel summary by ID
func (c *Client) GetResult(ctx context.Context, id string) (*models.DuelResult, error) {
	var result models.DuelResult
	if err := c.call(ctx, http.MethodGet, "/api/v1/results/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Leaderboard retrieves the top-ranked users
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	path := "/api/v1/leaderboard"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var data struct {
		Leaderboard []*models.LeaderboardEntry `json:"leaderboard"`
		Total       int                        `json:"total"`
	}
	if err := c.call(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Leaderboard, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", nil, nil)
}

// call performs a request and unwraps the response envelope into out
func (c *Client) call(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("API error: %s - %s", env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
