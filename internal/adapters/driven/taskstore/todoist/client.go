// Package todoist provides a TaskStore adapter for the Todoist REST API.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TaskStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.todoist.com/rest/v2"
	DefaultTimeout = 30 * time.Second

	// Todoist allows 450 requests per 15 minutes; stay well below.
	requestsPerSecond = 0.4
	burstSize         = 5
)

// Todoist priorities. The API scale is 1 (normal) to 4 (urgent),
// inverted relative to the p1-p4 labels shown in the UI.
const (
	priorityHigh   = 4
	priorityNormal = 3
)

// Config holds configuration for the Todoist client.
type Config struct {
	// Token is the Todoist API token (required).
	Token string

	// BaseURL is the API base URL (default: the Todoist REST v2 API).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client talks to the Todoist REST API.
// Requests are rate limited client-side to stay under API quotas.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// task is the Todoist API task representation (the fields we read).
type task struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// createRequest is the Todoist API task creation format.
type createRequest struct {
	Content   string `json:"content"`
	Priority  int    `json:"priority,omitempty"`
	DueString string `json:"due_string,omitempty"`
}

// NewClient creates a Todoist client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("todoist: API token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = cfg.Timeout

	return &Client{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

// ListTasks returns the active tasks.
func (c *Client) ListTasks(ctx context.Context) ([]domain.ExistingTask, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tasks", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var tasks []task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	existing := make([]domain.ExistingTask, 0, len(tasks))
	for _, t := range tasks {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		existing = append(existing, domain.ExistingTask{ID: t.ID, Text: content})
	}
	return existing, nil
}

// CreateTask creates a task and returns its id.
func (c *Client) CreateTask(ctx context.Context, newTask domain.NewTask) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := createRequest{
		Content:   newTask.Text,
		Priority:  kindPriority(newTask.Kind),
		DueString: newTask.Due,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/tasks", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var created task
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return created.ID, nil
}

// kindPriority maps an item kind to a Todoist priority.
func kindPriority(kind domain.ItemKind) int {
	if kind == domain.KindPriority {
		return priorityHigh
	}
	return priorityNormal
}

// apiError formats a non-200 Todoist response as an error.
func apiError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("todoist error (status %d): failed to read response", resp.StatusCode)
	}
	return fmt.Errorf("todoist error (status %d): %s", resp.StatusCode, string(body))
}
