// Package apiclient is a thin authenticated HTTP/JSON client for the clipdeck
// backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

const (
	DefaultTimeout        = 30 * time.Second
	DefaultProcessTimeout = 10 * time.Minute

	maxErrorBody = 64 << 10
)

// Client calls the backend REST API.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	timeout        time.Duration
	processTimeout time.Duration
	userAgent      string
	logger         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout for ordinary calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithProcessTimeout sets the timeout for video processing submissions.
func WithProcessTimeout(d time.Duration) Option {
	return func(c *Client) { c.processTimeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}

	c := &Client{
		baseURL:        u,
		http:           http.DefaultClient,
		timeout:        DefaultTimeout,
		processTimeout: DefaultProcessTimeout,
		userAgent:      "clipdeck",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// GetDashboardStats implements dashboard.API.
func (c *Client) GetDashboardStats(ctx context.Context, token string) (*dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := c.do(ctx, "get dashboard stats", token, http.MethodGet, "/api/dashboard/stats", nil, &stats, c.timeout); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListProjects implements project.API.
func (c *Client) ListProjects(ctx context.Context, token string) ([]project.Project, error) {
	var resp struct {
		Projects []project.Project `json:"projects"`
	}
	if err := c.do(ctx, "list projects", token, http.MethodGet, "/api/projects", nil, &resp, c.timeout); err != nil {
		return nil, err
	}
	if resp.Projects == nil {
		resp.Projects = []project.Project{}
	}
	return resp.Projects, nil
}

// GetProject implements project.API.
func (c *Client) GetProject(ctx context.Context, token, id string) (*project.Project, error) {
	var proj project.Project
	if err := c.do(ctx, "get project", token, http.MethodGet, projectPath(id), nil, &proj, c.timeout); err != nil {
		return nil, err
	}
	return &proj, nil
}

// CreateProject implements project.API.
func (c *Client) CreateProject(ctx context.Context, token string, req project.CreateRequest) (*project.Project, error) {
	var proj project.Project
	if err := c.do(ctx, "create project", token, http.MethodPost, "/api/projects", req, &proj, c.timeout); err != nil {
		return nil, err
	}
	return &proj, nil
}

// UpdateProject implements project.API.
func (c *Client) UpdateProject(ctx context.Context, token, id string, patch project.UpdateRequest) (*project.Project, error) {
	var proj project.Project
	if err := c.do(ctx, "update project", token, http.MethodPatch, projectPath(id), patch, &proj, c.timeout); err != nil {
		return nil, err
	}
	return &proj, nil
}

// DeleteProject implements project.API.
func (c *Client) DeleteProject(ctx context.Context, token, id string) error {
	return c.do(ctx, "delete project", token, http.MethodDelete, projectPath(id), nil, nil, c.timeout)
}

// ProcessVideo implements project.API. It uses the longer process timeout.
func (c *Client) ProcessVideo(ctx context.Context, token string, req project.ProcessVideoRequest) (*project.ProcessVideoResult, error) {
	var res project.ProcessVideoResult
	if err := c.do(ctx, "process video", token, http.MethodPost, "/api/videos/process", req, &res, c.processTimeout); err != nil {
		return nil, err
	}
	return &res, nil
}

func projectPath(id string) string {
	return "/api/projects/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, token, method, path string, body, out any, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "op", op, "request_id", requestID, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api request", "op", op, "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func decodeError(op string, resp *http.Response) error {
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error.Message != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	} else if text := strings.TrimSpace(string(data)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

var (
	_ project.API   = (*Client)(nil)
	_ dashboard.API = (*Client)(nil)
)
