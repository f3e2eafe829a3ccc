// Package api is the REST client for the AcademixStore backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// UsersQuery selects one page of the users listing.
type UsersQuery struct {
	Page      int
	Limit     int
	Role      string
	Search    *string
	CollegeID *string
}

func (q UsersQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Search != nil && *q.Search != "" {
		v.Set("search", *q.Search)
	}
	if q.CollegeID != nil && *q.CollegeID != "" {
		v.Set("collegeId", *q.CollegeID)
	}
	return v
}

func (c *Client) GetAllUsers(ctx context.Context, q UsersQuery) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/users", q.values(), nil)
}

func (c *Client) GetUserByID(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) RegisterUser(ctx context.Context, data map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, data)
}

func (c *Client) UpdateUser(ctx context.Context, id string, data map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, data)
}

func (c *Client) ActivateUser(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/activate", nil, nil)
}

func (c *Client) DeactivateUser(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/deactivate", nil, nil)
}

func (c *Client) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (*Response, error) {
	body := map[string]any{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/password", nil, body)
}

func (c *Client) GetMyBooks(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/users/me/books", nil, nil)
}

func (c *Client) GetColleges(ctx context.Context, page, limit int, filters map[string]string) (*Response, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	for key, value := range filters {
		v.Set(key, value)
	}
	return c.do(ctx, http.MethodGet, "/colleges", v, nil)
}

func (c *Client) GetCollegeStats(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/colleges/"+url.PathEscape(id)+"/stats", nil, nil)
}

func (c *Client) GetDashboardStats(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil)
}

func (c *Client) GetRecentActivities(ctx context.Context, limit int) (*Response, error) {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	return c.do(ctx, http.MethodGet, "/dashboard/activities", v, nil)
}

// do performs a single request. Statuses >= 400 come back as *StatusError;
// a 2xx body is returned as-is even when it reports success=false.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	data := map[string]any{}
	var decodeErr error
	if len(bytes.TrimSpace(respBody)) > 0 {
		decodeErr = json.Unmarshal(respBody, &data)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			statusErr.Message, _ = data["message"].(string)
		}
		return nil, statusErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	return &Response{StatusCode: resp.StatusCode, Data: data}, nil
}
