package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/server"
)

// ErrNotFound is returned when the server has no task with the requested id
var ErrNotFound = errors.New("task not found")

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrNotFound) match 404 responses
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to a taskdeck API server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListOptions narrows a List call
type ListOptions struct {
	Search  *string       // nil uses the server's search term
	GroupBy model.GroupBy // empty returns no buckets
}

// List returns tasks, and buckets when opts.GroupBy is set
func (c *Client) List(ctx context.Context, opts ListOptions) (*server.ListResponse, error) {
	q := url.Values{}
	if opts.Search != nil {
		q.Set("q", *opts.Search)
	}
	if opts.GroupBy != "" {
		q.Set("group_by", string(opts.GroupBy))
	}

	path := "/api/v1/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp server.ListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one task
func (c *Client) Get(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task)
	return task, err
}

// Add creates a task
func (c *Client) Add(ctx context.Context, req server.TaskRequest) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks", req, &task)
	return task, err
}

// Edit updates a task. Empty fields keep their value.
func (c *Client) Edit(ctx context.Context, id string, req server.TaskRequest) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPatch, taskPath(id), req, &task)
	return task, err
}

// Delete removes a task
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// DeleteAll removes every task
func (c *Client) DeleteAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks", nil, nil)
}

// ToggleStar flips the starred flag of a task
func (c *Client) ToggleStar(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPost, taskPath(id)+"/star", nil, &task)
	return task, err
}

// Search returns the server's active search term
func (c *Client) Search(ctx context.Context) (string, error) {
	var resp server.SearchRequest
	err := c.do(ctx, http.MethodGet, "/api/v1/search", nil, &resp)
	return resp.Term, err
}

// SetSearch replaces the server's active search term
func (c *Client) SetSearch(ctx context.Context, term string) error {
	return c.do(ctx, http.MethodPut, "/api/v1/search", server.SearchRequest{Term: term}, nil)
}

func taskPath(id string) string {
	return "/api/v1/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, _ := io.ReadAll(resp.Body)
	var body server.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	} else if s := strings.TrimSpace(string(data)); s != "" {
		apiErr.Message = s
	}
	return apiErr
}
