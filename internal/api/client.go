package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// defaultTimeout bounds every request when the caller's context carries no
// earlier deadline.
const defaultTimeout = 15 * time.Second

// APIError is a failure reported by the backend. Message is the backend's
// text verbatim; the UI surfaces it unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
}

// IsConflict reports whether the backend rejected the request because a
// session already exists (the client reloads and shows it).
func (e *APIError) IsConflict() bool { return e.StatusCode == http.StatusConflict }

// Client talks to the workshop backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the given base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// envelope is the common response wrapper: every endpoint reports ok plus
// an optional error message.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// do issues one request and decodes the response body into out (which may
// be nil). Non-2xx statuses and ok:false envelopes become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	var env envelope
	if len(data) > 0 {
		// Tolerate non-JSON error bodies; the status check below covers them.
		_ = json.Unmarshal(data, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	if !env.OK {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// GetTimer fetches the current session. A nil session means no timer is
// running.
func (c *Client) GetTimer(ctx context.Context) (*TimerSession, error) {
	var resp struct {
		Timer *TimerSession `json:"timer"`
	}
	if err := c.do(ctx, http.MethodGet, "/workshop/timer", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Timer, nil
}

// StartTimer creates a new session.
func (c *Client) StartTimer(ctx context.Context, req StartTimerRequest) (*StartTimerResponse, error) {
	var resp StartTimerResponse
	if err := c.do(ctx, http.MethodPost, "/workshop/timer/start", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopTimer closes the current session. The backend computes the elapsed
// duration and returns it as Hours.
func (c *Client) StopTimer(ctx context.Context) (*StopTimerResponse, error) {
	var resp StopTimerResponse
	if err := c.do(ctx, http.MethodPost, "/workshop/timer/stop", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelTimer discards the current session without logging time.
func (c *Client) CancelTimer(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/workshop/timer", nil, nil)
}

// CompleteProcess marks a project's process as completed, with optional
// free-text completion comments.
func (c *Client) CompleteProcess(ctx context.Context, projectID, processCode, comments string) error {
	body := map[string]string{
		"projectId":   projectID,
		"processCode": processCode,
		"status":      "completed",
	}
	if comments != "" {
		body["completionComments"] = comments
	}
	return c.do(ctx, http.MethodPatch, "/workshop/process-status", body, nil)
}

// ListProcesses fetches the tenant's process catalog.
func (c *Client) ListProcesses(ctx context.Context) ([]ProcessDefinition, error) {
	var resp struct {
		Processes []ProcessDefinition `json:"processes"`
	}
	if err := c.do(ctx, http.MethodGet, "/workshop/processes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Processes, nil
}

// WorkshopTasks fetches the user's workshop tasks with bucket membership.
func (c *Client) WorkshopTasks(ctx context.Context) (*WorkshopTasksResponse, error) {
	var resp WorkshopTasksResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/workshop?includeCounts=true", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CompleteTask marks a task complete, with optional notes.
func (c *Client) CompleteTask(ctx context.Context, id, notes string) error {
	body := map[string]any{"completed": true}
	if notes != "" {
		body["notes"] = notes
	}
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/complete", body, nil)
}

// UpdateTaskMeta replaces a task's meta object (e.g. to assign or clear
// its process code).
func (c *Client) UpdateTaskMeta(ctx context.Context, id string, meta TaskMeta) error {
	body := map[string]any{"meta": meta}
	return c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), body, nil)
}
