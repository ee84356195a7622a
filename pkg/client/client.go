// Package client is the Go SDK for the CodeCoach REST API. It wraps the
// problem catalog, practice session lifecycle, audio upload and dashboard
// endpoints, attaching the caller's provider keys as pass-through headers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the local development server address.
	DefaultBaseURL = "http://localhost:8000"

	// AnthropicKeyHeader carries the user's Anthropic key to the server.
	AnthropicKeyHeader = "X-Anthropic-Key"
	// ElevenLabsKeyHeader carries the user's ElevenLabs key to the server.
	ElevenLabsKeyHeader = "X-ElevenLabs-Key"

	defaultTimeout = 120 * time.Second
)

// KeyProvider supplies the provider API keys attached to each request.
// An empty string means the header is omitted and the server falls back
// to its own key or a mock response.
type KeyProvider interface {
	AnthropicKey() string
	ElevenLabsKey() string
}

// RequestError is returned for any non-2xx response. Message carries the
// server's detail text when present.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api request failed with status %d: %s", e.Status, e.Message)
}

// Client talks to a CodeCoach server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	keys       KeyProvider
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithKeys sets the provider key source for outgoing requests.
func WithKeys(keys KeyProvider) Option {
	return func(c *Client) {
		c.keys = keys
	}
}

// New creates a client for the server at baseURL. An empty baseURL uses
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP call against the API, decodes a 2xx body into
// out (when non-nil) and normalizes error responses into *RequestError.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.keys != nil {
		if key := c.keys.AnthropicKey(); key != "" {
			req.Header.Set(AnthropicKeyHeader, key)
		}
		if key := c.keys.ElevenLabsKey(); key != "" {
			req.Header.Set(ElevenLabsKeyHeader, key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func newRequestError(resp *http.Response) *RequestError {
	var detail struct {
		Detail string `json:"detail"`
	}
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &detail); err != nil || detail.Detail == "" {
		detail.Detail = "Request failed"
	}
	return &RequestError{Status: resp.StatusCode, Message: detail.Detail}
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", out)
}

// Health checks server reachability.
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/health", nil, "", nil)
}

// ListProblems returns the problem catalog.
func (c *Client) ListProblems(ctx context.Context) ([]ProblemListItem, error) {
	var problems []ProblemListItem
	if err := c.doRequest(ctx, http.MethodGet, "/api/problems", nil, "", &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// GetProblem fetches the full problem detail by id.
func (c *Client) GetProblem(ctx context.Context, id int) (*Problem, error) {
	var problem Problem
	if err := c.doRequest(ctx, http.MethodGet, "/api/problems/"+strconv.Itoa(id), nil, "", &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

// GetProblemBySlug fetches the full problem detail by slug.
func (c *Client) GetProblemBySlug(ctx context.Context, slug string) (*Problem, error) {
	var problem Problem
	if err := c.doRequest(ctx, http.MethodGet, "/api/problems/slug/"+url.PathEscape(slug), nil, "", &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

// CreateSession starts a new practice session for a problem.
func (c *Client) CreateSession(ctx context.Context, problemID int, language string) (*Session, error) {
	payload := map[string]interface{}{
		"problem_id": problemID,
		"language":   language,
	}
	var session Session
	if err := c.postJSON(ctx, "/api/sessions", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession fetches a session with its problem and evaluation attached.
func (c *Client) GetSession(ctx context.Context, id int) (*Session, error) {
	var session Session
	if err := c.doRequest(ctx, http.MethodGet, "/api/sessions/"+strconv.Itoa(id), nil, "", &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions returns the most recent completed sessions.
func (c *Client) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	path := "/api/sessions"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var sessions []Session
	if err := c.doRequest(ctx, http.MethodGet, path, nil, "", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// UploadAudio sends a recorded explanation for transcription. The audio is
// attached as a multipart file part named "audio".
func (c *Client) UploadAudio(ctx context.Context, sessionID int, filename string, audio io.Reader) (*Transcription, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to buffer audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	path := "/api/sessions/" + strconv.Itoa(sessionID) + "/audio"
	var result Transcription
	if err := c.doRequest(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitSession submits the final code for evaluation and returns the
// completed session with its scorecard.
func (c *Client) SubmitSession(ctx context.Context, sessionID int, code, language string, hintsUsed int) (*Session, error) {
	payload := map[string]interface{}{
		"code":       code,
		"language":   language,
		"hints_used": hintsUsed,
	}
	var session Session
	if err := c.postJSON(ctx, "/api/sessions/"+strconv.Itoa(sessionID)+"/submit", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetStats fetches the dashboard aggregates.
func (c *Client) GetStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.doRequest(ctx, http.MethodGet, "/api/stats", nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
