package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mdvault/internal/domain"
	models "mdvault/internal/domain/models/vault"
	vaultRepo "mdvault/internal/domain/repositories/vault"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single call to the document API
	DefaultTimeout = 15 * time.Second

	// maxErrorBody caps how much of an error response ends up in the error
	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	BaseURL   string        // e.g. https://vault.example.com/api
	Token     string        // bearer token forwarded on every call
	Timeout   time.Duration // per call; DefaultTimeout when zero
	RateLimit float64       // calls per second; unlimited when zero
	Logger    *slog.Logger
}

// Client talks to the document REST API (/docs). It implements
// DocumentStore; every failure comes back as a *domain.RemoteError.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ vaultRepo.DocumentStore = (*Client)(nil)

// NewClient creates a document API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// WithToken returns a copy of the client that sends token instead. The
// rate limiter is shared.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// ListDocuments fetches GET /docs
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var wire []documentJSON
	if err := c.do(ctx, http.MethodGet, "/docs", nil, &wire); err != nil {
		return nil, domain.NewRemoteError("list", "", err)
	}

	docs := make([]models.Document, 0, len(wire))
	for _, w := range wire {
		doc, err := w.toDocument()
		if err != nil {
			return nil, domain.NewRemoteError("list", "", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetDocument fetches GET /docs/{id}
func (c *Client) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var wire documentJSON
	if err := c.do(ctx, http.MethodGet, docPath(id), nil, &wire); err != nil {
		return nil, domain.NewRemoteError("get", id, err)
	}
	doc, err := wire.toDocument()
	if err != nil {
		return nil, domain.NewRemoteError("get", id, err)
	}
	return &doc, nil
}

// UpdateProject sends PUT /docs/{id} with {"project": <string|null>}
func (c *Client) UpdateProject(ctx context.Context, id string, project *string) (*models.Document, error) {
	body := projectUpdateJSON{Project: project}

	var wire documentJSON
	if err := c.do(ctx, http.MethodPut, docPath(id), body, &wire); err != nil {
		return nil, domain.NewRemoteError("update", id, err)
	}
	doc, err := wire.toDocument()
	if err != nil {
		return nil, domain.NewRemoteError("update", id, err)
	}
	return &doc, nil
}

// DeleteDocument sends DELETE /docs/{id}
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, docPath(id), nil, nil); err != nil {
		return domain.NewRemoteError("delete", id, err)
	}
	return nil
}

func docPath(id string) string {
	return "/docs/" + url.PathEscape(id)
}

// do performs one call. out may be nil when the response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // Error ignored: response consumed

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("document api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := statusError(resp.StatusCode, respBody); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// statusError maps non-2xx responses. The engine treats them all alike;
// the typed cause only improves messages and logs.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	switch status {
	case http.StatusUnauthorized:
		return &domain.UnauthorizedError{Message: "document api rejected the token"}
	case http.StatusForbidden:
		return &domain.ForbiddenError{Message: "document api denied access"}
	case http.StatusNotFound:
		return &domain.NotFoundError{Message: "document not found"}
	}
	return fmt.Errorf("API error (status %d): %s", status, msg)
}

// projectUpdateJSON always serializes project, so nil becomes null.
type projectUpdateJSON struct {
	Project *string `json:"project"`
}

// documentJSON is the API's document shape. IDs arrive as numbers from the
// SQLite-backed API and as strings elsewhere; timestamps use either RFC 3339
// or SQLite's "YYYY-MM-DD HH:MM:SS".
type documentJSON struct {
	ID        flexibleID `json:"id"`
	Title     string     `json:"title"`
	Project   *string    `json:"project"`
	Tags      tagList    `json:"tags"`
	FileName  *string    `json:"file_name"`
	FileType  *string    `json:"file_type"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

func (w documentJSON) toDocument() (models.Document, error) {
	if w.ID == "" {
		return models.Document{}, errors.New("document without id")
	}
	return models.Document{
		ID:        string(w.ID),
		Title:     w.Title,
		Project:   w.Project,
		Tags:      []string(w.Tags),
		FileName:  w.FileName,
		FileType:  w.FileType,
		CreatedAt: parseTimestamp(w.CreatedAt),
		UpdatedAt: parseTimestamp(w.UpdatedAt),
	}, nil
}

type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("document id: %w", err)
	}
	*id = flexibleID(n.String())
	return nil
}

// tagList accepts a JSON array or a comma-separated string.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = models.SplitTags(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
