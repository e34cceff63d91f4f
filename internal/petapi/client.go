// Package petapi is a thin HTTP accessor for the remote /pets resource.
package petapi

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

	"github.com/starford/petdesk/internal/apperr"
	"github.com/starford/petdesk/internal/models"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

const maxBodyBytes = 1 << 20

// Filter narrows a list request to pets whose Attribute equals Term.
// The zero Filter lists everything.
type Filter struct {
	Attribute models.SearchAttribute
	Term      string
}

// IsZero reports whether f requests the unfiltered list.
func (f Filter) IsZero() bool {
	return f.Term == ""
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("petapi: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("petapi: http status %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, apperr.ErrNotFound) match a 404 response.
func (e *HTTPError) Is(target error) bool {
	return target == apperr.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to a json-server style /pets resource.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (its timeout is kept as given).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:3333).
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("petapi: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches GET /pets, or GET /pets?<attribute>=<term> for a non-zero filter.
func (c *Client) List(ctx context.Context, f Filter) ([]models.Pet, error) {
	path := "/pets"
	if !f.IsZero() {
		if !f.Attribute.Valid() {
			return nil, fmt.Errorf("petapi: %w: %q", apperr.ErrInvalidSearchAttribute, string(f.Attribute))
		}
		q := url.Values{}
		q.Set(string(f.Attribute), f.Term)
		path += "?" + q.Encode()
	}
	var pets []models.Pet
	if err := c.do(ctx, http.MethodGet, path, nil, &pets); err != nil {
		return nil, err
	}
	if pets == nil {
		pets = []models.Pet{}
	}
	return pets, nil
}

// Get fetches GET /pets/{id}.
func (c *Client) Get(ctx context.Context, id string) (models.Pet, error) {
	var p models.Pet
	err := c.do(ctx, http.MethodGet, petPath(id), nil, &p)
	return p, err
}

// Create sends POST /pets with every field, including the client-generated id.
func (c *Client) Create(ctx context.Context, p models.Pet) (models.Pet, error) {
	var out models.Pet
	if err := c.do(ctx, http.MethodPost, "/pets", p, &out); err != nil {
		return models.Pet{}, err
	}
	if out.ID == "" {
		out = p
	}
	return out, nil
}

// Update sends PUT /pets/{id} with the full replacement field set.
func (c *Client) Update(ctx context.Context, id string, in models.PetInput) (models.Pet, error) {
	var out models.Pet
	if err := c.do(ctx, http.MethodPut, petPath(id), in, &out); err != nil {
		return models.Pet{}, err
	}
	if out.ID == "" {
		out = in.WithID(id)
	}
	return out, nil
}

// Delete sends DELETE /pets/{id}.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, petPath(id), nil, nil)
}

func petPath(id string) string {
	return "/pets/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("petapi: marshal body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("petapi: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("petapi: request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("petapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("petapi: read body: %w", err)
	}

	c.logger.Debug("petapi: request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("petapi: decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the resource.
func IsNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
