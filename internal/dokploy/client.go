package dokploy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a fetch when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client talks to the Dokploy REST API with an x-api-key credential.
type Client struct {
	apiRoot    string
	apiKey     string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the overall timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
		}
	}
}

// WithAPIRoot replaces "<baseURL>/api" as the prefix procedures are
// appended to. The dashboard proxy is reached this way, with a root of
// "<dashboard>/api/dokploy".
func WithAPIRoot(root string) Option {
	return func(c *Client) {
		if root != "" {
			c.apiRoot = strings.TrimRight(root, "/")
		}
	}
}

// NewClient builds a client for the Dokploy instance at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		apiRoot: strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/api",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, procedure string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiRoot+"/"+procedure, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", procedure, err)
	}
	return nil
}

// FetchProjects returns every project with its environments and resources.
// Nothing is retried.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "project.all", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FetchProjects is a one-shot helper around NewClient(...).FetchProjects.
func FetchProjects(ctx context.Context, baseURL, apiKey string, opts ...Option) ([]Project, error) {
	return NewClient(baseURL, apiKey, opts...).FetchProjects(ctx)
}
