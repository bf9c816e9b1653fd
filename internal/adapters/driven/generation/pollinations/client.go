// Package pollinations provides a TextGenerator adapter for the
// Pollinations text API, a free GET-based generation endpoint.
package pollinations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.TextGenerator = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://text.pollinations.ai"
	DefaultModel   = "openai"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Pollinations client.
type Config struct {
	// BaseURL is the API base URL (default: https://text.pollinations.ai).
	BaseURL string

	// Model is the backend model to request (default: openai).
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client calls the Pollinations text endpoint. The prompt travels
// URL-encoded in the request path; model, seed, and system prompt go as
// query parameters. The response body is the generated text.
type Client struct {
	client  *http.Client
	baseURL string
	model   string
}

// NewClient creates a Pollinations client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

// Generate requests text for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("pollinations: %w: empty prompt", domain.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("model", c.model)
	if opts.Seed > 0 {
		query.Set("seed", strconv.Itoa(opts.Seed))
	}
	if opts.System != "" {
		query.Set("system", opts.System)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(prompt) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("pollinations: create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pollinations: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pollinations: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pollinations: API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return strings.TrimSpace(string(body)), nil
}

// ModelName returns the configured model name.
func (c *Client) ModelName() string {
	return c.model
}

// Ping validates the endpoint is reachable via the /models listing.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("pollinations: create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pollinations: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pollinations: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
