// Package ollama implements the model client on top of the Ollama HTTP API.
//
// Every failure leaving this package is a *models.AIError whose Kind is one
// of ModelUnavailable, GenerationFailed or InvalidResponse; transport errors
// are mapped before they are returned.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the default Ollama API endpoint
	DefaultEndpoint = "http://localhost:11434"

	// DefaultTimeout bounds a single generate request
	DefaultTimeout = 120 * time.Second

	// listTimeout bounds the /api/tags query
	listTimeout = 10 * time.Second
)

// Client talks to one Ollama server
type Client struct {
	endpoint    string
	http        *http.Client
	timeout     time.Duration
	temperature float64
	logger      *zap.Logger
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	Endpoint    string
	Timeout     time.Duration
	Temperature float64
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// ModelInfo contains information about an installed model
type ModelInfo struct {
	Name       string    `json:"name"`
	Model      string    `json:"model,omitempty"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
}

// ModelListResponse is the response from /api/tags
type ModelListResponse struct {
	Models []ModelInfo `json:"models"`
}

// GenerateRequest is the body of /api/generate
type GenerateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Format  json.RawMessage `json:"format,omitempty"`
	Options map[string]any  `json:"options,omitempty"`
}

// GenerateResponse is the non-streaming reply of /api/generate
type GenerateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
	Error    string  `json:"error,omitempty"`
}

// NewClient creates a new Ollama client
func NewClient(opts Options) *Client {
	endpoint := strings.TrimRight(opts.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		// Deadlines come from the request context
		httpClient = &http.Client{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:    endpoint,
		http:        httpClient,
		timeout:     timeout,
		temperature: opts.Temperature,
		logger:      logger,
	}
}

// Endpoint returns the base URL the client talks to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ListModels retrieves all installed models. The result is never cached.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, unavailable("invalid endpoint %q: %v", c.endpoint, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WithHint(
			unavailable("Ollama not accessible at %s: %v", c.endpoint, err),
			"start the server with: ollama serve")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, unavailable("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result ModelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, invalidResponse("failed to decode model list: %v", err)
	}

	return result.Models, nil
}

// AvailableModels returns the names of installed models, or an empty list
// when the backend cannot be queried
func (c *Client) AvailableModels(ctx context.Context) []string {
	models, err := c.ListModels(ctx)
	if err != nil {
		c.logger.Debug("Listing models failed", zap.Error(err))
		return []string{}
	}

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names
}

// CheckAvailability reports whether model is installed, along with every installed model
func (c *Client) CheckAvailability(ctx context.Context, model string) (bool, []string) {
	available := c.AvailableModels(ctx)
	ok := IsAvailable(model, available)

	c.logger.Debug("Checked model availability",
		zap.String("model", model),
		zap.Bool("available", ok),
		zap.Strings("installed", available))

	return ok, available
}

// Generate runs one non-streaming completion and returns the raw response text
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	req.Stream = false
	if c.temperature > 0 {
		if req.Options == nil {
			req.Options = map[string]any{}
		}
		req.Options["temperature"] = c.temperature
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", generationFailed("failed to marshal request: %v", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", unavailable("invalid endpoint %q: %v", c.endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Debug("Sending generate request",
		zap.String("model", req.Model),
		zap.Int("prompt_bytes", len(req.Prompt)))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", c.classifyTransportError(ctx, reqCtx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if reqCtx.Err() != nil {
			return "", c.classifyTransportError(ctx, reqCtx, err)
		}
		return "", invalidResponse("failed to read response: %v", err)
	}

	var result GenerateResponse
	decodeErr := json.Unmarshal(data, &result)

	if resp.StatusCode != http.StatusOK {
		detail := strings.TrimSpace(string(data))
		if decodeErr == nil && result.Error != "" {
			detail = result.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return "", errors.WithHintf(unavailable("%s", detail), "run: ollama pull %s", req.Model)
		}
		return "", generationFailed("status %d: %s", resp.StatusCode, detail)
	}

	if decodeErr != nil {
		return "", invalidResponse("failed to decode response: %v", decodeErr)
	}
	if result.Error != "" {
		return "", generationFailed("%s", result.Error)
	}
	if result.Response == nil {
		return "", invalidResponse("reply has no response field")
	}

	c.logger.Debug("Generate request finished",
		zap.String("model", req.Model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(*result.Response)))

	return *result.Response, nil
}

// classifyTransportError maps a failed round trip onto a *models.AIError.
// A deadline hit by the per-request timeout is GenerationFailed("timeout");
// anything else that prevented a reply means the backend is unreachable.
func (c *Client) classifyTransportError(parent, reqCtx context.Context, err error) error {
	switch {
	case parent.Err() != nil:
		return generationFailed("cancelled: %v", parent.Err())
	case errors.Is(reqCtx.Err(), context.DeadlineExceeded):
		c.logger.Warn("Generate request timed out", zap.Duration("timeout", c.timeout))
		return generationFailed("timeout")
	default:
		return errors.WithHint(
			unavailable("Ollama not accessible at %s: %v", c.endpoint, err),
			"start the server with: ollama serve")
	}
}

// String is used in log output
func (c *Client) String() string {
	return fmt.Sprintf("ollama(%s)", c.endpoint)
}
