package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// Config controls how a Client is constructed.
type Config struct {
	// APIKey authenticates every request. When empty, the
	// LIMITLESS_API_KEY environment variable is consulted.
	APIKey string

	// DisableAutoRetry turns off the automatic wait-and-retry handling
	// of rate-limit (HTTP 429) responses.
	DisableAutoRetry bool

	// MaxRetries caps the total attempts for a single request when
	// retrying is enabled. Values < 1 fall back to DefaultMaxRetries.
	MaxRetries int

	// Verbose mirrors request and retry activity to stderr.
	Verbose bool

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Client is the HTTP wrapper around the Limitless REST API.
type Client struct {
	apiKey     string
	baseURL    string
	autoRetry  bool
	maxRetries int
	httpClient *http.Client
	verbose    bool

	// sleep is swapped out in tests to observe retry waits.
	sleep func(time.Duration)
}

// NewClient creates a new API client. It fails with a *ConfigError when no
// API key is available.
func NewClient(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(core.APIKeyEnvVar)
	}
	if apiKey == "" {
		return nil, &ConfigError{EnvVar: core.APIKeyEnvVar}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = core.DefaultMaxRetries
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 300 * time.Second}
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    fmt.Sprintf("%s/%s", core.APIBaseURL, core.APIVersion),
		autoRetry:  !cfg.DisableAutoRetry,
		maxRetries: maxRetries,
		httpClient: httpClient,
		verbose:    cfg.Verbose,
		sleep:      time.Sleep,
	}, nil
}

// log writes a message to stderr if verbose mode is enabled.
func (c *Client) log(msg string) {
	core.Eprint(fmt.Sprintf("[API] %s", msg), c.verbose)
}

// IsVerbose returns whether verbose logging is enabled.
func (c *Client) IsVerbose() bool {
	return c.verbose
}

// Request performs one API request and returns the raw response body.
//
// Rate-limit responses are retried after waiting out the server-declared
// retryAfter value from the 429 body; any other error status is returned
// immediately as an *APIError with the body preserved. When every attempt
// is rate limited, the result is a *RetryExhaustedError.
func (c *Client) Request(method, endpoint string, params map[string]string) ([]byte, error) {
	urlStr := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	// Build query string
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		urlStr = fmt.Sprintf("%s?%s", urlStr, q.Encode())
	}

	c.log(fmt.Sprintf("%s %s", method, urlStr))

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequest(method, urlStr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			c.log(fmt.Sprintf("Response: HTTP %d, %d bytes", resp.StatusCode, len(body)))
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests && c.autoRetry {
			if attempt == c.maxRetries {
				return nil, &RetryExhaustedError{Attempts: c.maxRetries}
			}
			wait := retryAfter(body)
			c.log(fmt.Sprintf("Rate limited (attempt %d/%d); waiting %v before retrying...", attempt, c.maxRetries, wait))
			c.sleep(wait)
			continue
		}

		return nil, &APIError{URL: urlStr, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil, &RetryExhaustedError{Attempts: c.maxRetries}
}

// retryAfter extracts the server-declared wait from a 429 response body.
// The API reports it as a retryAfter field holding seconds; when the field
// is absent or unparsable the default of 60 seconds applies.
func retryAfter(body []byte) time.Duration {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return core.DefaultRetryAfter
	}
	switch v := payload["retryAfter"].(type) {
	case float64:
		if v >= 0 {
			return time.Duration(v) * time.Second
		}
	case string:
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return core.DefaultRetryAfter
}
