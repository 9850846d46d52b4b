package whisper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

const (
	// DefaultBaseURL is the default OpenAI API base URL.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the transcription model used when none is configured.
	DefaultModel = "whisper-1"
)

// Client talks to an OpenAI-compatible transcription endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithModel sets the model to use for transcriptions.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs. This
// enables using Azure OpenAI, local Whisper servers, or other compatible
// services.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client, e.g. to adjust timeouts.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new transcription client.
//
// If apiKey is empty, the OPENAI_API_KEY environment variable is used. If
// no base URL is set via WithBaseURL, the OPENAI_BASE_URL environment
// variable is consulted before falling back to the OpenAI default.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(core.OpenAIKeyEnvVar)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or %s environment variable)", core.OpenAIKeyEnvVar)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 600 * time.Second},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv(core.OpenAIBaseURLEnvVar); envBaseURL != "" {
			c.baseURL = envBaseURL
		}
	}

	return c, nil
}

// Transcribe uploads the audio file at audioPath and returns the parsed
// transcription.
func (c *Client) Transcribe(audioPath string, opts TranscribeOptions) (*Transcription, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	format := opts.ResponseFormat
	if format == "" {
		format = FormatJSON
	}
	model := opts.Model
	if model == "" {
		model = c.model
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	if err := writer.WriteField("model", model); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("response_format", format); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if opts.Language != "" {
		if err := writer.WriteField("language", opts.Language); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	for _, granularity := range opts.TimestampGranularities {
		if err := writer.WriteField("timestamp_granularities[]", granularity); err != nil {
			return nil, fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	url := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequest("POST", url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return parseTranscription(body, format)
}

// parseTranscription decodes a transcription response according to the
// format that was requested.
func parseTranscription(body []byte, format string) (*Transcription, error) {
	switch format {
	case FormatJSON, FormatVerboseJSON:
		var result Transcription
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to parse transcription response: %w", err)
		}
		result.Raw = append([]byte(nil), body...)
		return &result, nil
	default:
		// text, srt and vtt come back as plain bodies.
		return &Transcription{Text: string(body)}, nil
	}
}
