package api

import "fmt"

// ConfigError is returned when the client cannot be constructed, typically
// because no API key was provided and the environment variable is unset.
type ConfigError struct {
	EnvVar string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing API key: set %s or pass an explicit key", e.EnvVar)
}

// ValidationError is returned when a caller-supplied argument violates a
// documented API limit. It is always returned before any request is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// APIError is returned when the Limitless API returns a non-rate-limit error
// response. The body is preserved verbatim for diagnosis.
type APIError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d) for %s: %s", e.StatusCode, e.URL, e.Body)
}

// RetryExhaustedError is returned when every attempt at a request was met
// with a rate-limit response.
type RetryExhaustedError struct {
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("rate limited: gave up after %d attempts", e.Attempts)
}

// PaginationLoopError is returned when the API hands back a cursor that was
// already followed, which would otherwise loop forever.
type PaginationLoopError struct {
	Cursor string
}

func (e *PaginationLoopError) Error() string {
	return fmt.Sprintf("pagination loop detected: cursor %q repeated", e.Cursor)
}
