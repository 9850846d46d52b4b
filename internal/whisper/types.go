// Package whisper provides a client for OpenAI-compatible audio
// transcription APIs.
package whisper

import "encoding/json"

// Response formats accepted by the transcription endpoint.
const (
	FormatJSON        = "json"
	FormatVerboseJSON = "verbose_json"
	FormatText        = "text"
	FormatSRT         = "srt"
	FormatVTT         = "vtt"
)

// TranscribeOptions control a single transcription request.
type TranscribeOptions struct {
	// Model overrides the client's configured model for this request.
	Model string

	// Language is an ISO 639-1 hint ("ja", "en", ...). Empty lets the
	// model detect the language.
	Language string

	// ResponseFormat selects the server-side output format. Defaults to
	// FormatJSON. Timestamps and segments require FormatVerboseJSON.
	ResponseFormat string

	// TimestampGranularities requests "word" or "segment" level
	// timestamps. Only honoured with FormatVerboseJSON.
	TimestampGranularities []string
}

// Segment is one timestamped span of a verbose transcription.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Word is one word-level timestamp of a verbose transcription.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcription is a parsed transcription result. For the plain-text
// formats (text, srt, vtt) only Text is populated, holding the raw server
// output. For JSON formats, Raw preserves the unparsed response body.
type Transcription struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
	Words    []Word    `json:"words,omitempty"`

	Raw json.RawMessage `json:"-"`
}
