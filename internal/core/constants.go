// Package core provides shared constants and helpers for the Limitless todo extractor.
package core

import "time"

// API configuration
const (
	APIBaseURL   = "https://api.limitless.ai"
	APIVersion   = "v1"
	APIKeyEnvVar = "LIMITLESS_API_KEY"
	DefaultTZ    = "Asia/Tokyo"
)

// Whisper configuration
const (
	OpenAIKeyEnvVar     = "OPENAI_API_KEY"
	OpenAIBaseURLEnvVar = "OPENAI_BASE_URL"
	DefaultLanguage     = "ja"
)

// Date formats
const (
	APIDateFmt     = "2006-01-02"
	APIDatetimeFmt = "2006-01-02 15:04:05"
	FileStampFmt   = "20060102_150405"
	ClockFmt       = "15:04"
)

// Page size limits imposed by the API
const (
	LifelogPageLimit = 10
	ChatPageLimit    = 100
	ChatDefaultLimit = 50
)

// Rate limit handling
const (
	DefaultMaxRetries = 3
	DefaultRetryAfter = 60 * time.Second
)

// Audio download limits and defaults
const (
	MaxAudioSpanMs       = 2 * 60 * 60 * 1000 // 2 hours
	DefaultAudioSource   = "pendant"
	DefaultAudioFilename = "audio.ogg"
)

// Version is the current tool version.
const Version = "1.0.0"
