// Package api provides the HTTP client and typed accessors for the
// Limitless REST API.
package api

// ContentNode represents a content node in a lifelog entry. Blockquote
// nodes carry the spoken conversation; heading nodes carry structure.
type ContentNode struct {
	Type              string        `json:"type"`
	Content           string        `json:"content"`
	StartTime         string        `json:"startTime,omitempty"`
	EndTime           string        `json:"endTime,omitempty"`
	StartOffsetMs     int           `json:"startOffsetMs,omitempty"`
	EndOffsetMs       int           `json:"endOffsetMs,omitempty"`
	SpeakerName       string        `json:"speakerName,omitempty"`
	SpeakerIdentifier *string       `json:"speakerIdentifier,omitempty"`
	Children          []ContentNode `json:"children,omitempty"`
}

// Lifelog represents a single lifelog entry from the API.
type Lifelog struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Markdown  string        `json:"markdown,omitempty"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	IsStarred bool          `json:"isStarred,omitempty"`
	Contents  []ContentNode `json:"contents,omitempty"`
}

// LifelogPage is one page of lifelog results. NextCursor is empty on the
// final page.
type LifelogPage struct {
	Lifelogs   []Lifelog
	NextCursor string
}

// Chat represents a single chat record from the API.
type Chat struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"createdAt"`
}

// ChatPage is one page of chat results. NextCursor is empty on the final
// page.
type ChatPage struct {
	Chats      []Chat
	NextCursor string
}

// Transport executes one authenticated request against the Limitless API
// and returns the raw response body. Endpoints are given relative to the
// versioned base URL, without a leading slash.
type Transport interface {
	Request(method, endpoint string, params map[string]string) ([]byte, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(method, endpoint string, params map[string]string) ([]byte, error)

// Request calls f.
func (f TransportFunc) Request(method, endpoint string, params map[string]string) ([]byte, error) {
	return f(method, endpoint, params)
}
