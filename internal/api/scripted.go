package api

import "strconv"

// RequestLogEntry records a request made to a fake transport.
type RequestLogEntry struct {
	Method   string
	Endpoint string
	Params   map[string]string
}

// ScriptedTransport is an in-memory fake suitable for deterministic unit
// tests. Fixtures map an endpoint to its pages of raw response bodies; a
// request's cursor param, when it parses as an integer, selects the page.
// Requests beyond the scripted pages (or to unknown endpoints) get an
// empty data envelope.
type ScriptedTransport struct {
	Fixtures   map[string][][]byte
	RequestLog []RequestLogEntry
}

// NewScriptedTransport creates a new scripted transport with the given
// fixtures.
func NewScriptedTransport(fixtures map[string][][]byte) *ScriptedTransport {
	return &ScriptedTransport{
		Fixtures:   fixtures,
		RequestLog: make([]RequestLogEntry, 0),
	}
}

// RequestsMade returns the number of requests made to this transport.
func (t *ScriptedTransport) RequestsMade() int {
	return len(t.RequestLog)
}

// Request replays the scripted response for endpoint.
func (t *ScriptedTransport) Request(method, endpoint string, params map[string]string) ([]byte, error) {
	t.RequestLog = append(t.RequestLog, RequestLogEntry{
		Method:   method,
		Endpoint: endpoint,
		Params:   copyParams(params),
	})

	pages, ok := t.Fixtures[endpoint]
	if !ok || len(pages) == 0 {
		return []byte(`{"data":{}}`), nil
	}

	idx := 0
	if cursor, ok := params["cursor"]; ok && cursor != "" {
		if parsed, err := strconv.Atoi(cursor); err == nil {
			idx = parsed
		}
	}

	if idx < len(pages) {
		return pages[idx], nil
	}
	return []byte(`{"data":{}}`), nil
}

// copyParams creates a copy of the params map.
func copyParams(params map[string]string) map[string]string {
	result := make(map[string]string)
	for k, v := range params {
		result[k] = v
	}
	return result
}
