package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// LimitlessAPI provides a typed convenience layer over the Limitless REST
// API. All methods go through the supplied Transport, so tests can swap in
// a fake without touching the network.
type LimitlessAPI struct {
	transport Transport
}

// NewLimitlessAPI creates a new high-level API client around transport.
func NewLimitlessAPI(transport Transport) *LimitlessAPI {
	return &LimitlessAPI{transport: transport}
}

// GetTransport returns the underlying transport.
func (api *LimitlessAPI) GetTransport() Transport {
	return api.transport
}

// LifelogListOptions contains options for listing lifelogs. Date, Start and
// End are passed through as the API expects them: YYYY-MM-DD for Date and
// ISO 8601 date-times for Start/End, interpreted in Timezone.
type LifelogListOptions struct {
	Limit           int
	Date            string
	Start           string
	End             string
	Timezone        string
	Search          string
	Cursor          string
	IncludeContents bool
}

// clampLimit resolves a requested page size against an endpoint's default
// and maximum.
func clampLimit(requested, def, max int) int {
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// ListLifelogs fetches a single page of lifelogs. The API caps lifelog
// pages at 10 entries, so larger requests are clamped.
func (api *LimitlessAPI) ListLifelogs(opts LifelogListOptions) (*LifelogPage, error) {
	params := map[string]string{
		"limit":           strconv.Itoa(clampLimit(opts.Limit, core.LifelogPageLimit, core.LifelogPageLimit)),
		"includeContents": strconv.FormatBool(opts.IncludeContents),
	}
	if opts.Date != "" {
		params["date"] = opts.Date
	}
	if opts.Start != "" {
		params["start"] = opts.Start
	}
	if opts.End != "" {
		params["end"] = opts.End
	}
	if opts.Timezone != "" {
		params["timezone"] = opts.Timezone
	}
	if opts.Search != "" {
		params["search"] = opts.Search
	}
	if opts.Cursor != "" {
		params["cursor"] = opts.Cursor
	}

	body, err := api.transport.Request(http.MethodGet, "lifelogs", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data struct {
			Lifelogs   []Lifelog `json:"lifelogs"`
			NextCursor string    `json:"nextCursor"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse lifelogs response: %w", err)
	}

	return &LifelogPage{
		Lifelogs:   envelope.Data.Lifelogs,
		NextCursor: envelope.Data.NextCursor,
	}, nil
}

// GetLifelog fetches a single lifelog, including its full contents.
func (api *LimitlessAPI) GetLifelog(id string) (*Lifelog, error) {
	params := map[string]string{"includeContents": "true"}

	body, err := api.transport.Request(http.MethodGet, "lifelogs/"+id, params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse lifelog response: %w", err)
	}

	// The record normally sits under data.lifelog, but some responses
	// carry it directly under data.
	var wrapper struct {
		Lifelog *Lifelog `json:"lifelog"`
	}
	if err := json.Unmarshal(envelope.Data, &wrapper); err == nil && wrapper.Lifelog != nil {
		return wrapper.Lifelog, nil
	}

	var lifelog Lifelog
	if err := json.Unmarshal(envelope.Data, &lifelog); err != nil {
		return nil, fmt.Errorf("failed to parse lifelog response: %w", err)
	}
	return &lifelog, nil
}

// DeleteLifelog deletes a lifelog. The returned bool reports whether the
// server acknowledged the deletion.
func (api *LimitlessAPI) DeleteLifelog(id string) (bool, error) {
	body, err := api.transport.Request(http.MethodDelete, "lifelogs/"+id, nil)
	if err != nil {
		return false, err
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false, fmt.Errorf("failed to parse delete response: %w", err)
	}
	return envelope.Success, nil
}

// SearchLifelogsByDateRange fetches every lifelog between two dates
// (inclusive), following pagination until the server reports no more
// pages. The dates are YYYY-MM-DD strings expanded to cover the whole
// days in the given timezone (Asia/Tokyo when empty). search optionally
// restricts results to matching entries.
func (api *LimitlessAPI) SearchLifelogsByDateRange(startDate, endDate, search, timezone string) ([]Lifelog, error) {
	if timezone == "" {
		timezone = core.DefaultTZ
	}

	return CollectPages(func(cursor string) ([]Lifelog, string, error) {
		page, err := api.ListLifelogs(LifelogListOptions{
			Limit:    core.LifelogPageLimit,
			Start:    startDate + "T00:00:00",
			End:      endDate + "T23:59:59",
			Timezone: timezone,
			Search:   search,
			Cursor:   cursor,
		})
		if err != nil {
			return nil, "", err
		}
		return page.Lifelogs, page.NextCursor, nil
	})
}

// ExportLifelogsToJSON writes one page of lifelogs (full contents
// included) to outputPath as indented JSON. The server response is
// re-indented rather than re-marshalled, so fields this client does not
// model survive the round trip. date and search filter the export when
// non-empty. Returns the path written.
func (api *LimitlessAPI) ExportLifelogsToJSON(outputPath, date, search string) (string, error) {
	params := map[string]string{
		"limit":           strconv.Itoa(core.LifelogPageLimit),
		"includeContents": "true",
	}
	if date != "" {
		params["date"] = date
	}
	if search != "" {
		params["search"] = search
	}

	body, err := api.transport.Request(http.MethodGet, "lifelogs", params)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format export: %w", err)
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return outputPath, nil
}
