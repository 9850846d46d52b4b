package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// BuildDailySummary renders one day of lifelogs as a markdown report:
// headline stats followed by a per-activity breakdown. Entries with
// malformed timestamps render their times as "unknown" and are left out
// of the recorded-time total.
func BuildDailySummary(date string, lifelogs []api.Lifelog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Activity Summary for %s\n\n", date)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format(core.APIDatetimeFmt))
	b.WriteString("---\n\n")

	if len(lifelogs) == 0 {
		b.WriteString("No lifelogs were found for this date.\n")
		return b.String()
	}

	starred := 0
	var totalRecorded time.Duration
	for _, log := range lifelogs {
		if log.IsStarred {
			starred++
		}
		if d, ok := lifelogDuration(log); ok {
			totalRecorded += d
		}
	}

	b.WriteString("## Stats\n\n")
	fmt.Fprintf(&b, "- **Total activities**: %d\n", len(lifelogs))
	fmt.Fprintf(&b, "- **Starred**: %d\n", starred)
	fmt.Fprintf(&b, "- **Total recorded time**: %s\n\n", core.FormatDurationHM(totalRecorded))

	b.WriteString("## Activities\n\n")
	for i, log := range lifelogs {
		title := log.Title
		if title == "" {
			title = "(untitled)"
		}
		if log.IsStarred {
			title += " (starred)"
		}
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, title)

		duration := "unknown"
		if d, ok := lifelogDuration(log); ok {
			duration = core.FormatDurationHM(d)
		}
		fmt.Fprintf(&b, "- **Time**: %s - %s (%s)\n", clockOrUnknown(log.StartTime), clockOrUnknown(log.EndTime), duration)
		fmt.Fprintf(&b, "- **ID**: `%s`\n", log.ID)
		if preview := ContentPreview(log, 200); preview != "" {
			fmt.Fprintf(&b, "- **Content**: %s\n", preview)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("_Generated automatically by the Limitless API client._\n")

	return b.String()
}

// lifelogDuration computes how long a lifelog ran. ok is false when either
// timestamp is missing or malformed, or the span is negative.
func lifelogDuration(log api.Lifelog) (time.Duration, bool) {
	if log.StartTime == "" || log.EndTime == "" {
		return 0, false
	}
	start, err := core.ParseISOTime(log.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := core.ParseISOTime(log.EndTime)
	if err != nil {
		return 0, false
	}
	d := end.Sub(start)
	if d < 0 {
		return 0, false
	}
	return d, true
}

// clockOrUnknown formats a timestamp as HH:MM, or "unknown" when it does
// not parse.
func clockOrUnknown(s string) string {
	t, err := core.ParseISOTime(s)
	if err != nil {
		return "unknown"
	}
	return core.FormatClock(t)
}
