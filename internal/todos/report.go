package todos

import (
	"fmt"
	"strings"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// reportSections fixes the order and headings of the rendered report.
var reportSections = []struct {
	category Category
	label    string
}{
	{CategoryUrgent, "Urgent / immediate"},
	{CategoryMedium, "Medium term (this week or next)"},
	{CategoryLong, "Long term"},
	{CategoryOther, "Other mentions"},
}

// otherDisplayCap keeps the catch-all section from flooding the report.
const otherDisplayCap = 10

// RenderReport renders an extraction result as a markdown-flavoured text
// block, suitable both for the terminal and for pasting into an LLM to
// summarise. Task contents are truncated to 100 runes; the catch-all
// section shows at most ten entries.
func RenderReport(d *DailyTodos) string {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Task candidates from conversations on %s\n", d.Date)
	b.WriteString(rule + "\n\n")

	for _, section := range reportSections {
		tasks := d.Tasks[section.category]
		if len(tasks) == 0 {
			continue
		}

		fmt.Fprintf(&b, "### %s\n\n", section.label)

		shown := tasks
		if section.category == CategoryOther && len(shown) > otherDisplayCap {
			shown = shown[:otherDisplayCap]
		}
		for i, task := range shown {
			fmt.Fprintf(&b, "%d. %s\n", i+1, core.TruncateRunes(task.Content, 100))
			fmt.Fprintf(&b, "   %s | %s\n", core.TruncateRunes(task.Time, 16), task.Title)
		}
		if hidden := len(tasks) - len(shown); hidden > 0 {
			fmt.Fprintf(&b, "   ... and %d more\n", hidden)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "Total: %d task candidates from %d conversations\n", d.TotalTasks(), d.TotalConversations)
	fmt.Fprintf(&b, "  urgent: %d\n", len(d.Tasks[CategoryUrgent]))
	fmt.Fprintf(&b, "  medium: %d\n", len(d.Tasks[CategoryMedium]))
	fmt.Fprintf(&b, "  long:   %d\n", len(d.Tasks[CategoryLong]))
	fmt.Fprintf(&b, "  other:  %d\n", len(d.Tasks[CategoryOther]))

	return b.String()
}
