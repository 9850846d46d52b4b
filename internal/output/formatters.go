// Package output renders API records for the terminal and builds report
// documents.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// PrintJSON prints a single item as formatted JSON.
func PrintJSON(item interface{}) {
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// PrintLifelogSummary prints one lifelog as a short readable block.
func PrintLifelogSummary(log api.Lifelog) {
	title := log.Title
	if title == "" {
		title = "(untitled)"
	}

	fmt.Printf("ID:      %s\n", log.ID)
	fmt.Printf("Title:   %s\n", title)
	fmt.Printf("Start:   %s\n", log.StartTime)
	fmt.Printf("End:     %s\n", log.EndTime)
	starred := "no"
	if log.IsStarred {
		starred = "yes"
	}
	fmt.Printf("Starred: %s\n", starred)
	if preview := ContentPreview(log, 200); preview != "" {
		fmt.Printf("Preview: %s\n", preview)
	}
	fmt.Println(strings.Repeat("-", 50))
}

// PrintChatSummary prints one chat as a short readable block.
func PrintChatSummary(chat api.Chat) {
	fmt.Printf("ID:      %s\n", chat.ID)
	fmt.Printf("Created: %s\n", chat.CreatedAt)
	fmt.Printf("Summary: %s\n", chat.Summary)
	fmt.Println(strings.Repeat("-", 50))
}

// ContentPreview condenses a lifelog's content into one line of at most
// limit runes. The markdown rendition wins when present; otherwise the
// first spoken lines are used.
func ContentPreview(log api.Lifelog, limit int) string {
	text := log.Markdown
	if text == "" {
		var spoken []string
		for _, node := range log.Contents {
			if node.Type == "blockquote" && node.Content != "" {
				spoken = append(spoken, node.Content)
			}
		}
		text = strings.Join(spoken, " ")
	}
	if text == "" {
		return ""
	}

	text = strings.Join(strings.Fields(text), " ")
	if truncated := core.TruncateRunes(text, limit); len(truncated) < len(text) {
		return truncated + "..."
	}
	return text
}
