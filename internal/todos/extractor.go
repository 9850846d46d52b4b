package todos

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// Task is one task candidate pulled out of a conversation. Time and Title
// identify the lifelog it was spoken in.
type Task struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Conversation is the spoken content of one lifelog, reduced to its
// blockquote lines.
type Conversation struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Time  string   `json:"time"`
	Lines []string `json:"conversation"`
}

// DailyTodos is the full result of one extraction run, shaped to match
// the daily_todos_<date>.json snapshot files.
type DailyTodos struct {
	Date               string              `json:"date"`
	ExtractedAt        string              `json:"extracted_at"`
	TotalConversations int                 `json:"total_conversations"`
	Tasks              map[Category][]Task `json:"tasks"`
	Conversations      []Conversation      `json:"conversations"`
}

// Extractor pulls task candidates out of one day of lifelogs.
type Extractor struct {
	api   *api.LimitlessAPI
	quiet bool
}

// NewExtractor creates an extractor over the given API client.
func NewExtractor(limitless *api.LimitlessAPI, quiet bool) *Extractor {
	return &Extractor{api: limitless, quiet: quiet}
}

// Extract fetches the lifelogs for date (YYYY-MM-DD), walks their
// conversations and returns the categorised task candidates.
func (e *Extractor) Extract(date string) (*DailyTodos, error) {
	core.ProgressPrint(fmt.Sprintf("Fetching lifelogs for %s...", date), e.quiet)
	page, err := e.api.ListLifelogs(api.LifelogListOptions{Date: date, Limit: core.LifelogPageLimit})
	if err != nil {
		return nil, err
	}
	core.ProgressPrint(fmt.Sprintf("Fetched %d lifelogs", len(page.Lifelogs)), e.quiet)

	conversations, err := e.collectConversations(page.Lifelogs)
	if err != nil {
		return nil, err
	}

	return &DailyTodos{
		Date:               date,
		ExtractedAt:        time.Now().Format(time.RFC3339),
		TotalConversations: len(conversations),
		Tasks:              ExtractTasks(conversations),
		Conversations:      conversations,
	}, nil
}

// collectConversations fetches each lifelog's contents and keeps the ones
// that carry spoken lines.
func (e *Extractor) collectConversations(logs []api.Lifelog) ([]Conversation, error) {
	conversations := make([]Conversation, 0, len(logs))

	for _, log := range logs {
		detail, err := e.api.GetLifelog(log.ID)
		if err != nil {
			return nil, err
		}

		lines := BlockquoteLines(detail.Contents)
		if len(lines) == 0 {
			continue
		}

		core.ProgressPrint(fmt.Sprintf("  %s: %d spoken lines", log.Title, len(lines)), e.quiet)
		conversations = append(conversations, Conversation{
			ID:    log.ID,
			Title: log.Title,
			Time:  log.StartTime,
			Lines: lines,
		})
	}

	return conversations, nil
}

// BlockquoteLines collects the content of top-level blockquote nodes,
// which is where the API puts spoken utterances.
func BlockquoteLines(contents []api.ContentNode) []string {
	var lines []string
	for _, node := range contents {
		if node.Type == "blockquote" && node.Content != "" {
			lines = append(lines, node.Content)
		}
	}
	return lines
}

// ExtractTasks scans conversations for task keywords and buckets every
// hit by urgency. All four buckets are always present in the result, even
// when empty.
func ExtractTasks(conversations []Conversation) map[Category][]Task {
	tasks := make(map[Category][]Task, len(Categories))
	for _, category := range Categories {
		tasks[category] = []Task{}
	}

	for _, conv := range conversations {
		for _, text := range conv.Lines {
			if !IsTaskCandidate(text) {
				continue
			}
			category := CategorizeTask(text)
			tasks[category] = append(tasks[category], Task{
				Time:    conv.Time,
				Title:   conv.Title,
				Content: text,
			})
		}
	}

	return tasks
}

// TotalTasks counts the task candidates across all buckets.
func (d *DailyTodos) TotalTasks() int {
	total := 0
	for _, tasks := range d.Tasks {
		total += len(tasks)
	}
	return total
}

// SnapshotFilename returns the conventional snapshot name for a date.
func SnapshotFilename(date string) string {
	return fmt.Sprintf("daily_todos_%s.json", date)
}

// WriteSnapshot persists the extraction result as indented JSON.
func (d *DailyTodos) WriteSnapshot(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode todo snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write todo snapshot: %w", err)
	}
	return nil
}
