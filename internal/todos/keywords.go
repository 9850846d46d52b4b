// Package todos mines lifelog conversations for actionable tasks. The
// detection is keyword-based and tuned for Japanese speech, which is what
// the pendant records for this tool's users.
package todos

import "strings"

// Category buckets a task by how soon it needs attention.
type Category string

const (
	CategoryUrgent Category = "urgent"
	CategoryMedium Category = "medium"
	CategoryLong   Category = "long"
	CategoryOther  Category = "other"
)

// Categories lists every bucket in display order.
var Categories = []Category{CategoryUrgent, CategoryMedium, CategoryLong, CategoryOther}

// taskKeywords marks an utterance as a task candidate when any of them
// appears. Mostly verbs of intent plus scheduling words.
var taskKeywords = []string{
	"やる", "する", "しなければ", "しないと", "やらなきゃ",
	"予定", "明日", "来週", "TODO", "タスク", "確認",
	"準備", "送る", "連絡", "調べる", "買う", "行く",
	"どうする", "決める", "やること", "後で", "今度",
	"来る", "会う", "食べる", "あげる", "渡す",
}

// urgentKeywords pin a task to today or tomorrow.
var urgentKeywords = []string{"明日", "今日", "今から", "後で", "すぐ"}

// mediumKeywords point at this week or the next.
var mediumKeywords = []string{"来週", "今週", "金曜", "土曜", "日曜"}

// longKeywords point months out: next month, next year, exams.
var longKeywords = []string{"来月", "来年", "2月", "資格", "試験"}

// containsAny reports whether text contains at least one of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// IsTaskCandidate reports whether an utterance looks like a task.
func IsTaskCandidate(text string) bool {
	return containsAny(text, taskKeywords)
}

// CategorizeTask buckets a task utterance by urgency. Urgent markers win
// over medium ones, which win over long-term ones; everything else is
// CategoryOther.
func CategorizeTask(text string) Category {
	if containsAny(text, urgentKeywords) {
		return CategoryUrgent
	}
	if containsAny(text, mediumKeywords) {
		return CategoryMedium
	}
	if containsAny(text, longKeywords) {
		return CategoryLong
	}
	return CategoryOther
}
