package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/todos"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(transcriptCmd)

	transcriptCmd.Flags().Bool("list", false, "List recent lifelogs instead of fetching a transcript")
	transcriptCmd.Flags().StringP("output", "o", "", "Directory to save the transcript into")
	transcriptCmd.Flags().String("format", "text", "Output format: text, markdown or json")
}

// transcriptCmd prints the transcript Limitless already made
var transcriptCmd = &cobra.Command{
	Use:   "transcript [lifelog-id]",
	Short: "Fetch the transcript Limitless recorded for a lifelog",
	Long: `Limitless transcribes pendant recordings automatically; this command
fetches that transcript straight from the API without calling any
external transcription service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: handleTranscript,
}

func handleTranscript(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	outputDir, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if format != "text" && format != "markdown" && format != "json" {
		return fmt.Errorf("--format must be text, markdown or json")
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	if list {
		return printRecentLifelogs(limitlessAPI, true)
	}
	if len(args) == 0 {
		return fmt.Errorf("lifelog ID required (use --list to see recent lifelogs)")
	}
	id := args[0]

	core.Eprint(fmt.Sprintf("Fetching lifelog ID '%s'...", id), verbose)

	log, err := limitlessAPI.GetLifelog(id)
	if err != nil {
		return err
	}
	printLifelogInfo(log)

	text := transcriptText(log)
	if text == "" {
		fmt.Println("This lifelog has no transcript.")
		return nil
	}

	if outputDir != "" {
		savedPath, err := saveTranscript(log, outputDir, format)
		if err != nil {
			return err
		}
		fmt.Printf("Saved: %s\n\n", savedPath)
	}

	fmt.Println("Transcript:")
	fmt.Println(strings.Repeat("-", 50))
	const previewRunes = 500
	if preview := core.TruncateRunes(text, previewRunes); len(preview) < len(text) {
		fmt.Println(preview)
		fmt.Println("...")
		fmt.Printf("(%s more characters)\n", humanize.Comma(int64(utf8.RuneCountInString(text)-previewRunes)))
	} else {
		fmt.Println(text)
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println()

	printTextStats(text)

	if outputDir == "" {
		fmt.Println()
		fmt.Printf("Save it with: limitless-todo transcript %s --output ./transcriptions\n", id)
	}
	return nil
}

// transcriptText returns the best transcript rendition available: the
// markdown body when present, otherwise the spoken lines joined up.
func transcriptText(log *api.Lifelog) string {
	if log.Markdown != "" {
		return log.Markdown
	}
	return strings.Join(todos.BlockquoteLines(log.Contents), "\n")
}

// saveTranscript writes the lifelog's transcript into outputDir in the
// requested format and returns the path written.
func saveTranscript(log *api.Lifelog, outputDir, format string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	switch format {
	case "markdown":
		path := filepath.Join(outputDir, fmt.Sprintf("lifelog_%s.md", log.ID))
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", log.Title)
		fmt.Fprintf(&b, "**Start**: %s\n", log.StartTime)
		fmt.Fprintf(&b, "**End**: %s\n\n", log.EndTime)
		b.WriteString("---\n\n")
		b.WriteString(log.Markdown)
		b.WriteString("\n")
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write transcript: %w", err)
		}
		return path, nil

	case "json":
		path := filepath.Join(outputDir, fmt.Sprintf("lifelog_%s.json", log.ID))
		data, err := json.MarshalIndent(log, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode lifelog: %w", err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return "", fmt.Errorf("failed to write transcript: %w", err)
		}
		return path, nil

	default:
		path := filepath.Join(outputDir, fmt.Sprintf("lifelog_%s.txt", log.ID))
		if err := os.WriteFile(path, []byte(transcriptText(log)+"\n"), 0o644); err != nil {
			return "", fmt.Errorf("failed to write transcript: %w", err)
		}
		return path, nil
	}
}

// printTextStats prints character and word counts for a transcript.
func printTextStats(text string) {
	fmt.Println("Stats:")
	fmt.Printf("  Characters: %s\n", humanize.Comma(int64(utf8.RuneCountInString(text))))
	fmt.Printf("  Words:      %s\n", humanize.Comma(int64(len(strings.Fields(text)))))
}
