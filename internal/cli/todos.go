package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/output"
	"github.com/kazu0914/limitless-todo-extractor/internal/todos"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(todosCmd)
	rootCmd.AddCommand(summaryCmd)

	// Todos command flags
	todosCmd.Flags().String("date", "", "Date to extract todos for (YYYY-MM-DD, default today)")
	todosCmd.Flags().StringP("output", "o", "", "Snapshot file path (default daily_todos_<date>.json)")
	todosCmd.Flags().Bool("copy", false, "Copy the report to the clipboard")

	// Summary command flags
	summaryCmd.Flags().String("date", "", "Date to summarize (YYYY-MM-DD, default today)")
	summaryCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
}

// todosCmd extracts todo candidates from the day's conversations
var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Extract todo candidates from a day's conversations",
	Long: `Scans everything said around your pendant on the given day for
task-like phrases, groups them by urgency and writes a JSON snapshot of
the findings.`,
	RunE: handleTodos,
}

// summaryCmd builds a markdown activity report for a day
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a markdown activity summary for a day",
	RunE:  handleSummary,
}

func handleTodos(cmd *cobra.Command, args []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	outputPath, _ := cmd.Flags().GetString("output")
	copyReport, _ := cmd.Flags().GetBool("copy")

	date, err := resolveDate(dateFlag)
	if err != nil {
		return err
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	extractor := todos.NewExtractor(limitlessAPI, quiet)
	daily, err := extractor.Extract(date)
	if err != nil {
		return err
	}

	report := todos.RenderReport(daily)
	fmt.Print(report)

	// The snapshot is written even on empty days so the extraction run
	// itself is recorded.
	if outputPath == "" {
		outputPath = todos.SnapshotFilename(date)
	}
	if err := daily.WriteSnapshot(outputPath); err != nil {
		return err
	}
	fmt.Printf("\nSnapshot saved: %s\n", outputPath)

	if copyReport {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not copy to clipboard: %v\n", err)
		} else {
			fmt.Println("Report copied to clipboard!")
		}
	}
	return nil
}

func handleSummary(cmd *cobra.Command, args []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	outputPath, _ := cmd.Flags().GetString("output")

	date, err := resolveDate(dateFlag)
	if err != nil {
		return err
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.ProgressPrint(fmt.Sprintf("Fetching lifelogs for %s...", date), quiet)

	page, err := limitlessAPI.ListLifelogs(api.LifelogListOptions{
		Limit:           core.LifelogPageLimit,
		Date:            date,
		Timezone:        timezone,
		IncludeContents: true,
	})
	if err != nil {
		return err
	}

	core.ProgressPrint("Generating report...", quiet)

	report := output.BuildDailySummary(date, page.Lifelogs)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(report), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report saved: %s\n", outputPath)
	} else {
		fmt.Print(report)
	}

	core.ProgressPrint(fmt.Sprintf("Summary complete: %d activities on %s", len(page.Lifelogs), date), quiet)
	return nil
}

// resolveDate returns the YYYY-MM-DD date to operate on: the flag value
// when given, otherwise today in the effective timezone.
func resolveDate(date string) (string, error) {
	if date == "" {
		return time.Now().In(core.GetTZ(tzName())).Format(core.APIDateFmt), nil
	}
	parsed, err := core.ParseDate(date)
	if err != nil {
		return "", err
	}
	return core.FormatDate(parsed), nil
}
