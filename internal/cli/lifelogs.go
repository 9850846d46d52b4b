package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(exportCmd)

	// List command flags
	listCmd.Flags().String("date", "", "Single date to fetch (YYYY-MM-DD)")
	listCmd.Flags().String("search", "", "Filter results by keyword")
	listCmd.Flags().String("start", "", "Start datetime (requires --end)")
	listCmd.Flags().String("end", "", "End datetime (requires --start)")
	listCmd.Flags().Int("limit", 0, "Maximum number of results (the API caps pages at 10)")
	listCmd.Flags().Bool("contents", false, "Include full contents in the response")
	listCmd.Flags().Bool("raw", false, "Emit raw JSON instead of summaries")

	// Get command flags
	getCmd.Flags().Bool("raw", false, "Emit JSON even when a markdown body is present")

	// Range command flags
	rangeCmd.Flags().String("search", "", "Filter results by keyword")
	rangeCmd.Flags().Bool("raw", false, "Emit raw JSON instead of summaries")

	// Export command flags
	exportCmd.Flags().String("date", "", "Date filter (YYYY-MM-DD)")
	exportCmd.Flags().String("search", "", "Search keyword filter")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (auto-generated when empty)")
}

// listCmd handles the list subcommand
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List lifelogs for a date or datetime range",
	RunE:  handleList,
}

// getCmd handles fetching a single lifelog by ID
var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Retrieve a lifelog by its ID",
	Args:  cobra.ExactArgs(1),
	RunE:  handleGet,
}

// deleteCmd handles deleting a lifelog
var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a lifelog by its ID",
	Args:  cobra.ExactArgs(1),
	RunE:  handleDelete,
}

// rangeCmd fetches every lifelog between two dates
var rangeCmd = &cobra.Command{
	Use:   "range [start] [end]",
	Short: "Fetch all lifelogs between two dates (inclusive)",
	Args:  cobra.ExactArgs(2),
	RunE:  handleRange,
}

// exportCmd writes lifelogs to a JSON file
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export lifelogs to a JSON file",
	RunE:  handleExport,
}

func handleList(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	search, _ := cmd.Flags().GetString("search")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	limit, _ := cmd.Flags().GetInt("limit")
	contents, _ := cmd.Flags().GetBool("contents")
	raw, _ := cmd.Flags().GetBool("raw")

	// Validate start/end
	if (start != "" && end == "") || (end != "" && start == "") {
		return fmt.Errorf("--start and --end must be used together")
	}
	if date != "" {
		if _, err := core.ParseDate(date); err != nil {
			return err
		}
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.ProgressPrint("Fetching lifelogs...", quiet)

	page, err := limitlessAPI.ListLifelogs(api.LifelogListOptions{
		Limit:           limit,
		Date:            date,
		Start:           start,
		End:             end,
		Timezone:        timezone,
		Search:          search,
		IncludeContents: contents,
	})
	if err != nil {
		return err
	}

	if raw {
		output.PrintJSON(page)
		return nil
	}

	if len(page.Lifelogs) == 0 {
		fmt.Println("No lifelogs found.")
		return nil
	}
	fmt.Printf("Fetched %d lifelogs:\n\n", len(page.Lifelogs))
	for _, log := range page.Lifelogs {
		output.PrintLifelogSummary(log)
	}
	return nil
}

func handleGet(cmd *cobra.Command, args []string) error {
	id := args[0]
	raw, _ := cmd.Flags().GetBool("raw")

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.Eprint(fmt.Sprintf("Fetching lifelog ID '%s'...", id), verbose)

	log, err := limitlessAPI.GetLifelog(id)
	if err != nil {
		return err
	}

	if raw || log.Markdown == "" {
		output.PrintJSON(log)
		return nil
	}
	fmt.Println(log.Markdown)
	return nil
}

func handleDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.Eprint(fmt.Sprintf("Deleting lifelog '%s'...", id), verbose)

	ok, err := limitlessAPI.DeleteLifelog(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("server did not confirm deletion of lifelog '%s'", id)
	}
	fmt.Printf("Deleted lifelog %s\n", id)
	return nil
}

func handleRange(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	raw, _ := cmd.Flags().GetBool("raw")

	startDate, err := core.ParseDate(args[0])
	if err != nil {
		return err
	}
	endDate, err := core.ParseDate(args[1])
	if err != nil {
		return err
	}
	if endDate.Before(startDate) {
		return fmt.Errorf("end must be after start")
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.ProgressPrint(fmt.Sprintf("Fetching lifelogs from %s to %s...", core.FormatDate(startDate), core.FormatDate(endDate)), quiet)

	logs, err := limitlessAPI.SearchLifelogsByDateRange(core.FormatDate(startDate), core.FormatDate(endDate), search, timezone)
	if err != nil {
		return err
	}

	if raw {
		output.PrintJSON(logs)
		return nil
	}

	if len(logs) == 0 {
		fmt.Println("No lifelogs found.")
		return nil
	}
	fmt.Printf("Fetched %d lifelogs:\n\n", len(logs))
	for _, log := range logs {
		output.PrintLifelogSummary(log)
	}
	return nil
}

func handleExport(cmd *cobra.Command, args []string) error {
	date, _ := cmd.Flags().GetString("date")
	search, _ := cmd.Flags().GetString("search")
	outputPath, _ := cmd.Flags().GetString("output")

	if date != "" {
		if _, err := core.ParseDate(date); err != nil {
			return err
		}
	}

	if outputPath == "" {
		outputPath = exportFilename(date, search, time.Now())
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.ProgressPrint("Exporting lifelogs...", quiet)

	savedPath, err := limitlessAPI.ExportLifelogsToJSON(outputPath, date, search)
	if err != nil {
		return err
	}

	fmt.Printf("Export complete: %s\n", savedPath)

	// Re-read the file so the reported size and count reflect what was
	// actually written.
	data, err := os.ReadFile(savedPath)
	if err != nil {
		return fmt.Errorf("failed to read back export file: %w", err)
	}
	var envelope struct {
		Data struct {
			Lifelogs []json.RawMessage `json:"lifelogs"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to parse export file: %w", err)
	}
	fmt.Printf("  File size: %s\n", humanize.Bytes(uint64(len(data))))
	fmt.Printf("  Lifelogs:  %d\n", len(envelope.Data.Lifelogs))
	return nil
}

// exportFilename names an export file after the filter in effect: the
// date when one was given, otherwise a timestamp.
func exportFilename(date, search string, now time.Time) string {
	switch {
	case date != "":
		return fmt.Sprintf("lifelogs_%s.json", date)
	case search != "":
		return fmt.Sprintf("lifelogs_search_%s.json", now.Format(core.FileStampFmt))
	default:
		return fmt.Sprintf("lifelogs_%s.json", now.Format(core.FileStampFmt))
	}
}
