package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(audioCmd)

	audioCmd.Flags().StringP("output", "o", "", "Output file path (default audio_<id>.ogg)")
	audioCmd.Flags().Bool("list", false, "List recent lifelogs instead of downloading")
}

// audioCmd downloads a lifelog's recording
var audioCmd = &cobra.Command{
	Use:   "audio [lifelog-id]",
	Short: "Download a lifelog's recording as Ogg Opus",
	Args:  cobra.MaximumNArgs(1),
	RunE:  handleAudio,
}

func handleAudio(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	list, _ := cmd.Flags().GetBool("list")

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	if list {
		return printRecentLifelogs(limitlessAPI, false)
	}
	if len(args) == 0 {
		return fmt.Errorf("lifelog ID required (use --list to see recent lifelogs)")
	}
	id := args[0]

	log, err := limitlessAPI.GetLifelog(id)
	if err != nil {
		return err
	}
	printLifelogInfo(log)

	core.ProgressPrint(fmt.Sprintf("Downloading audio for lifelog %s...", id), quiet)

	savedPath, err := limitlessAPI.DownloadAudioFromLifelog(id, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Download complete: %s\n", savedPath)
	if info, err := os.Stat(savedPath); err == nil {
		fmt.Printf("  File size: %s\n", humanize.Bytes(uint64(info.Size())))
	}
	fmt.Println()
	fmt.Println("Play it with:")
	fmt.Printf("  vlc %s\n", savedPath)
	fmt.Printf("  ffplay %s\n", savedPath)
	return nil
}

// printLifelogInfo prints the identifying fields of a lifelog.
func printLifelogInfo(log *api.Lifelog) {
	title := log.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Println("Lifelog:")
	fmt.Printf("  ID:    %s\n", log.ID)
	fmt.Printf("  Title: %s\n", title)
	fmt.Printf("  Start: %s\n", log.StartTime)
	fmt.Printf("  End:   %s\n", log.EndTime)
	fmt.Println()
}

// printRecentLifelogs lists the ten most recent lifelogs so their IDs can
// be copied into a follow-up command. withPreview fetches contents and
// shows a one-line preview instead of the end time.
func printRecentLifelogs(limitlessAPI *api.LimitlessAPI, withPreview bool) error {
	core.ProgressPrint("Fetching recent lifelogs...", quiet)

	page, err := limitlessAPI.ListLifelogs(api.LifelogListOptions{
		Limit:           core.LifelogPageLimit,
		IncludeContents: withPreview,
	})
	if err != nil {
		return err
	}

	if len(page.Lifelogs) == 0 {
		fmt.Println("No lifelogs found.")
		return nil
	}

	fmt.Println("Recent lifelogs:")
	fmt.Println()
	for i, log := range page.Lifelogs {
		title := log.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%d. %s\n", i+1, log.ID)
		fmt.Printf("   Title: %s\n", title)
		fmt.Printf("   Start: %s\n", log.StartTime)
		if withPreview {
			if preview := output.ContentPreview(log, 100); preview != "" {
				fmt.Printf("   Preview: %s\n", preview)
			}
		} else {
			fmt.Printf("   End:   %s\n", log.EndTime)
		}
		fmt.Println()
	}
	return nil
}
