package cli

import (
	"fmt"
	"strings"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/transcribe"
	"github.com/kazu0914/limitless-todo-extractor/internal/whisper"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().Bool("list", false, "List recent lifelogs instead of transcribing")
	transcribeCmd.Flags().StringP("output", "o", ".", "Output directory for the transcription files")
	transcribeCmd.Flags().Bool("keep-audio", false, "Keep the downloaded audio file")
	transcribeCmd.Flags().String("language", core.DefaultLanguage, "Language hint for Whisper")
}

// transcribeCmd runs the Whisper transcription pipeline
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [lifelog-id]",
	Short: "Transcribe a lifelog's audio with the OpenAI Whisper API",
	Long: `Downloads the lifelog's recording, sends it to the OpenAI Whisper API
and writes the transcription as text and JSON files. Requires the
OPENAI_API_KEY environment variable in addition to the Limitless key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: handleTranscribe,
}

func handleTranscribe(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	outputDir, _ := cmd.Flags().GetString("output")
	keepAudio, _ := cmd.Flags().GetBool("keep-audio")
	language, _ := cmd.Flags().GetString("language")

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

	transcriber, err := whisper.NewClient("")
	if err != nil {
		return err
	}

	fmt.Println("Transcribing lifelog audio")
	fmt.Printf("  Lifelog ID: %s\n", id)
	fmt.Printf("  Output dir: %s\n", outputDir)
	fmt.Printf("  Language:   %s\n", language)
	fmt.Printf("  Keep audio: %v\n", keepAudio)
	fmt.Println()

	// Show what is being transcribed. The pipeline fetches the lifelog
	// again for its timestamps, so a failure here is only cosmetic.
	if log, err := limitlessAPI.GetLifelog(id); err == nil {
		printLifelogInfo(log)
	} else {
		core.ProgressPrint(fmt.Sprintf("Warning: could not fetch lifelog info: %v", err), quiet)
	}

	pipeline := transcribe.New(limitlessAPI, transcriber, quiet)
	result, err := pipeline.Run(transcribe.RunOptions{
		LifelogID: id,
		OutputDir: outputDir,
		KeepAudio: keepAudio,
		Language:  language,
	})
	if err != nil {
		return err
	}

	fmt.Println("Transcription complete.")
	fmt.Println()
	fmt.Println("Files:")
	fmt.Printf("  Text:  %s\n", result.TextFile)
	fmt.Printf("  JSON:  %s\n", result.JSONFile)
	if result.AudioFile != "" {
		fmt.Printf("  Audio: %s\n", result.AudioFile)
	}
	fmt.Println()

	text := result.Transcription.Text
	fmt.Println("Preview:")
	fmt.Println(strings.Repeat("-", 50))
	const previewRunes = 300
	if preview := core.TruncateRunes(text, previewRunes); len(preview) < len(text) {
		fmt.Println(preview + "...")
	} else {
		fmt.Println(text)
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println()

	printTextStats(text)
	if result.Transcription.Duration > 0 {
		fmt.Printf("  Audio length: %.1f seconds (%.1f minutes)\n", result.Transcription.Duration, result.Transcription.Duration/60)
	}
	return nil
}
