// Package cli implements the command-line interface for the Limitless
// todo extractor.
package cli

import (
	"fmt"
	"os"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/spf13/cobra"
)

// Global flags
var (
	apiKey   string
	verbose  bool
	quiet    bool
	timezone string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "limitless-todo",
	Short: "Limitless todo extractor: lifelogs, transcripts and daily todos",
	Long: `A command-line utility for working with recordings from your Limitless AI
device: list and export lifelogs, download pendant audio, transcribe it
with Whisper, and extract daily todo lists from what was said.`,
	Version: core.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", fmt.Sprintf("Limitless API key (default: %s environment variable)", core.APIKeyEnvVar))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress messages")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", fmt.Sprintf("Timezone for date calculations (default: %s)", core.DefaultTZ))
}

// newAPI builds the typed API layer from the global flags.
func newAPI() (*api.LimitlessAPI, error) {
	client, err := api.NewClient(api.Config{APIKey: apiKey, Verbose: verbose})
	if err != nil {
		return nil, err
	}
	return api.NewLimitlessAPI(client), nil
}

// tzName resolves the effective timezone name for date calculations.
func tzName() string {
	if timezone != "" {
		return timezone
	}
	return core.DefaultTZ
}
