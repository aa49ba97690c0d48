package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// env looks up environment variables. Tests replace it with a map lookup.
type env func(string) string

// NewRootCmd creates the root command reading the process environment.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scamcheck",
		Short: "Check messages, images and links for scams",
		Long: `scamcheck asks a Gemini model whether a message, a screenshot or a web
address looks like a scam. Each check returns a risk level (safe, suspicious,
likely scam, scam detected), a confidence score, the red flags found and what
to do next.

The API key is read from GEMINI_API_KEY (or SCAMCHECK_API_KEY), or from the
gemini.apiKey entry of a .scamcheck configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .scamcheck in current or home directory, then XDG config)")
	cmd.PersistentFlags().String("model", "", "Gemini model name (overrides config and SCAMCHECK_MODEL)")
	cmd.PersistentFlags().String("base-url", "", "Gemini API base URL (overrides config and GEMINI_BASE_URL)")
	cmd.PersistentFlags().DurationP("timeout", "t", 0, "Timeout for the classifier request")

	cmd.AddCommand(newTextCmd(getenv))
	cmd.AddCommand(newImageCmd(getenv))
	cmd.AddCommand(newURLCmd(getenv))
	cmd.AddCommand(newServeCmd(getenv))
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
