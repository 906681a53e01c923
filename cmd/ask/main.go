package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ask [flags] <text...>",
		Short: "Ask a model a question from the terminal",
		Long: `ask runs the same pipeline as the web form in-process: it optionally gathers
Reddit and DuckDuckGo context, sends the prompt to the selected model and
prints the sanitized HTML answer (or the raw markdown with --raw).

Examples:
  ask "what is the capital of France?"
  ask --model gpt-4o --reddit=false "explain goroutines"
  ask --raw https://www.reddit.com/r/golang/comments/abc123/
  ask models`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          runAsk,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringP("model", "m", "", "Model name (defaults to the first registered model)")
	rootCmd.Flags().Bool("reddit", true, "Gather Reddit context")
	rootCmd.Flags().Bool("duckduckgo", true, "Gather DuckDuckGo context")
	rootCmd.Flags().Bool("raw", false, "Print the model markdown instead of sanitized HTML")

	rootCmd.AddCommand(newModelsCmd())
	return rootCmd
}
