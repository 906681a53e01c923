package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/janhq/jan-ask/internal/app"
	"github.com/janhq/jan-ask/internal/config"
	"github.com/janhq/jan-ask/internal/domain/ask"
	"github.com/janhq/jan-ask/internal/infrastructure/logger"
)

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	useReddit, _ := cmd.Flags().GetBool("reddit")
	useDuckDuckGo, _ := cmd.Flags().GetBool("duckduckgo")
	raw, _ := cmd.Flags().GetBool("raw")

	svc, _, err := app.NewAskService(cfg, log)
	if err != nil {
		return err
	}

	resp := svc.Ask(cmd.Context(), ask.Request{
		Input:         strings.Join(args, " "),
		Model:         model,
		UseReddit:     useReddit,
		UseDuckDuckGo: useDuckDuckGo,
	})
	if !resp.Answered() {
		return fmt.Errorf("%s", resp.Message)
	}

	out := cmd.OutOrStdout()
	if raw {
		fmt.Fprintln(out, resp.Markdown)
	} else {
		fmt.Fprintln(out, resp.HTML)
	}
	for _, thread := range resp.Threads {
		fmt.Fprintf(out, "- %s (r/%s) %s\n", thread.Title, thread.Subreddit, thread.URL)
	}
	return nil
}

// setup loads configuration and builds a logger on stderr so that stdout
// carries only the answer.
func setup() (*config.Config, zerolog.Logger, error) {
	loadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logger.Build(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	app.WarnMissingKeys(cfg, log)
	return cfg, log, nil
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
