package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-ask/internal/app"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List registered models",
		Long:  `List the models the registry knows and the provider each one is sent to.`,
		Args:  cobra.NoArgs,
		RunE:  runModels,
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	reg, err := app.NewRegistry(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	defaultModel := reg.DefaultModel()
	for _, m := range reg.Models() {
		marker := " "
		if m.Name == defaultModel {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-20s %s\n", marker, m.Name, m.Provider)
	}
	return nil
}
