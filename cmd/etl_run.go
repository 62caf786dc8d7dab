package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var etlRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run extract, transform, and load in sequence",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, _, err := buildETL()
		if err != nil {
			return err
		}

		result, runErr := p.Process(ctx)
		printRunSummary(result)
		if runErr != nil {
			return eris.Wrap(runErr, "etl run")
		}
		return nil
	},
}

func init() { etlCmd.AddCommand(etlRunCmd) }
