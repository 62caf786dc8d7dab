package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/model"
)

var etlExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fetch the remote address table into the project directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, _, err := buildETL()
		if err != nil {
			return err
		}
		return runSingleStage(ctx, model.StageExtract, p.Extract)
	},
}

func init() { etlCmd.AddCommand(etlExtractCmd) }
