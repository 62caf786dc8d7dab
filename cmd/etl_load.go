package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/model"
)

var etlLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the geocoded table as a point feature class",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, _, err := buildETL()
		if err != nil {
			return err
		}
		return runSingleStage(ctx, model.StageLoad, p.Load)
	},
}

func init() { etlCmd.AddCommand(etlLoadCmd) }
