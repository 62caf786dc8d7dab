package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/model"
)

var etlTransformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Geocode the fetched addresses into an X,Y,Type table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		p, _, err := buildETL()
		if err != nil {
			return err
		}
		return runSingleStage(ctx, model.StageTransform, p.Transform)
	},
}

func init() { etlCmd.AddCommand(etlTransformCmd) }
