package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the spraying-address report",
	Long:  "Spatial-join the target addresses against the analysis zones and write the addresses matching the configured query.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("report"); err != nil {
			return err
		}
		proj, err := loadProject()
		if err != nil {
			return err
		}
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		count, err := report.Generate(ctx, cfg, ws, proj)
		if err != nil {
			return eris.Wrap(err, "report")
		}

		fmt.Printf("%d spraying addresses written to %s\n", count, filepath.Join(cfg.Project.Dir, cfg.Report.Name))
		return nil
	},
}

func init() { rootCmd.AddCommand(reportCmd) }
