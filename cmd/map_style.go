package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/project"
)

var mapStyleTransparency int

var mapStyleCmd = &cobra.Command{
	Use:   "style",
	Short: "Apply the spray-zone renderer to the analysis layer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}

		if err := proj.ApplySimpleRenderer(cfg.Map.AnalysisLayer, project.DefaultAnalysisRenderer(), mapStyleTransparency); err != nil {
			return eris.Wrap(err, "map style")
		}

		fmt.Printf("renderer applied to %s\n", cfg.Map.AnalysisLayer)
		return nil
	},
}

func init() {
	mapStyleCmd.Flags().IntVar(&mapStyleTransparency, "transparency", 50, "layer transparency, 0-100")
	mapCmd.AddCommand(mapStyleCmd)
}
