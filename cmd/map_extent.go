package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var mapExtentCmd = &cobra.Command{
	Use:   "extent",
	Short: "Zoom the map to the loaded data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		if err := proj.SetMapExtentToData(ws, cfg.Map.TargetLayer, cfg.Map.AnalysisLayer); err != nil {
			return eris.Wrap(err, "map extent")
		}

		m, err := proj.FirstMap()
		if err != nil {
			return err
		}
		ext := m.Extent
		fmt.Printf("map extent [%g %g %g %g]\n", ext.MinX, ext.MinY, ext.MaxX, ext.MaxY)
		return nil
	},
}

func init() { mapCmd.AddCommand(mapExtentCmd) }
