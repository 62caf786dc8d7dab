package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	mapExportSubtitle string
	mapExportOut      string
)

var mapExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the styled map layout as GeoJSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		out := mapExportOut
		if out == "" {
			out = filepath.Join(cfg.Project.Dir, cfg.Map.ExportName)
		}

		count, err := proj.ExportLayout(ws, mapExportSubtitle, out)
		if err != nil {
			return eris.Wrap(err, "map export")
		}

		fmt.Printf("exported %d features to %s\n", count, out)
		return nil
	},
}

func init() {
	mapExportCmd.Flags().StringVar(&mapExportSubtitle, "subtitle", "", "subtitle appended to the layout title")
	mapExportCmd.Flags().StringVar(&mapExportOut, "out", "", "output path (default <project.dir>/<map.export_name>)")
	mapCmd.AddCommand(mapExportCmd)
}
