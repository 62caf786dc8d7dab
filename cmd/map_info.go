package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var mapInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "List the map layers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		infos, err := proj.LayerInfo(ws)
		if err != nil {
			return eris.Wrap(err, "map info")
		}

		fmt.Println("=== Layers ===")
		for _, li := range infos {
			visibility := "hidden"
			if li.Visible {
				visibility = "visible"
			}
			features := "no data"
			if li.FeatureCount >= 0 {
				features = fmt.Sprintf("%d features", li.FeatureCount)
			}

			fmt.Printf("  %-22s %-8s %-12s source=%s", li.Name, visibility, features, li.Source)
			if li.DefinitionQuery != "" {
				fmt.Printf(" query=%q", li.DefinitionQuery)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() { mapCmd.AddCommand(mapInfoCmd) }
