package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var mapQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Apply the joined-rows definition query to the analysis layer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		ws, err := openWorkspace()
		if err != nil {
			return err
		}

		if err := proj.ApplyDefinitionQuery(cfg.Map.AnalysisLayer, ws); err != nil {
			return eris.Wrap(err, "map query")
		}

		fmt.Printf("definition query applied to %s\n", cfg.Map.AnalysisLayer)
		return nil
	},
}

func init() { mapCmd.AddCommand(mapQueryCmd) }
