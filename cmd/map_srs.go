package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var mapSRSWKID int

var mapSRSCmd = &cobra.Command{
	Use:   "srs",
	Short: "Set the map spatial reference",
	RunE: func(cmd *cobra.Command, _ []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}

		wkid := mapSRSWKID
		if wkid == 0 {
			wkid = cfg.Map.SRSWKID
		}

		if err := proj.SetSpatialReference(wkid); err != nil {
			return eris.Wrap(err, "map srs")
		}

		fmt.Printf("spatial reference set to %d\n", wkid)
		return nil
	},
}

func init() {
	mapSRSCmd.Flags().IntVar(&mapSRSWKID, "wkid", 0, "well-known id of the spatial reference (default map.srs_wkid)")
	mapCmd.AddCommand(mapSRSCmd)
}
