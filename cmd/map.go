package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/project"
	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Operate on the outbreak map project",
	Long:  "Set the spatial reference, style layers, apply definition queries, inspect layers, and export the layout.",
}

func init() { rootCmd.AddCommand(mapCmd) }

func openWorkspace() (*workspace.Workspace, error) {
	return workspace.New(cfg.Workspace.Path, cfg.Workspace.SRSWKID)
}

func loadProject() (*project.Project, error) {
	if err := cfg.Validate("map"); err != nil {
		return nil, err
	}
	return project.LoadOrInit(filepath.Join(cfg.Project.Dir, cfg.Project.File))
}
