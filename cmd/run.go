package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/model"
	"github.com/boulder-vcd/outbreak-cli/internal/project"
	"github.com/boulder-vcd/outbreak-cli/internal/report"
)

var runSubtitle string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full outbreak workflow",
	Long:  "Runs etl, spatial reference, renderer, layer info, definition query, map extent, layout export, and the spraying-address report, in order. A failed step skips everything after it.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("report"); err != nil {
			return err
		}

		p, ws, err := buildETL()
		if err != nil {
			return err
		}
		proj, err := loadProject()
		if err != nil {
			return err
		}

		result, runErr := p.Process(ctx)
		printRunSummary(result)

		steps := []struct {
			name string
			fn   func() (string, error)
		}{
			{"set spatial reference", func() (string, error) {
				if err := proj.SetSpatialReference(cfg.Map.SRSWKID); err != nil {
					return "", err
				}
				return fmt.Sprintf("wkid=%d", cfg.Map.SRSWKID), nil
			}},
			{"apply renderer", func() (string, error) {
				if err := proj.ApplySimpleRenderer(cfg.Map.AnalysisLayer, project.DefaultAnalysisRenderer(), 50); err != nil {
					return "", err
				}
				return cfg.Map.AnalysisLayer, nil
			}},
			{"layer info", func() (string, error) {
				infos, err := proj.LayerInfo(ws)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%d layers", len(infos)), nil
			}},
			{"definition query", func() (string, error) {
				if err := proj.ApplyDefinitionQuery(cfg.Map.AnalysisLayer, ws); err != nil {
					return "", err
				}
				return cfg.Map.AnalysisLayer, nil
			}},
			{"map extent", func() (string, error) {
				if err := proj.SetMapExtentToData(ws, cfg.Map.TargetLayer, cfg.Map.AnalysisLayer); err != nil {
					return "", err
				}
				return "", nil
			}},
			{"export layout", func() (string, error) {
				out := filepath.Join(cfg.Project.Dir, cfg.Map.ExportName)
				count, err := proj.ExportLayout(ws, runSubtitle, out)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%d features to %s", count, out), nil
			}},
			{"report", func() (string, error) {
				count, err := report.Generate(ctx, cfg, ws, proj)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%d addresses", count), nil
			}},
		}

		failed := runErr != nil
		firstErr := runErr
		for _, step := range steps {
			if failed {
				fmt.Printf("  %-22s skipped\n", step.name)
				zap.L().Warn("run: step skipped", zap.String("step", step.name))
				continue
			}

			zap.L().Info("run: entering step", zap.String("step", step.name))
			detail, err := step.fn()
			if err != nil {
				failed = true
				firstErr = err
				fmt.Printf("  %-22s failed: %v\n", step.name, err)
				zap.L().Error("run: step failed", zap.String("step", step.name), zap.Error(err))
				continue
			}
			zap.L().Info("run: exiting step", zap.String("step", step.name))

			if detail != "" {
				fmt.Printf("  %-22s ok  %s\n", step.name, detail)
			} else {
				fmt.Printf("  %-22s ok\n", step.name)
			}
		}

		if firstErr != nil {
			return eris.Wrap(firstErr, "run")
		}

		fmt.Println("workflow complete")
		return nil
	},
}

// printRunSummary prints one line per pipeline stage.
func printRunSummary(result *model.RunResult) {
	fmt.Printf("run %s\n", result.RunID)
	for _, s := range result.Stages {
		switch s.Status {
		case model.StageStatusComplete:
			fmt.Printf("  %-22s %s  count=%d duration=%dms\n", s.Name, s.Status, s.Count, s.Duration)
		case model.StageStatusFailed:
			fmt.Printf("  %-22s %s  %s\n", s.Name, s.Status, s.Error)
		default:
			fmt.Printf("  %-22s %s\n", s.Name, s.Status)
		}
	}
}

func init() {
	runCmd.Flags().StringVar(&runSubtitle, "subtitle", "", "subtitle appended to the exported layout title")
	rootCmd.AddCommand(runCmd)
}
