// Package report writes the spraying-address report: target addresses that
// fall inside the analysis zones, selected by the configured query.
package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/config"
	"github.com/boulder-vcd/outbreak-cli/internal/project"
	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
)

// Generate spatial-joins the target layer against the analysis layer,
// filters the joined rows with report.query, and writes the configured
// fields to <project.dir>/<report.name>. Returns the written row count.
func Generate(ctx context.Context, cfg *config.Config, ws *workspace.Workspace, proj *project.Project) (int, error) {
	m, err := proj.FirstMap()
	if err != nil {
		return 0, err
	}

	target := m.Layer(cfg.Map.TargetLayer)
	if target == nil {
		return 0, eris.Errorf("report: target layer %s not in project", cfg.Map.TargetLayer)
	}
	analysis := m.Layer(cfg.Map.AnalysisLayer)
	if analysis == nil {
		return 0, eris.Errorf("report: analysis layer %s not in project", cfg.Map.AnalysisLayer)
	}

	joined, err := ws.SpatialJoin(target.Source, analysis.Source)
	if err != nil {
		return 0, eris.Wrap(err, "report: spatial join")
	}

	// Warn once per configured field the joined rows do not carry.
	if len(joined) > 0 {
		for _, name := range cfg.Report.Fields {
			if _, ok := joined[0].Attrs[name]; !ok {
				zap.L().Warn("report: field missing from joined layer, emitting empty",
					zap.String("field", name),
				)
			}
		}
	}

	outPath := filepath.Join(cfg.Project.Dir, cfg.Report.Name)
	out, err := os.Create(outPath)
	if err != nil {
		return 0, eris.Wrapf(err, "report: create %s", outPath)
	}
	defer out.Close() //nolint:errcheck

	w := csv.NewWriter(out)
	if err := w.Write(cfg.Report.Fields); err != nil {
		return 0, eris.Wrap(err, "report: write header")
	}

	count := 0
	for _, feature := range joined {
		if err := ctx.Err(); err != nil {
			return 0, eris.Wrap(err, "report: cancelled")
		}

		keep, err := workspace.EvaluateQuery(cfg.Report.Query, feature.Attrs)
		if err != nil {
			return 0, eris.Wrap(err, "report: evaluate query")
		}
		if !keep {
			continue
		}

		record := make([]string, len(cfg.Report.Fields))
		for i, name := range cfg.Report.Fields {
			record[i] = feature.Attrs[name]
		}
		if err := w.Write(record); err != nil {
			return 0, eris.Wrap(err, "report: write row")
		}
		count++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, eris.Wrap(err, "report: flush")
	}

	zap.L().Info("report: written",
		zap.String("path", outPath),
		zap.String("query", cfg.Report.Query),
		zap.Int("rows", count),
	)
	return count, nil
}
