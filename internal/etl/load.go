package etl

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/model"
	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
)

// Load converts the geocoded table into the configured point feature class,
// replacing any previous run. On failure the input table schema is dumped to
// the log.
func (e *SheetsETL) Load(ctx context.Context) (*model.StageResult, error) {
	outPath := TransformedPath(e.cfg.Project.Dir)
	name := e.cfg.Workspace.FeatureClass

	count, err := e.ws.XYTableToPoint(ctx, outPath, name, "X", "Y")
	if err != nil {
		e.logTableFields(outPath)
		return nil, eris.Wrapf(err, "etl: load feature class %s", name)
	}

	zap.L().Info("etl: features loaded",
		zap.String("feature_class", name),
		zap.String("path", e.ws.Path(name)),
		zap.Int("count", count),
	)

	return &model.StageResult{
		Count:  count,
		Output: e.ws.Path(name),
		Metadata: map[string]any{
			"feature_class": name,
		},
	}, nil
}

func (e *SheetsETL) logTableFields(path string) {
	fields, err := workspace.ListCSVFields(path)
	if err != nil {
		zap.L().Warn("etl: could not inspect input table",
			zap.String("table", path),
			zap.Error(err),
		)
		return
	}
	for _, f := range fields {
		zap.L().Error("etl: input table field",
			zap.String("table", path),
			zap.String("name", f.Name),
			zap.String("type", f.Type),
			zap.Int("length", f.Length),
		)
	}
}
