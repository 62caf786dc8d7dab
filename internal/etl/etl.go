// Package etl implements the extract/transform/load workflow that turns a
// remote table of street addresses into a geocoded point feature class.
package etl

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/config"
	"github.com/boulder-vcd/outbreak-cli/internal/fetcher"
	"github.com/boulder-vcd/outbreak-cli/internal/model"
	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
	"github.com/boulder-vcd/outbreak-cli/pkg/geocode"
)

// Fixed convention names under the project directory.
const (
	RawFile         = "addresses.csv"
	TransformedFile = "new_addresses_Lab2.csv"
)

// RawPath returns the conventional location of the fetched source table.
func RawPath(projDir string) string {
	return filepath.Join(projDir, RawFile)
}

// TransformedPath returns the conventional location of the geocoded table.
func TransformedPath(projDir string) string {
	return filepath.Join(projDir, TransformedFile)
}

// Pipeline is the extract/transform/load contract. Each stage can be run on
// its own; Process runs all three in order and stops at the first failure.
type Pipeline interface {
	Extract(ctx context.Context) (*model.StageResult, error)
	Transform(ctx context.Context) (*model.StageResult, error)
	Load(ctx context.Context) (*model.StageResult, error)
	Process(ctx context.Context) (*model.RunResult, error)
}

// SheetsETL loads addresses published as a spreadsheet export: fetch the
// table, geocode each address, and load the matches as point features.
type SheetsETL struct {
	cfg      *config.Config
	fetcher  fetcher.Fetcher
	geocoder geocode.Client
	ws       *workspace.Workspace
}

var _ Pipeline = (*SheetsETL)(nil)

// NewSheetsETL creates the pipeline with all dependencies.
func NewSheetsETL(cfg *config.Config, f fetcher.Fetcher, g geocode.Client, ws *workspace.Workspace) *SheetsETL {
	return &SheetsETL{
		cfg:      cfg,
		fetcher:  f,
		geocoder: g,
		ws:       ws,
	}
}

// Process runs extract, transform, and load in order. The first failure
// stops the run; stages after it are reported as skipped, never executed.
func (e *SheetsETL) Process(ctx context.Context) (*model.RunResult, error) {
	result := model.NewRunResult()
	log := zap.L().With(zap.String("run_id", result.RunID))
	log.Info("etl: starting run", zap.String("url", e.cfg.ETL.RemoteURL))

	stages := []struct {
		name string
		fn   func(context.Context) (*model.StageResult, error)
	}{
		{model.StageExtract, e.Extract},
		{model.StageTransform, e.Transform},
		{model.StageLoad, e.Load},
	}

	var runErr error
	for _, stage := range stages {
		if runErr != nil {
			result.Stages = append(result.Stages, model.StageResult{
				Name:   stage.name,
				Status: model.StageStatusSkipped,
			})
			log.Warn("etl: stage skipped", zap.String("stage", stage.name))
			continue
		}

		start := time.Now()
		sr, err := stage.fn(ctx)
		duration := time.Since(start).Milliseconds()

		if sr == nil {
			sr = &model.StageResult{}
		}
		sr.Name = stage.name
		sr.Duration = duration

		if err != nil {
			sr.Status = model.StageStatusFailed
			sr.Error = err.Error()
			runErr = err
			log.Error("etl: stage failed",
				zap.String("stage", stage.name),
				zap.Int64("duration_ms", duration),
				zap.Error(err),
			)
		} else {
			sr.Status = model.StageStatusComplete
			log.Info("etl: stage complete",
				zap.String("stage", stage.name),
				zap.Int64("duration_ms", duration),
				zap.Int("count", sr.Count),
			)
		}

		result.Stages = append(result.Stages, *sr)
	}

	if runErr != nil {
		return result, runErr
	}

	log.Info("etl: run complete")
	return result, nil
}
