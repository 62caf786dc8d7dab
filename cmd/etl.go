package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/boulder-vcd/outbreak-cli/internal/etl"
	"github.com/boulder-vcd/outbreak-cli/internal/fetcher"
	"github.com/boulder-vcd/outbreak-cli/internal/model"
	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
	"github.com/boulder-vcd/outbreak-cli/pkg/geocode"
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Extract, transform, and load outbreak addresses",
	Long:  "Fetch the reported-address table, geocode each address, and load the matches as avoid points in the spatial workspace.",
}

func init() { rootCmd.AddCommand(etlCmd) }

// buildETL wires the pipeline from the loaded config.
func buildETL() (*etl.SheetsETL, *workspace.Workspace, error) {
	if err := cfg.Validate("etl"); err != nil {
		return nil, nil, err
	}

	ws, err := workspace.New(cfg.Workspace.Path, cfg.Workspace.SRSWKID)
	if err != nil {
		return nil, nil, err
	}

	f, err := fetcher.ForURL(cfg.ETL.RemoteURL, fetcher.HTTPOptions{}, fetcher.FTPOptions{})
	if err != nil {
		return nil, nil, err
	}

	gc := geocode.NewClient(cfg.Geocoder.PrefixURL, cfg.Geocoder.SuffixURL,
		geocode.WithTimeout(time.Duration(cfg.Geocoder.TimeoutSecs)*time.Second),
		geocode.WithUserAgent(cfg.Geocoder.UserAgent),
	)

	return etl.NewSheetsETL(cfg, f, gc, ws), ws, nil
}

// runSingleStage executes one pipeline stage and prints its result as JSON.
func runSingleStage(ctx context.Context, name string, fn func(context.Context) (*model.StageResult, error)) error {
	start := time.Now()
	result, err := fn(ctx)
	if err != nil {
		return eris.Wrapf(err, "etl %s", name)
	}
	result.Name = name
	result.Status = model.StageStatusComplete
	result.Duration = time.Since(start).Milliseconds()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
