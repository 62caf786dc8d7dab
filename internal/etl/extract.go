package etl

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/fetcher"
	"github.com/boulder-vcd/outbreak-cli/internal/model"
)

// Extract fetches the remote address table into the project directory as
// addresses.csv. The download is all-or-nothing: a failed fetch leaves no
// file behind. When the source is an xlsx workbook the configured sheet is
// converted to CSV; the raw file on disk is always CSV.
func (e *SheetsETL) Extract(ctx context.Context) (*model.StageResult, error) {
	if err := os.MkdirAll(e.cfg.Project.Dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "etl: create project dir %s", e.cfg.Project.Dir)
	}

	rawPath := RawPath(e.cfg.Project.Dir)

	var (
		written int64
		err     error
	)
	switch e.cfg.ETL.DataFormat {
	case "xlsx":
		written, err = e.extractXLSX(ctx, rawPath)
	default:
		written, err = e.fetcher.DownloadToFile(ctx, e.cfg.ETL.RemoteURL, rawPath)
	}
	if err != nil {
		return nil, eris.Wrap(err, "etl: fetch remote table")
	}

	zap.L().Info("etl: raw table fetched",
		zap.String("url", e.cfg.ETL.RemoteURL),
		zap.String("path", rawPath),
		zap.Int64("bytes", written),
	)

	return &model.StageResult{
		Count:  int(written),
		Output: rawPath,
		Metadata: map[string]any{
			"url":    e.cfg.ETL.RemoteURL,
			"format": e.cfg.ETL.DataFormat,
		},
	}, nil
}

// extractXLSX downloads the workbook next to the raw table, converts the
// configured sheet to CSV, and discards the workbook.
func (e *SheetsETL) extractXLSX(ctx context.Context, rawPath string) (int64, error) {
	wbPath := filepath.Join(e.cfg.Project.Dir, "addresses.xlsx")
	if _, err := e.fetcher.DownloadToFile(ctx, e.cfg.ETL.RemoteURL, wbPath); err != nil {
		return 0, err
	}
	defer os.Remove(wbPath) //nolint:errcheck

	rows, err := fetcher.ReadXLSX(wbPath, fetcher.XLSXOptions{SheetName: e.cfg.ETL.XLSXSheet})
	if err != nil {
		return 0, err
	}

	if err := writeCSVAtomic(rawPath, rows); err != nil {
		return 0, err
	}

	info, err := os.Stat(rawPath)
	if err != nil {
		return 0, eris.Wrap(err, "etl: stat raw table")
	}
	return info.Size(), nil
}

// writeCSVAtomic writes rows to a temp file in the target directory and
// renames it into place, so a conversion failure leaves no partial file.
func writeCSVAtomic(path string, rows [][]string) error {
	dir, base := filepath.Dir(path), filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return eris.Wrapf(err, "etl: create temp file in %s", dir)
	}

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		return eris.Wrapf(err, "etl: write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return eris.Wrapf(err, "etl: close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return eris.Wrapf(err, "etl: rename temp file to %s", path)
	}
	return nil
}
