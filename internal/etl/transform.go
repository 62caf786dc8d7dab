package etl

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/fetcher"
	"github.com/boulder-vcd/outbreak-cli/internal/model"
)

// Transform geocodes every address in the raw table and writes the matches
// to new_addresses_Lab2.csv as X,Y,Type rows. Rows that fail to geocode or
// return no match are logged and dropped; they never fail the stage. Output
// rows keep the input order.
func (e *SheetsETL) Transform(ctx context.Context) (*model.StageResult, error) {
	rawPath := RawPath(e.cfg.Project.Dir)
	outPath := TransformedPath(e.cfg.Project.Dir)
	log := zap.L()

	in, err := os.Open(rawPath)
	if err != nil {
		return nil, eris.Wrapf(err, "etl: open raw table %s", rawPath)
	}
	defer in.Close() //nolint:errcheck

	rows, err := fetcher.NewRowReader(in, fetcher.CSVOptions{TrimSpace: true})
	if err != nil {
		return nil, eris.Wrap(err, "etl: read raw table")
	}
	if !rows.HasColumn(e.cfg.ETL.AddressColumn) {
		log.Warn("etl: raw table has no address column, every row will geocode empty",
			zap.String("column", e.cfg.ETL.AddressColumn),
			zap.Strings("header", rows.Header()),
		)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, eris.Wrapf(err, "etl: create output table %s", outPath)
	}
	defer out.Close() //nolint:errcheck

	w := csv.NewWriter(out)
	if err := w.Write([]string{"X", "Y", "Type"}); err != nil {
		return nil, eris.Wrap(err, "etl: write output header")
	}

	var total, matched, skipped int
	for {
		record, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "etl: read raw table line %d", rows.Line())
		}
		total++

		address := strings.TrimSpace(rows.Field(record, e.cfg.ETL.AddressColumn))
		oneLine := address + ", " + e.cfg.ETL.AddressSuffix

		res, err := e.geocoder.Geocode(ctx, oneLine)
		if err != nil {
			skipped++
			log.Warn("etl: geocode failed, dropping row",
				zap.String("address", oneLine),
				zap.Int("line", rows.Line()),
				zap.Error(err),
			)
			continue
		}
		if !res.Matched {
			skipped++
			log.Warn("etl: no geocode match, dropping row",
				zap.String("address", oneLine),
				zap.Int("line", rows.Line()),
			)
			continue
		}

		matched++
		if err := w.Write([]string{
			strconv.FormatFloat(res.X, 'f', -1, 64),
			strconv.FormatFloat(res.Y, 'f', -1, 64),
			model.PointTypeResidential,
		}); err != nil {
			return nil, eris.Wrap(err, "etl: write output row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, eris.Wrap(err, "etl: flush output table")
	}

	log.Info("etl: addresses geocoded",
		zap.Int("total", total),
		zap.Int("matched", matched),
		zap.Int("skipped", skipped),
		zap.String("path", outPath),
	)

	return &model.StageResult{
		Count:  matched,
		Output: outPath,
		Metadata: map[string]any{
			"total":   total,
			"matched": matched,
			"skipped": skipped,
		},
	}, nil
}
