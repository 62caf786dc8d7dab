package workspace

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/fetcher"
)

// dbf column names are limited to 10 characters.
const maxDBFNameLen = 10

// XYTableToPoint converts a CSV table with numeric coordinate columns into a
// point feature class. Every CSV column is carried as a DBF attribute:
// numeric columns become float fields, everything else character fields.
// A row whose coordinate values are missing or unparseable fails the whole
// conversion. Returns the number of features written.
func (w *Workspace) XYTableToPoint(ctx context.Context, csvPath, name, xField, yField string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, eris.Wrapf(err, "workspace: open table %s", csvPath)
	}
	defer f.Close()

	rr, err := fetcher.NewRowReader(f, fetcher.CSVOptions{TrimSpace: true})
	if err != nil {
		return 0, err
	}
	if !rr.HasColumn(xField) {
		return 0, eris.Errorf("workspace: table %s has no %q column", csvPath, xField)
	}
	if !rr.HasColumn(yField) {
		return 0, eris.Errorf("workspace: table %s has no %q column", csvPath, yField)
	}

	header := rr.Header()

	type pointRow struct {
		x, y   float64
		record []string
	}
	var rows []pointRow

	numeric := make([]bool, len(header))
	maxLen := make([]int, len(header))
	for i := range numeric {
		numeric[i] = true
	}

	for {
		record, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		x, err := strconv.ParseFloat(rr.Field(record, xField), 64)
		if err != nil {
			return 0, eris.Wrapf(err, "workspace: table %s line %d: bad %s value", csvPath, rr.Line(), xField)
		}
		y, err := strconv.ParseFloat(rr.Field(record, yField), 64)
		if err != nil {
			return 0, eris.Wrapf(err, "workspace: table %s line %d: bad %s value", csvPath, rr.Line(), yField)
		}

		for i := range header {
			val := ""
			if i < len(record) {
				val = record[i]
			}
			if len(val) > maxLen[i] {
				maxLen[i] = len(val)
			}
			if val == "" {
				continue
			}
			if _, parseErr := strconv.ParseFloat(val, 64); parseErr != nil {
				numeric[i] = false
			}
		}

		rows = append(rows, pointRow{x: x, y: y, record: record})
	}

	fields := make([]shp.Field, len(header))
	for i, col := range header {
		colName := col
		if len(colName) > maxDBFNameLen {
			colName = colName[:maxDBFNameLen]
		}
		if numeric[i] {
			fields[i] = shp.FloatField(colName, 24, 15)
		} else {
			length := maxLen[i]
			if length < 1 {
				length = 1
			}
			if length > 254 {
				length = 254
			}
			fields[i] = shp.StringField(colName, uint8(length))
		}
	}

	writer, err := shp.Create(w.Path(name), shp.POINT)
	if err != nil {
		return 0, eris.Wrapf(err, "workspace: create feature class %s", name)
	}
	writer.SetFields(fields)

	for n, row := range rows {
		if ctx.Err() != nil {
			writer.Close()
			return 0, eris.Wrap(ctx.Err(), "workspace: conversion cancelled")
		}

		writer.Write(&shp.Point{X: row.x, Y: row.y})

		for i := range header {
			val := ""
			if i < len(row.record) {
				val = row.record[i]
			}
			if err := w.writeAttribute(writer, n, i, val, numeric[i]); err != nil {
				writer.Close()
				return 0, eris.Wrapf(err, "workspace: write attribute %s row %d", header[i], n)
			}
		}
	}
	writer.Close()

	if err := w.writeProjection(name); err != nil {
		return 0, err
	}

	zap.L().Info("workspace: xy table converted",
		zap.String("table", csvPath),
		zap.String("feature_class", name),
		zap.Int("features", len(rows)),
	)

	return len(rows), nil
}

func (w *Workspace) writeAttribute(writer *shp.Writer, row, field int, val string, numeric bool) error {
	if numeric {
		parsed := 0.0
		if val != "" {
			parsed, _ = strconv.ParseFloat(val, 64)
		}
		return writer.WriteAttribute(row, field, parsed)
	}
	return writer.WriteAttribute(row, field, val)
}

// writeProjection writes the .prj sidecar carrying the workspace spatial
// reference WKT.
func (w *Workspace) writeProjection(name string) error {
	prjPath := filepath.Join(w.dir, name+".prj")
	if err := os.WriteFile(prjPath, []byte(w.srs.WKT), 0o644); err != nil {
		return eris.Wrapf(err, "workspace: write projection %s", name)
	}
	return nil
}
