package workspace

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/boulder-vcd/outbreak-cli/internal/fetcher"
)

// FieldInfo describes one column of a table or feature class, for diagnostic
// listings.
type FieldInfo struct {
	Name   string
	Type   string
	Length int
}

// ListFields returns the DBF schema of the named feature class.
func (w *Workspace) ListFields(name string) ([]FieldInfo, error) {
	reader, err := shp.Open(w.Path(name))
	if err != nil {
		return nil, eris.Wrapf(err, "workspace: open feature class %s", name)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	infos := make([]FieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = FieldInfo{
			Name:   strings.TrimRight(f.String(), "\x00"),
			Type:   dbfTypeName(f.Fieldtype),
			Length: int(f.Size),
		}
	}
	return infos, nil
}

func dbfTypeName(t byte) string {
	switch t {
	case 'C':
		return "String"
	case 'N':
		return "Integer"
	case 'F':
		return "Double"
	case 'D':
		return "Date"
	case 'L':
		return "Boolean"
	default:
		return string(t)
	}
}

// ListCSVFields inspects a CSV table and reports each column's name, inferred
// type, and maximum value length. A column is Double when every non-empty
// value parses as a number, String otherwise.
func ListCSVFields(path string) ([]FieldInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "workspace: open table %s", path)
	}
	defer f.Close()

	rr, err := fetcher.NewRowReader(f, fetcher.CSVOptions{TrimSpace: true})
	if err != nil {
		return nil, err
	}

	header := rr.Header()
	infos := make([]FieldInfo, len(header))
	numeric := make([]bool, len(header))
	for i, name := range header {
		infos[i] = FieldInfo{Name: name, Type: "Double"}
		numeric[i] = true
	}

	for {
		record, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i := range infos {
			if i >= len(record) {
				continue
			}
			val := record[i]
			if len(val) > infos[i].Length {
				infos[i].Length = len(val)
			}
			if val == "" {
				continue
			}
			if _, parseErr := strconv.ParseFloat(val, 64); parseErr != nil {
				numeric[i] = false
			}
		}
	}

	for i := range infos {
		if !numeric[i] {
			infos[i].Type = "String"
		}
	}

	return infos, nil
}
