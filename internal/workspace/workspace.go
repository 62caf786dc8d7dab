// Package workspace implements a flat-file spatial workspace backed by ESRI
// shapefiles: point feature-class creation from XY tables, field listing,
// feature counts, extents, and point-in-polygon joins.
package workspace

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
)

// Workspace is a directory of shapefile feature classes sharing one spatial
// reference.
type Workspace struct {
	dir string
	srs SpatialReference
}

// New opens (creating if needed) a workspace directory with the given
// spatial reference.
func New(dir string, wkid int) (*Workspace, error) {
	sr, err := LookupSpatialReference(wkid)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "workspace: create %s", dir)
	}
	return &Workspace{dir: dir, srs: sr}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// SpatialReference returns the workspace spatial reference.
func (w *Workspace) SpatialReference() SpatialReference {
	return w.srs
}

// Path returns the .shp path of a named feature class.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name+".shp")
}

// Exists reports whether the named feature class exists.
func (w *Workspace) Exists(name string) bool {
	_, err := os.Stat(w.Path(name))
	return err == nil
}

// Feature is one shapefile record: its geometry plus DBF attributes keyed by
// field name.
type Feature struct {
	Shape shp.Shape
	Attrs map[string]string
}

// ReadFeatures loads every record of the named feature class. Values of
// numeric DBF fields are normalized to their shortest decimal form so the
// fixed-precision padding the format stores does not leak into attributes.
func (w *Workspace) ReadFeatures(name string) ([]Feature, error) {
	reader, err := shp.Open(w.Path(name))
	if err != nil {
		return nil, eris.Wrapf(err, "workspace: open feature class %s", name)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	numeric := make([]bool, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
		numeric[i] = f.Fieldtype == 'F' || f.Fieldtype == 'N'
	}

	var features []Feature
	for reader.Next() {
		_, shape := reader.Shape()

		attrs := make(map[string]string, len(names))
		for i, fieldName := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if numeric[i] && val != "" {
				if parsed, parseErr := strconv.ParseFloat(val, 64); parseErr == nil {
					val = strconv.FormatFloat(parsed, 'f', -1, 64)
				}
			}
			attrs[fieldName] = val
		}

		features = append(features, Feature{Shape: shape, Attrs: attrs})
	}

	return features, nil
}

// FeatureCount returns the number of records in the named feature class.
func (w *Workspace) FeatureCount(name string) (int, error) {
	reader, err := shp.Open(w.Path(name))
	if err != nil {
		return 0, eris.Wrapf(err, "workspace: open feature class %s", name)
	}
	defer func() { _ = reader.Close() }()

	count := 0
	for reader.Next() {
		count++
	}
	return count, nil
}

// Extent is a bounding box in workspace coordinates.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// LayerExtent returns the bounding box of the named feature class from the
// shapefile header.
func (w *Workspace) LayerExtent(name string) (Extent, error) {
	reader, err := shp.Open(w.Path(name))
	if err != nil {
		return Extent{}, eris.Wrapf(err, "workspace: open feature class %s", name)
	}
	defer func() { _ = reader.Close() }()

	box := reader.BBox()
	return Extent{MinX: box.MinX, MinY: box.MinY, MaxX: box.MaxX, MaxY: box.MaxY}, nil
}
