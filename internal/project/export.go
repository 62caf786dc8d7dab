package project

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
)

// ExportLayout writes the first layout as a GeoJSON FeatureCollection: every
// visible layer of each framed map, definition queries applied, simplestyle
// properties derived from the layer symbology. A non-empty subtitle is
// appended to the layout title as " - <subtitle>" and persisted with the
// refreshed frame extents. Returns the number of exported features.
func (p *Project) ExportLayout(ws *workspace.Workspace, subtitle, outPath string) (int, error) {
	if len(p.Layouts) == 0 {
		return 0, eris.New("project: document has no layouts")
	}
	layout := &p.Layouts[0]

	if subtitle != "" {
		layout.Title = layout.Title + " - " + subtitle
	}

	for i := range layout.Frames {
		if m := p.Map(layout.Frames[i].Map); m != nil {
			layout.Frames[i].Extent = m.Extent
		}
	}

	fc := &geojson.FeatureCollection{}
	for _, frame := range layout.Frames {
		m := p.Map(frame.Map)
		if m == nil {
			zap.L().Warn("project: layout frame references unknown map", zap.String("map", frame.Map))
			continue
		}

		for _, layer := range m.Layers {
			if !layer.Visible || !ws.Exists(layer.Source) {
				continue
			}

			features, err := ws.ReadFeatures(layer.Source)
			if err != nil {
				return 0, err
			}

			for _, f := range features {
				if layer.DefinitionQuery != "" {
					keep, err := workspace.EvaluateQuery(layer.DefinitionQuery, f.Attrs)
					if err != nil {
						return 0, eris.Wrapf(err, "project: evaluate query on layer %s", layer.Name)
					}
					if !keep {
						continue
					}
				}

				g := workspace.ShapeGeometry(f.Shape, m.SpatialReference)
				if g == nil {
					zap.L().Debug("project: skipping feature with unsupported geometry",
						zap.String("layer", layer.Name))
					continue
				}

				fc.Features = append(fc.Features, &geojson.Feature{
					Geometry:   g,
					Properties: featureProperties(layout.Title, layer, f.Attrs),
				})
			}
		}
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return 0, eris.Wrap(err, "project: encode layout")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return 0, eris.Wrapf(err, "project: write %s", outPath)
	}

	if err := p.Save(); err != nil {
		return 0, err
	}

	zap.L().Info("project: layout exported",
		zap.String("path", outPath),
		zap.String("title", layout.Title),
		zap.Int("features", len(fc.Features)),
	)
	return len(fc.Features), nil
}

// featureProperties merges the source attributes with simplestyle keys
// derived from the layer symbology. Styling keys win on collision.
func featureProperties(title string, layer Layer, attrs map[string]string) map[string]any {
	props := make(map[string]any, len(attrs)+5)
	for k, v := range attrs {
		props[k] = v
	}

	props["layer"] = layer.Name
	props["title"] = title
	if r := layer.Renderer; r != nil {
		props["fill"] = r.FillColor.Hex()
		props["stroke"] = r.OutlineColor.Hex()
		props["fill-opacity"] = opacity(layer.Transparency)
	}
	return props
}

// opacity converts 0-100 transparency to simplestyle 0-1 opacity.
func opacity(transparency int) float64 {
	return 1 - float64(transparency)/100
}
