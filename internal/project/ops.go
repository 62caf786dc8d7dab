package project

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
)

// DefaultAnalysisRenderer is the spray-zone symbology: red fill, black
// outline.
func DefaultAnalysisRenderer() Renderer {
	return Renderer{
		FillColor:    Color{R: 255, G: 0, B: 0, A: 100},
		OutlineColor: Color{R: 0, G: 0, B: 0, A: 100},
	}
}

// SetSpatialReference sets the first map's spatial reference and saves. The
// WKID must be in the spatial reference registry.
func (p *Project) SetSpatialReference(wkid int) error {
	sr, err := workspace.LookupSpatialReference(wkid)
	if err != nil {
		return err
	}
	m, err := p.FirstMap()
	if err != nil {
		return err
	}

	m.SpatialReference = wkid
	if err := p.Save(); err != nil {
		return err
	}

	zap.L().Info("project: spatial reference set",
		zap.Int("wkid", wkid),
		zap.String("name", sr.Name),
	)
	return nil
}

// ApplySimpleRenderer styles the named layer, sets its transparency, and
// forces it visible. A layer missing from the map logs a warning and leaves
// the document unchanged.
func (p *Project) ApplySimpleRenderer(layerName string, r Renderer, transparency int) error {
	m, err := p.FirstMap()
	if err != nil {
		return err
	}

	layer := m.Layer(layerName)
	if layer == nil {
		zap.L().Warn("project: layer not found, renderer not applied", zap.String("layer", layerName))
		return nil
	}

	layer.Renderer = &r
	layer.Transparency = transparency
	layer.Visible = true
	if err := p.Save(); err != nil {
		return err
	}

	zap.L().Info("project: renderer applied",
		zap.String("layer", layerName),
		zap.String("fill", r.FillColor.Hex()),
		zap.Int("transparency", transparency),
	)
	return nil
}

// ApplyDefinitionQuery restricts the named layer to joined rows. When the
// layer's feature class has no Join_Count field the query falls back to the
// match-all 1=1 with a warning. The map extent is refreshed afterward.
func (p *Project) ApplyDefinitionQuery(layerName string, ws *workspace.Workspace) error {
	m, err := p.FirstMap()
	if err != nil {
		return err
	}

	layer := m.Layer(layerName)
	if layer == nil {
		zap.L().Warn("project: layer not found, definition query not applied", zap.String("layer", layerName))
		return nil
	}

	fields, err := ws.ListFields(layer.Source)
	if err != nil {
		return eris.Wrapf(err, "project: list fields of %s", layer.Source)
	}

	query := "1=1"
	for _, f := range fields {
		if f.Name == "Join_Count" {
			query = "Join_Count = 1"
			break
		}
	}
	if query == "1=1" {
		zap.L().Warn("project: layer has no Join_Count field, using match-all query",
			zap.String("layer", layerName),
		)
	}

	layer.DefinitionQuery = query
	if err := p.SetMapExtentToData(ws, layerName); err != nil {
		return err
	}

	zap.L().Info("project: definition query applied",
		zap.String("layer", layerName),
		zap.String("query", query),
	)
	return nil
}

// SetMapExtentToData sets the first map's extent to the bounding box of the
// first usable candidate layer: named, visible, with its feature class
// present in the workspace. With no candidates every layer is considered in
// table-of-contents order. Saves on success; no usable layer is an error.
func (p *Project) SetMapExtentToData(ws *workspace.Workspace, candidates ...string) error {
	m, err := p.FirstMap()
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		for _, layer := range m.Layers {
			candidates = append(candidates, layer.Name)
		}
	}

	for _, name := range candidates {
		layer := m.Layer(name)
		if layer == nil || !layer.Visible || !ws.Exists(layer.Source) {
			continue
		}

		ext, err := ws.LayerExtent(layer.Source)
		if err != nil {
			return err
		}

		m.Extent = &Extent{MinX: ext.MinX, MinY: ext.MinY, MaxX: ext.MaxX, MaxY: ext.MaxY}
		if err := p.Save(); err != nil {
			return err
		}

		zap.L().Info("project: map extent set",
			zap.String("layer", layer.Name),
			zap.Float64("min_x", ext.MinX),
			zap.Float64("min_y", ext.MinY),
			zap.Float64("max_x", ext.MaxX),
			zap.Float64("max_y", ext.MaxY),
		)
		return nil
	}

	return eris.New("project: no visible layer with data to take an extent from")
}

// LayerDescription is one row of the layer info dump.
type LayerDescription struct {
	Name            string
	Visible         bool
	Source          string
	FeatureCount    int
	DefinitionQuery string
}

// LayerInfo describes every layer of the first map and logs each one.
// Feature counts are -1 when the layer's feature class is missing from the
// workspace.
func (p *Project) LayerInfo(ws *workspace.Workspace) ([]LayerDescription, error) {
	m, err := p.FirstMap()
	if err != nil {
		return nil, err
	}

	infos := make([]LayerDescription, 0, len(m.Layers))
	for _, layer := range m.Layers {
		count := -1
		if ws.Exists(layer.Source) {
			count, err = ws.FeatureCount(layer.Source)
			if err != nil {
				return nil, err
			}
		}

		infos = append(infos, LayerDescription{
			Name:            layer.Name,
			Visible:         layer.Visible,
			Source:          layer.Source,
			FeatureCount:    count,
			DefinitionQuery: layer.DefinitionQuery,
		})

		zap.L().Info("project: layer",
			zap.String("name", layer.Name),
			zap.Bool("visible", layer.Visible),
			zap.String("source", layer.Source),
			zap.Int("features", count),
			zap.String("definition_query", layer.DefinitionQuery),
		)
	}
	return infos, nil
}
