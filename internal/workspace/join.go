package workspace

import (
	"strconv"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// JoinedFeature is a target point annotated with the number of join-layer
// polygons that contain it.
type JoinedFeature struct {
	X         float64
	Y         float64
	JoinCount int
	Attrs     map[string]string
}

// polygonRings holds one polygon's rings split by ESRI orientation: outer
// rings wind clockwise, holes counter-clockwise.
type polygonRings struct {
	outers [][]float64
	holes  [][]float64
}

func splitRings(p *shp.Polygon) polygonRings {
	var rings polygonRings
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		if len(flat) < 8 { // a closed ring needs at least 4 points
			continue
		}

		if xy.IsRingCounterClockwise(geom.XY, flat) {
			rings.holes = append(rings.holes, flat)
		} else {
			rings.outers = append(rings.outers, flat)
		}
	}
	return rings
}

func (r polygonRings) contains(c geom.Coord) bool {
	inOuter := false
	for _, ring := range r.outers {
		if xy.IsPointInRing(geom.XY, c, ring) {
			inOuter = true
			break
		}
	}
	if !inOuter {
		return false
	}
	for _, ring := range r.holes {
		if xy.IsPointInRing(geom.XY, c, ring) {
			return false
		}
	}
	return true
}

// SpatialJoin annotates every point of the target feature class with
// Join_Count: the number of polygons of the join feature class containing
// it. The count is also materialized as the Join_Count attribute so
// selection queries can reference it.
func (w *Workspace) SpatialJoin(targetName, joinName string) ([]JoinedFeature, error) {
	targets, err := w.ReadFeatures(targetName)
	if err != nil {
		return nil, err
	}
	joins, err := w.ReadFeatures(joinName)
	if err != nil {
		return nil, err
	}

	polys := make([]polygonRings, 0, len(joins))
	for _, jf := range joins {
		poly, ok := jf.Shape.(*shp.Polygon)
		if !ok {
			zap.L().Debug("workspace: join feature is not a polygon, skipping",
				zap.String("feature_class", joinName))
			continue
		}
		polys = append(polys, splitRings(poly))
	}
	if len(polys) == 0 {
		return nil, eris.Errorf("workspace: join feature class %s has no polygons", joinName)
	}

	results := make([]JoinedFeature, 0, len(targets))
	for _, tf := range targets {
		pt, ok := tf.Shape.(*shp.Point)
		if !ok {
			zap.L().Debug("workspace: target feature is not a point, skipping",
				zap.String("feature_class", targetName))
			continue
		}

		coord := geom.Coord{pt.X, pt.Y}
		count := 0
		for _, rings := range polys {
			if rings.contains(coord) {
				count++
			}
		}

		attrs := make(map[string]string, len(tf.Attrs)+1)
		for k, v := range tf.Attrs {
			attrs[k] = v
		}
		attrs["Join_Count"] = strconv.Itoa(count)

		results = append(results, JoinedFeature{
			X:         pt.X,
			Y:         pt.Y,
			JoinCount: count,
			Attrs:     attrs,
		})
	}

	return results, nil
}
