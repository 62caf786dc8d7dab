package workspace

import (
	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// ShapeGeometry converts a shapefile shape to a go-geom geometry. Returns
// nil for unsupported or degenerate shapes.
func ShapeGeometry(shape shp.Shape, srid int) geom.T {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}).SetSRID(srid)

	case *shp.PolyLine:
		return polyLineToMultiLineString(s, srid)

	case *shp.Polygon:
		return polygonToMultiPolygon(s, srid)

	default:
		return nil
	}
}

// polyLineToMultiLineString converts a shapefile PolyLine to a geom.MultiLineString.
func polyLineToMultiLineString(pl *shp.PolyLine, srid int) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY).SetSRID(srid)

	for i := int32(0); i < pl.NumParts; i++ {
		start := pl.Parts[i]
		end := int32(len(pl.Points))
		if i+1 < pl.NumParts {
			end = pl.Parts[i+1]
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, pl.Points[j].X, pl.Points[j].Y)
		}

		ls := geom.NewLineStringFlat(geom.XY, flat)
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("workspace: skipping malformed linestring part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon,
// attaching each counter-clockwise ring as a hole of the outer ring that
// contains it.
func polygonToMultiPolygon(p *shp.Polygon, srid int) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	rings := splitRings(p)
	if len(rings.outers) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)

	for i, outer := range rings.outers {
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, outer)); err != nil {
			zap.L().Debug("workspace: skipping malformed polygon ring", zap.Int("part", i), zap.Error(err))
			continue
		}

		for _, hole := range rings.holes {
			if !xy.IsPointInRing(geom.XY, geom.Coord{hole[0], hole[1]}, outer) {
				continue
			}
			if err := poly.Push(geom.NewLinearRingFlat(geom.XY, hole)); err != nil {
				zap.L().Debug("workspace: skipping malformed polygon hole", zap.Error(err))
			}
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("workspace: skipping malformed polygon part", zap.Int("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
