package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := New(t.TempDir(), 4326)
	require.NoError(t, err)
	return ws
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// squareCW returns a closed clockwise square ring, the ESRI outer-ring
// orientation.
func squareCW(minX, minY, size float64) []shp.Point {
	return []shp.Point{
		{X: minX, Y: minY},
		{X: minX, Y: minY + size},
		{X: minX + size, Y: minY + size},
		{X: minX + size, Y: minY},
		{X: minX, Y: minY},
	}
}

// squareCCW returns a closed counter-clockwise square ring, the ESRI hole
// orientation.
func squareCCW(minX, minY, size float64) []shp.Point {
	return []shp.Point{
		{X: minX, Y: minY},
		{X: minX + size, Y: minY},
		{X: minX + size, Y: minY + size},
		{X: minX, Y: minY + size},
		{X: minX, Y: minY},
	}
}

// writePolygonFixture writes a polygon feature class where each element of
// features is one polygon built from its rings, with a NAME attribute.
func writePolygonFixture(t *testing.T, ws *Workspace, name string, features [][][]shp.Point) {
	t.Helper()

	writer, err := shp.Create(ws.Path(name), shp.POLYGON)
	require.NoError(t, err)
	writer.SetFields([]shp.Field{shp.StringField("NAME", 20)})

	for n, rings := range features {
		pl := shp.NewPolyLine(rings)
		poly := shp.Polygon(*pl)
		writer.Write(&poly)
		require.NoError(t, writer.WriteAttribute(n, 0, "poly"+strings.Repeat("x", n)))
	}
	writer.Close()
}
