package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boulder-vcd/outbreak-cli/internal/workspace"
)

func docPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "boulder_wnv.yaml")
}

func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.New(t.TempDir(), 4326)
	require.NoError(t, err)
	return ws
}

// writePointLayer converts a CSV table into a point feature class, carrying
// every column as an attribute.
func writePointLayer(t *testing.T, ws *workspace.Workspace, name, csvContent string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0o644))
	_, err := ws.XYTableToPoint(context.Background(), path, name, "X", "Y")
	require.NoError(t, err)
}

// writeSquarePolygon writes a single clockwise 10x10 square with a NAME
// attribute.
func writeSquarePolygon(t *testing.T, ws *workspace.Workspace, name string) {
	t.Helper()
	w, err := shp.Create(ws.Path(name), shp.POLYGON)
	require.NoError(t, err)
	w.SetFields([]shp.Field{shp.StringField("NAME", 20)})

	ring := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	pl := shp.NewPolyLine([][]shp.Point{ring})
	poly := shp.Polygon(*pl)
	w.Write(&poly)
	require.NoError(t, w.WriteAttribute(0, 0, "spray zone"))
	w.Close()
}

func TestNewDefaultDocument(t *testing.T) {
	p := New(docPath(t))

	assert.Equal(t, "West Nile Virus Outbreak", p.Title)
	require.Len(t, p.Maps, 1)
	assert.Equal(t, 4326, p.Maps[0].SpatialReference)
	require.Len(t, p.Maps[0].Layers, 3)
	for _, layer := range p.Maps[0].Layers {
		assert.True(t, layer.Visible)
		assert.Equal(t, layer.Name, layer.Source)
	}
	require.Len(t, p.Layouts, 1)
	require.Len(t, p.Layouts[0].Frames, 1)
	assert.Equal(t, "Map", p.Layouts[0].Frames[0].Map)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := docPath(t)
	p := New(path)

	m, err := p.FirstMap()
	require.NoError(t, err)
	m.SpatialReference = 3743
	m.Extent = &Extent{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	layer := m.Layer("Final_Analysis_Layer")
	require.NotNil(t, layer)
	layer.DefinitionQuery = "Join_Count = 1"
	layer.Transparency = 50
	layer.Renderer = &Renderer{
		FillColor:    Color{R: 255, G: 0, B: 0, A: 100},
		OutlineColor: Color{R: 0, G: 0, B: 0, A: 100},
	}
	require.NoError(t, p.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.Title, loaded.Title)

	lm, err := loaded.FirstMap()
	require.NoError(t, err)
	assert.Equal(t, 3743, lm.SpatialReference)
	require.NotNil(t, lm.Extent)
	assert.Equal(t, *m.Extent, *lm.Extent)

	ll := lm.Layer("Final_Analysis_Layer")
	require.NotNil(t, ll)
	assert.Equal(t, "Join_Count = 1", ll.DefinitionQuery)
	assert.Equal(t, 50, ll.Transparency)
	require.NotNil(t, ll.Renderer)
	assert.Equal(t, Color{R: 255, G: 0, B: 0, A: 100}, ll.Renderer.FillColor)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedDocument(t *testing.T) {
	path := docPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestLoadOrInit(t *testing.T) {
	path := docPath(t)

	p, err := LoadOrInit(path)
	require.NoError(t, err)
	require.Len(t, p.Maps, 1)

	// The default document is persisted immediately.
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	// A second call loads the saved file rather than re-initializing.
	p.Title = "renamed"
	require.NoError(t, p.Save())
	again, err := LoadOrInit(path)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.Title)
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Color{R: 255, G: 0, B: 0, A: 100}.Hex())
	assert.Equal(t, "#000000", Color{A: 100}.Hex())
	assert.Equal(t, "#0a141e", Color{R: 10, G: 20, B: 30}.Hex())
}
