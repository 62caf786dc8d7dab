package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSpatialReference(t *testing.T) {
	path := docPath(t)
	p := New(path)

	require.NoError(t, p.SetSpatialReference(3743))

	loaded, err := Load(path)
	require.NoError(t, err)
	m, err := loaded.FirstMap()
	require.NoError(t, err)
	assert.Equal(t, 3743, m.SpatialReference)
}

func TestSetSpatialReferenceUnknownWKID(t *testing.T) {
	p := New(docPath(t))

	err := p.SetSpatialReference(99999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown spatial reference")
}

func TestApplySimpleRenderer(t *testing.T) {
	path := docPath(t)
	p := New(path)
	m, err := p.FirstMap()
	require.NoError(t, err)
	m.Layer("Final_Analysis_Layer").Visible = false

	require.NoError(t, p.ApplySimpleRenderer("Final_Analysis_Layer", DefaultAnalysisRenderer(), 50))

	loaded, err := Load(path)
	require.NoError(t, err)
	lm, err := loaded.FirstMap()
	require.NoError(t, err)
	layer := lm.Layer("Final_Analysis_Layer")
	require.NotNil(t, layer)
	assert.True(t, layer.Visible)
	assert.Equal(t, 50, layer.Transparency)
	require.NotNil(t, layer.Renderer)
	assert.Equal(t, Color{R: 255, G: 0, B: 0, A: 100}, layer.Renderer.FillColor)
	assert.Equal(t, Color{R: 0, G: 0, B: 0, A: 100}, layer.Renderer.OutlineColor)
}

func TestApplySimpleRendererMissingLayer(t *testing.T) {
	path := docPath(t)
	p := New(path)

	// Missing layer is a warning, not an error, and nothing is saved.
	require.NoError(t, p.ApplySimpleRenderer("No_Such_Layer", DefaultAnalysisRenderer(), 50))

	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyDefinitionQueryJoinCount(t *testing.T) {
	ws := newTestWorkspace(t)
	writePointLayer(t, ws, "Final_Analysis_Layer", "X,Y,Join_Count\n1,2,1\n3,4,0\n")

	path := docPath(t)
	p := New(path)

	require.NoError(t, p.ApplyDefinitionQuery("Final_Analysis_Layer", ws))

	loaded, err := Load(path)
	require.NoError(t, err)
	m, err := loaded.FirstMap()
	require.NoError(t, err)
	assert.Equal(t, "Join_Count = 1", m.Layer("Final_Analysis_Layer").DefinitionQuery)

	// The map extent was refreshed from the layer data.
	require.NotNil(t, m.Extent)
	assert.InDelta(t, 1.0, m.Extent.MinX, 1e-9)
	assert.InDelta(t, 4.0, m.Extent.MaxY, 1e-9)
}

func TestApplyDefinitionQueryFallback(t *testing.T) {
	ws := newTestWorkspace(t)
	writePointLayer(t, ws, "Final_Analysis_Layer", "X,Y\n1,2\n")

	p := New(docPath(t))

	require.NoError(t, p.ApplyDefinitionQuery("Final_Analysis_Layer", ws))

	m, err := p.FirstMap()
	require.NoError(t, err)
	assert.Equal(t, "1=1", m.Layer("Final_Analysis_Layer").DefinitionQuery)
}

func TestApplyDefinitionQueryMissingLayer(t *testing.T) {
	ws := newTestWorkspace(t)
	p := New(docPath(t))

	require.NoError(t, p.ApplyDefinitionQuery("No_Such_Layer", ws))
}

func TestSetMapExtentToDataCandidateOrder(t *testing.T) {
	ws := newTestWorkspace(t)
	writePointLayer(t, ws, "Target_Addresses", "X,Y\n0,0\n5,5\n")
	writePointLayer(t, ws, "Final_Analysis_Layer", "X,Y\n100,100\n200,200\n")

	p := New(docPath(t))

	require.NoError(t, p.SetMapExtentToData(ws, "Target_Addresses", "Final_Analysis_Layer"))

	m, err := p.FirstMap()
	require.NoError(t, err)
	require.NotNil(t, m.Extent)
	assert.InDelta(t, 0.0, m.Extent.MinX, 1e-9)
	assert.InDelta(t, 5.0, m.Extent.MaxX, 1e-9)
}

func TestSetMapExtentToDataFallsPastMissingCandidate(t *testing.T) {
	ws := newTestWorkspace(t)
	writePointLayer(t, ws, "Final_Analysis_Layer", "X,Y\n100,100\n200,200\n")

	p := New(docPath(t))

	require.NoError(t, p.SetMapExtentToData(ws, "Target_Addresses", "Final_Analysis_Layer"))

	m, err := p.FirstMap()
	require.NoError(t, err)
	require.NotNil(t, m.Extent)
	assert.InDelta(t, 100.0, m.Extent.MinX, 1e-9)
	assert.InDelta(t, 200.0, m.Extent.MaxY, 1e-9)
}

func TestSetMapExtentToDataNoUsableLayer(t *testing.T) {
	ws := newTestWorkspace(t)
	p := New(docPath(t))

	err := p.SetMapExtentToData(ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no visible layer")
}

func TestLayerInfo(t *testing.T) {
	ws := newTestWorkspace(t)
	writePointLayer(t, ws, "avoid_points", "X,Y,Type\n1,2,Residential\n3,4,Residential\n")

	p := New(docPath(t))
	m, err := p.FirstMap()
	require.NoError(t, err)
	m.Layer("avoid_points").DefinitionQuery = "Type = 'Residential'"

	infos, err := p.LayerInfo(ws)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, "avoid_points", infos[0].Name)
	assert.Equal(t, 2, infos[0].FeatureCount)
	assert.Equal(t, "Type = 'Residential'", infos[0].DefinitionQuery)

	// Layers without data report -1.
	assert.Equal(t, "Target_Addresses", infos[1].Name)
	assert.Equal(t, -1, infos[1].FeatureCount)
	assert.Equal(t, "Final_Analysis_Layer", infos[2].Name)
	assert.Equal(t, -1, infos[2].FeatureCount)
}
