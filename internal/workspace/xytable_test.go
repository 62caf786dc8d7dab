package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXYTableToPoint(t *testing.T) {
	ws := newTestWorkspace(t)
	csv := writeCSV(t, t.TempDir(), "new_addresses.csv",
		"X,Y,Type\n-105.2705,40.015,Residential\n-105.251,40.027,Residential\n-105.222,39.999,Residential\n")

	count, err := ws.XYTableToPoint(context.Background(), csv, "avoid_points", "X", "Y")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := ws.FeatureCount("avoid_points")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	// Coordinates and attributes round-trip.
	features, err := ws.ReadFeatures("avoid_points")
	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, "Residential", features[0].Attrs["Type"])
	assert.Equal(t, "-105.2705", features[0].Attrs["X"])
	assert.Equal(t, "40.015", features[0].Attrs["Y"])

	// Projection sidecar carries the workspace spatial reference.
	prj, err := os.ReadFile(filepath.Join(ws.Dir(), "avoid_points.prj"))
	require.NoError(t, err)
	assert.Contains(t, string(prj), "GCS_WGS_1984")
}

func TestXYTableToPointSchema(t *testing.T) {
	ws := newTestWorkspace(t)
	csv := writeCSV(t, t.TempDir(), "pts.csv", "X,Y,Type\n-105.1,40.1,Residential\n")

	_, err := ws.XYTableToPoint(context.Background(), csv, "pts", "X", "Y")
	require.NoError(t, err)

	fields, err := ws.ListFields("pts")
	require.NoError(t, err)
	require.Len(t, fields, 3)

	byName := map[string]FieldInfo{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "Double", byName["X"].Type)
	assert.Equal(t, "Double", byName["Y"].Type)
	assert.Equal(t, "String", byName["Type"].Type)
}

func TestXYTableToPointMalformedCoordinate(t *testing.T) {
	ws := newTestWorkspace(t)
	csv := writeCSV(t, t.TempDir(), "bad.csv",
		"X,Y,Type\n-105.1,40.1,Residential\nnot-a-number,40.2,Residential\n")

	_, err := ws.XYTableToPoint(context.Background(), csv, "bad", "X", "Y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "bad X value")
}

func TestXYTableToPointMissingColumn(t *testing.T) {
	ws := newTestWorkspace(t)
	csv := writeCSV(t, t.TempDir(), "noy.csv", "X,Type\n-105.1,Residential\n")

	_, err := ws.XYTableToPoint(context.Background(), csv, "noy", "X", "Y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "Y" column`)
}

func TestXYTableToPointEmptyTable(t *testing.T) {
	ws := newTestWorkspace(t)
	csv := writeCSV(t, t.TempDir(), "empty.csv", "X,Y,Type\n")

	count, err := ws.XYTableToPoint(context.Background(), csv, "empty", "X", "Y")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	got, err := ws.FeatureCount("empty")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestXYTableToPointMissingTable(t *testing.T) {
	ws := newTestWorkspace(t)
	_, err := ws.XYTableToPoint(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "x", "X", "Y")
	require.Error(t, err)
}

func TestXYTableToPointLongColumnNames(t *testing.T) {
	ws := newTestWorkspace(t)
	csv := writeCSV(t, t.TempDir(), "long.csv",
		"X,Y,AVeryLongColumnName\n-105.1,40.1,hello\n")

	_, err := ws.XYTableToPoint(context.Background(), csv, "long", "X", "Y")
	require.NoError(t, err)

	fields, err := ws.ListFields("long")
	require.NoError(t, err)
	require.Len(t, fields, 3)
	// dbf names are capped at 10 characters.
	assert.Equal(t, "AVeryLongC", fields[2].Name)
}
