package graphio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/graph"
)

const verticesCSV = `# lon,lat,population
-105.0,39.7,1200
-104.9,39.8,800
-104.8,39.6
bad,39.5,10
-104.7,39.5,300
`

const edgesCSV = `# lon1,lat1,lon2,lat2,distance
-105.0,39.7,-104.9,39.8,12.5
-104.9,39.8,-104.7,39.5,20
-104.7,39.5,-105.0,39.7,30
-104.7,39.5,-105.0,39.7,31
-104.7,39.5,-104.7,39.5,5
-104.0,40.0,-105.0,39.7,8
-105.0,39.7,-104.9,39.8
-104.9,39.8,-104.7,39.5,-2
`

func TestReadNetwork(t *testing.T) {
	net, st, err := ReadNetwork(strings.NewReader(verticesCSV), strings.NewReader(edgesCSV))
	require.NoError(t, err)

	assert.Equal(t, ReadStats{Vertices: 3, Edges: 3, SkippedVertices: 2, SkippedEdges: 5}, st)
	assert.Equal(t, 3, net.VertexCount())
	assert.Equal(t, 3, net.EdgeCount())
	assert.True(t, net.HasCoords())
	assert.Equal(t, 800.0, net.Population(1))

	d, err := net.EdgeDistance(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 12.5, d)
	d, err = net.EdgeDistance(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 30.0, d)
}

func TestWriteNetworkRoundTrip(t *testing.T) {
	src, err := graph.Generate(graph.GenerateOptions{Vertices: 12, EdgeFactor: 1.5, MinWeight: 1, MaxWeight: 99, MaxPopulation: 500, Seed: 6})
	require.NoError(t, err)

	var vb, eb bytes.Buffer
	require.NoError(t, WriteNetwork(src, &vb, &eb))
	dst, st, err := ReadNetwork(&vb, &eb)
	require.NoError(t, err)
	assert.Zero(t, st.SkippedVertices)
	assert.Zero(t, st.SkippedEdges)
	assert.Equal(t, src.Edges(), dst.Edges())
	for i := int64(0); i < 12; i++ {
		assert.Equal(t, src.Population(i), dst.Population(i))
	}
}

func TestWriteNetworkNeedsCoordinates(t *testing.T) {
	var vb, eb bytes.Buffer
	assert.Error(t, WriteNetwork(graph.New(2), &vb, &eb))
}

func TestSaveAndLoadNetwork(t *testing.T) {
	src, err := graph.Generate(graph.GenerateOptions{Vertices: 5, EdgeFactor: 1, MinWeight: 1, MaxWeight: 9, Seed: 1})
	require.NoError(t, err)
	dir := t.TempDir()
	vp, ep := filepath.Join(dir, "v.csv"), filepath.Join(dir, "e.csv")
	require.NoError(t, SaveNetwork(src, vp, ep))

	dst, _, err := LoadNetwork(vp, ep)
	require.NoError(t, err)
	assert.Equal(t, src.EdgeCount(), dst.EdgeCount())

	_, _, err = LoadNetwork(filepath.Join(dir, "missing.csv"), ep)
	assert.Error(t, err)
}
