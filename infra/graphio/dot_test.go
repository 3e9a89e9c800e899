package graphio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
)

func TestMarshalDOT(t *testing.T) {
	net := graph.New(0)
	net.AddVertex(10, &graph.Coord{X: 1, Y: 2})
	net.AddVertex(5, &graph.Coord{X: 3, Y: -1})
	require.NoError(t, net.AddEdge(0, 1, 12.5))
	require.NoError(t, net.SetKind(1, model.Charger))

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, net, "network", DotOptions{Scale: 10, OffsetX: 100, OffsetY: -40}))
	out := buf.String()

	assert.Contains(t, out, "graph network {")
	assert.Contains(t, out, `"110.00,-20.00!"`)
	assert.Contains(t, out, `"130.00,-50.00!"`)
	assert.Contains(t, out, "color=lightgray")
	assert.Contains(t, out, "color=red")
	assert.Contains(t, out, "0 -- 1")
	assert.Contains(t, out, `"12.50km"`)
}

func TestSaveDOTWithoutCoordinates(t *testing.T) {
	net := graph.New(3)
	require.NoError(t, net.AddEdge(0, 2, 4))
	path := filepath.Join(t.TempDir(), "g.dot")
	require.NoError(t, SaveDOT(path, net, "g", DotOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "pos=")
	assert.Contains(t, string(data), "0 -- 2")
}
