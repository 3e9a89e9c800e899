package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/model"
)

func TestGenerateConnectedWithinBounds(t *testing.T) {
	opts := GenerateOptions{Vertices: 30, EdgeFactor: 1.25, MinWeight: 10, MaxWeight: 200, MaxPopulation: 100, Seed: 42}
	net, err := Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, 30, net.VertexCount())
	assert.Equal(t, 38, net.EdgeCount())
	assert.True(t, net.Connected())
	assert.True(t, net.HasCoords())
	for _, e := range net.Edges() {
		assert.NotEqual(t, e.A, e.B)
		assert.GreaterOrEqual(t, e.Distance, 10.0)
		assert.LessOrEqual(t, e.Distance, 200.0)
	}
	for i := int64(0); i < 30; i++ {
		v, err := net.Vertex(i)
		require.NoError(t, err)
		assert.Equal(t, model.Normal, v.Kind)
		assert.GreaterOrEqual(t, v.Population, 0.0)
		assert.Less(t, v.Population, 100.0)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := GenerateOptions{Vertices: 15, EdgeFactor: 2, MinWeight: 1, MaxWeight: 9, MaxPopulation: 10, Seed: 7}
	a, err := Generate(opts)
	require.NoError(t, err)
	b, err := Generate(opts)
	require.NoError(t, err)
	assert.Equal(t, a.Edges(), b.Edges())
}

func TestGenerateEdgeCap(t *testing.T) {
	net, err := Generate(GenerateOptions{Vertices: 4, EdgeFactor: 10, MinWeight: 1, MaxWeight: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, net.EdgeCount())
}

func TestGenerateInvalid(t *testing.T) {
	_, err := Generate(GenerateOptions{Vertices: 0, MinWeight: 1, MaxWeight: 2})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	_, err = Generate(GenerateOptions{Vertices: 3, MinWeight: 5, MaxWeight: 2})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}
