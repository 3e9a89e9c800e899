package traffic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
)

func TestGenerateFleet(t *testing.T) {
	net := graph.New(5)
	require.NoError(t, net.SetPopulation(2, 100))
	vs, err := GenerateFleet(net, Config{Vehicles: 25, BatteryCapacity: 50, ConsumptionRate: 0.2}, NewRand(1))
	require.NoError(t, err)
	require.Len(t, vs, 25)

	assert.Equal(t, "veh0001", vs[0].ID)
	assert.Equal(t, "veh0025", vs[24].ID)
	for _, v := range vs {
		assert.Equal(t, int64(2), v.Origin, "only populated vertex can be an origin")
		assert.NotEqual(t, v.Origin, v.Destination)
		assert.Equal(t, v.Origin, v.Position)
		assert.Equal(t, 50.0, v.Battery)
		assert.Equal(t, model.StatusRunning, v.Status)
	}
}

func TestGenerateFleetDeterministic(t *testing.T) {
	net := graph.New(10)
	cfg := Config{Vehicles: 10, BatteryCapacity: 1, ConsumptionRate: 1}
	a, err := GenerateFleet(net, cfg, NewRand(3))
	require.NoError(t, err)
	b, err := GenerateFleet(net, cfg, NewRand(3))
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Origin, b[i].Origin)
		assert.Equal(t, a[i].Destination, b[i].Destination)
	}
}

func TestGenerateFleetErrors(t *testing.T) {
	_, err := GenerateFleet(graph.New(1), Config{Vehicles: 1, BatteryCapacity: 1}, NewRand(0))
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	_, err = GenerateFleet(graph.New(3), Config{Vehicles: 1}, NewRand(0))
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, 50, c.Vehicles)
	assert.Equal(t, 50.0, c.BatteryCapacity)
	assert.Equal(t, 0.2, c.ConsumptionRate)
	assert.NoError(t, c.Validate())
}
