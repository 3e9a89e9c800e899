package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/factory"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/infra/kpi"
)

func TestFactoryBuildsRegisteredSinks(t *testing.T) {
	sink, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "prometheus"}})
	require.NoError(t, err)
	assert.IsType(t, &coremetrics.MultiSink{}, sink)

	_, err = coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "eco", Conf: map[string]any{"store": "redis"}}})
	assert.Error(t, err)
}

func TestFactoryEcoSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eco.db")
	sink, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{
		Type: "eco",
		Conf: map[string]any{"store": "sqlite", "path": path, "emission_factor": "100"},
	}})
	require.NoError(t, err)
	eco, ok := sink.(*EcoSink)
	require.True(t, ok)
	assert.Equal(t, 100.0, eco.factor)

	require.NoError(t, sink.RecordVehicleOutcomes([]coremetrics.VehicleOutcome{
		{VehicleID: "veh0001", Status: model.StatusArrived, DistanceKM: 40, EnergyKWh: 8},
	}))
	eco.Close()

	store, err := kpi.NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	rec, ok, err := store.Get("veh0001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 40, rec.DistanceKM, 1e-9)
}
