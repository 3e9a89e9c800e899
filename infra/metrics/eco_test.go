package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/metrics/eco"
)

func TestEcoSink(t *testing.T) {
	store := eco.NewMemoryStore()
	sink, err := NewEcoSink(store, 100, prometheus.NewRegistry())
	require.NoError(t, err)

	require.NoError(t, sink.RecordVehicleOutcomes([]coremetrics.VehicleOutcome{
		{VehicleID: "veh0001", DistanceKM: 10, EnergyKWh: 2},
		{VehicleID: "veh0002", DistanceKM: 30, EnergyKWh: 3},
	}))

	assert.Equal(t, 1000.0, testutil.ToFloat64(sink.co2.WithLabelValues("veh0001")))
	assert.InDelta(t, 0.1, testutil.ToFloat64(sink.perKM.WithLabelValues("veh0002")), 1e-9)
	assert.Equal(t, 4000.0, testutil.ToFloat64(sink.fleetCO2))

	rec, ok, err := store.Get("veh0002")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, rec.Trips)
}
