package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/config"
	"github.com/kilianp07/chargeplan/core/factory"
	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/core/trace"
	"github.com/kilianp07/chargeplan/infra/logger"
	"github.com/kilianp07/chargeplan/pkg/export"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Graph.Seed = 3
	cfg.Graph.Random.Vertices = 20
	cfg.Placement.Stations = 3
	cfg.Traffic.Vehicles = 15
	cfg.Traffic.Seed = 9
	cfg.Traffic.BatteryCapacity = 1e6
	cfg.Trace.Backend = "jsonl"
	cfg.Trace.Path = filepath.Join(dir, "trace.jsonl")
	cfg.Output.DotFile = filepath.Join(dir, "network.dot")
	cfg.Output.ReportFile = filepath.Join(dir, "report.json")
	cfg.Metrics.Textfile = filepath.Join(dir, "metrics.prom")
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestServiceRun(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg, logger.NopLogger{})
	require.NoError(t, err)

	rep, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	assert.Equal(t, svc.RunID(), rep.RunID)
	assert.Equal(t, 20, rep.Network.Vertices)
	assert.Len(t, rep.Placement.Centers, 3)
	assert.LessOrEqual(t, rep.Placement.Cost, rep.Placement.GreedyCost)
	assert.Equal(t, 15, rep.Summary.Vehicles)
	assert.Equal(t, 15, rep.Summary.Arrived, "unbounded range on a connected network")
	assert.False(t, rep.Simulation.Truncated)
	assert.InDelta(t, rep.Summary.TotalDistance*0.2, rep.Summary.TotalEnergy, 1e-9)
	assert.Len(t, svc.Network.Chargers(), 3)

	for _, p := range []string{cfg.Output.DotFile, cfg.Metrics.Textfile} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
	data, err := os.ReadFile(cfg.Output.ReportFile)
	require.NoError(t, err)
	var saved export.Report
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, rep.Placement.Centers, saved.Placement.Centers)

	store, err := trace.New(cfg.Trace)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	recs, err := store.Query(context.Background(), trace.Query{RunID: svc.RunID(), Kind: trace.KindPlacement})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(recs), 3)
	recs, err = store.Query(context.Background(), trace.Query{RunID: svc.RunID(), Kind: trace.KindRound})
	require.NoError(t, err)
	assert.Len(t, recs, rep.Simulation.Rounds)
}

func TestServicePlanFleetUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Trace.Backend = "none"
	svc, err := New(cfg, logger.NopLogger{})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	net := graph.New(4)
	require.NoError(t, net.AddEdge(0, 1, 5))
	require.NoError(t, net.AddEdge(2, 3, 5))
	svc.Network = net

	require.NoError(t, svc.PlanFleet())
	_, err = svc.Simulate()
	require.NoError(t, err)

	component := func(v int64) int64 { return v / 2 }
	stranded := 0
	for _, v := range svc.Fleet {
		if component(v.Origin) != component(v.Destination) {
			stranded++
			assert.Equal(t, model.StatusStranded, v.Status, v.ID)
			assert.Equal(t, []int64{v.Origin}, v.Route.Vertices)
			assert.Zero(t, v.Distance)
			continue
		}
		assert.Equal(t, model.StatusArrived, v.Status, v.ID)
	}
	assert.Positive(t, stranded)
	assert.Equal(t, stranded, svc.Report().Summary.Stranded)
}

func TestServiceOptimizeDisconnected(t *testing.T) {
	cfg := testConfig(t)
	cfg.Trace.Backend = "none"
	svc, err := New(cfg, logger.NopLogger{})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	_, err = svc.Optimize()
	assert.Error(t, err)

	svc.Network = graph.New(5)
	_, err = svc.Optimize()
	assert.ErrorIs(t, err, model.ErrDisconnected)
}

func TestServiceRunCancelled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Trace.Backend = "none"
	svc, err := New(cfg, logger.NopLogger{})
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, svc.Network)
}

func TestSinkConfigsInjectsEmissionFactor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.EmissionFactor = 95
	cfg.Metrics.Sinks = append(cfg.Metrics.Sinks,
		factory.ModuleConfig{Type: "nop"},
		factory.ModuleConfig{Type: "eco"},
		factory.ModuleConfig{Type: "eco", Conf: map[string]any{"emission_factor": 120.0}},
	)
	out := sinkConfigs(cfg.Metrics)
	require.Len(t, out, 3)
	assert.Nil(t, out[0].Conf)
	assert.Equal(t, 95.0, out[1].Conf["emission_factor"])
	assert.Equal(t, 120.0, out[2].Conf["emission_factor"])
}
