package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/infra/logger"
)

// InfluxConfig locates the InfluxDB bucket receiving the points.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes simulation events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the client resources.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordVehicleOutcomes writes one vehicle_outcome point per vehicle.
func (s *InfluxSink) RecordVehicleOutcomes(out []coremetrics.VehicleOutcome) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, o := range out {
		p := write.NewPointWithMeasurement("vehicle_outcome").
			AddTag("vehicle_id", o.VehicleID).
			AddTag("status", o.Status.String()).
			AddTag("run_id", o.RunID).
			AddField("distance_km", round3(o.DistanceKM)).
			AddField("energy_kwh", round3(o.EnergyKWh)).
			AddField("battery_kwh", round3(o.BatteryKWh)).
			AddField("detours", o.Detours).
			SetTime(o.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlacementStep persists a committed optimizer change.
func (s *InfluxSink) RecordPlacementStep(ev coremetrics.PlacementStep) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("placement_step").
		AddTag("phase", ev.Phase).
		AddTag("run_id", ev.RunID).
		AddField("added", ev.Added).
		AddField("removed", ev.Removed).
		AddField("cost", round3(ev.Cost)).
		AddField("step", ev.Step).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPlacementSummary persists the optimization result.
func (s *InfluxSink) RecordPlacementSummary(ev coremetrics.PlacementSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("placement_summary").
		AddTag("run_id", ev.RunID).
		AddTag("converged", strconv.FormatBool(ev.Converged)).
		AddField("stations", ev.Stations).
		AddField("greedy_cost", round3(ev.GreedyCost)).
		AddField("cost", round3(ev.Cost)).
		AddField("scans", ev.Scans).
		AddField("swaps", ev.Swaps).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRound persists round statistics.
func (s *InfluxSink) RecordRound(ev coremetrics.RoundStats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_round").
		AddTag("run_id", ev.RunID).
		AddField("round", ev.Round).
		AddField("running", ev.Running).
		AddField("moved", ev.Moved).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
