package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/chargeplan/config"
	"github.com/kilianp07/chargeplan/core/factory"
	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/logger"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/core/monitoring"
	"github.com/kilianp07/chargeplan/core/placement"
	"github.com/kilianp07/chargeplan/core/routing"
	"github.com/kilianp07/chargeplan/core/trace"
	"github.com/kilianp07/chargeplan/core/traffic"
	"github.com/kilianp07/chargeplan/infra/graphio"
	"github.com/kilianp07/chargeplan/infra/metrics"
	"github.com/kilianp07/chargeplan/internal/eventbus"
	"github.com/kilianp07/chargeplan/pkg/export"
)

// Phases of a run, used to tag captured errors.
const (
	PhaseLoad     = "load"
	PhaseOptimize = "optimize"
	PhasePlan     = "plan"
	PhaseSimulate = "simulate"
	PhaseOutput   = "output"
)

// Service owns the state of one run: the network and its charger
// assignment, the fleet, and the sinks observing them.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	runID string

	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	traces    trace.Store
	recorder  *trace.Recorder
	collector *metrics.EventCollector
	stops     []func()
	gatherer  prometheus.Gatherer

	Network    *graph.Network
	Placement  placement.Result
	Fleet      []*model.Vehicle
	Simulation traffic.Result
}

// New creates a Service from a loaded and validated configuration.
func New(cfg *config.Config, log logger.Logger) (*Service, error) {
	sink, err := coremetrics.NewMetricsSink(sinkConfigs(cfg.Metrics))
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := trace.New(cfg.Trace)
	if err != nil {
		return nil, fmt.Errorf("trace store: %w", err)
	}

	svc := &Service{
		cfg:      cfg,
		log:      log,
		runID:    uuid.NewString(),
		bus:      eventbus.New(),
		sink:     sink,
		traces:   store,
		gatherer: prometheus.DefaultGatherer,
	}
	svc.recorder = trace.NewRecorder(store, log)
	svc.collector = metrics.StartEventCollector(svc.bus, sink, log)
	svc.stops = append(svc.stops, svc.collector.Stop, svc.recorder.Attach(svc.bus))
	log.Infof("run %s created", svc.runID)
	return svc, nil
}

// sinkConfigs hands the configured emission factor to eco sinks that do not
// set their own.
func sinkConfigs(cfg coremetrics.Config) []factory.ModuleConfig {
	out := make([]factory.ModuleConfig, len(cfg.Sinks))
	for i, s := range cfg.Sinks {
		out[i] = s
		if s.Type != "eco" {
			continue
		}
		conf := map[string]any{"emission_factor": cfg.EmissionFactor}
		for k, v := range s.Conf {
			conf[k] = v
		}
		out[i].Conf = conf
	}
	return out
}

// RunID identifies this run in events, traces and metrics.
func (s *Service) RunID() string { return s.runID }

// Bus exposes the event bus for additional subscribers.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// LoadNetwork generates or reads the road network.
func (s *Service) LoadNetwork() error {
	gc := s.cfg.Graph
	switch gc.Source {
	case config.SourceCSV:
		net, st, err := graphio.LoadNetwork(gc.VerticesFile, gc.EdgesFile)
		if err != nil {
			return fmt.Errorf("load network: %w", err)
		}
		if st.SkippedVertices > 0 || st.SkippedEdges > 0 {
			s.log.Warnf("skipped %d vertex rows and %d edge rows", st.SkippedVertices, st.SkippedEdges)
		}
		s.Network = net
	default:
		net, err := graph.Generate(gc.GenerateOptions())
		if err != nil {
			return fmt.Errorf("generate network: %w", err)
		}
		s.Network = net
	}
	s.log.Infof("network loaded from %s: %d vertices, %d edges", gc.Source, s.Network.VertexCount(), s.Network.EdgeCount())
	return nil
}

// Optimize places the chargers on the loaded network.
func (s *Service) Optimize() (placement.Result, error) {
	if s.Network == nil {
		return placement.Result{}, errors.New("network not loaded")
	}
	opt := placement.NewOptimizer(s.Network, s.cfg.Placement, s.log, s.bus, s.runID)
	res, err := opt.Optimize()
	if err != nil {
		return placement.Result{}, err
	}
	s.Placement = res
	if r, ok := s.sink.(coremetrics.PlacementSummaryRecorder); ok {
		if err := r.RecordPlacementSummary(coremetrics.PlacementSummary{
			RunID: s.runID, Stations: len(res.Centers), GreedyCost: res.GreedyCost, Cost: res.Cost,
			Scans: res.Scans, Swaps: res.Swaps, Converged: res.Converged, Time: time.Now(),
		}); err != nil {
			s.log.Warnf("record placement summary: %v", err)
		}
	}
	return res, nil
}

// PlanFleet draws the vehicles and plans their routes. A vehicle whose
// destination is unreachable is Stranded before the simulation starts; one
// already at its destination is Arrived.
func (s *Service) PlanFleet() error {
	if s.Network == nil {
		return errors.New("network not loaded")
	}
	tc := s.cfg.Traffic
	fleet, err := traffic.GenerateFleet(s.Network, tc, traffic.NewRand(tc.Seed))
	if err != nil {
		return fmt.Errorf("generate fleet: %w", err)
	}
	planner := routing.NewPlanner(s.Network, tc.MaxDetours, s.log)
	incomplete := 0
	for _, v := range fleet {
		route, err := planner.Plan(routing.Request{
			Origin: v.Origin, Destination: v.Destination,
			Capacity: v.Capacity, ConsumptionRate: v.ConsumptionRate,
		})
		switch {
		case errors.Is(err, model.ErrUnreachable):
			v.Route = route
			v.Status = model.StatusStranded
			s.log.Warnf("vehicle %s: destination %d unreachable from %d", v.ID, v.Destination, v.Origin)
			continue
		case err != nil:
			return fmt.Errorf("plan vehicle %s: %w", v.ID, err)
		}
		v.Route = route
		if v.Origin == v.Destination {
			v.Status = model.StatusArrived
		}
		if !route.Complete {
			incomplete++
		}
	}
	if incomplete > 0 {
		s.log.Warnf("%d of %d routes exceed the battery range", incomplete, len(fleet))
	}
	s.Fleet = fleet
	return nil
}

// Simulate runs the traffic simulation on the planned fleet and records
// vehicle outcomes.
func (s *Service) Simulate() (traffic.Result, error) {
	if s.Network == nil {
		return traffic.Result{}, errors.New("network not loaded")
	}
	sim := traffic.NewSimulator(s.Network, s.cfg.Traffic.MaxRounds, s.log, s.bus, s.runID)
	res, err := sim.Run(s.Fleet)
	if err != nil {
		return traffic.Result{}, err
	}
	s.Simulation = res

	now := time.Now()
	out := make([]coremetrics.VehicleOutcome, len(s.Fleet))
	for i, v := range s.Fleet {
		out[i] = coremetrics.VehicleOutcome{
			RunID: s.runID, VehicleID: v.ID, Status: v.Status,
			DistanceKM: v.Distance, EnergyKWh: v.Energy(),
			BatteryKWh: v.Battery, Detours: len(v.Route.Chargers), Time: now,
		}
	}
	if err := s.sink.RecordVehicleOutcomes(out); err != nil {
		s.log.Warnf("record vehicle outcomes: %v", err)
	}
	return res, nil
}

// Report assembles the end-of-run report.
func (s *Service) Report() export.Report {
	r := export.Report{
		RunID:       s.runID,
		GeneratedAt: time.Now().UTC(),
		Network:     export.NetworkInfo{Source: s.cfg.Graph.Source},
		Placement:   s.Placement,
		Simulation:  s.Simulation,
		Summary:     traffic.Summarize(s.Fleet, s.cfg.Metrics.EmissionFactor),
	}
	if s.Network != nil {
		r.Network.Vertices = s.Network.VertexCount()
		r.Network.Edges = s.Network.EdgeCount()
	}
	return r
}

// Run executes every phase in order and writes the configured outputs. The
// error aborting the run is reported to the monitor tagged with its phase.
func (s *Service) Run(ctx context.Context) (export.Report, error) {
	steps := []struct {
		phase string
		fn    func() error
	}{
		{PhaseLoad, s.LoadNetwork},
		{PhaseOptimize, func() error { _, err := s.Optimize(); return err }},
		{PhasePlan, s.PlanFleet},
		{PhaseSimulate, func() error { _, err := s.Simulate(); return err }},
	}
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return export.Report{}, err
		}
		if err := st.fn(); err != nil {
			return export.Report{}, s.fail(st.phase, err)
		}
	}

	rep := s.Report()
	sum := rep.Summary
	s.log.Infof("arrived=%d stranded=%d other=%d running=%d distance=%.2fkm energy=%.2fkWh avoided=%.2fkgCO2",
		sum.Arrived, sum.Stranded, sum.Other, sum.Running, sum.TotalDistance, sum.TotalEnergy, sum.AvoidedEmissions)
	if err := s.writeOutputs(rep); err != nil {
		return rep, s.fail(PhaseOutput, err)
	}
	return rep, nil
}

func (s *Service) writeOutputs(rep export.Report) error {
	out := s.cfg.Output
	if out.DotFile != "" {
		opts := graphio.DotOptions{Scale: out.DotScale, OffsetX: out.DotOffsetX, OffsetY: out.DotOffsetY}
		if err := graphio.SaveDOT(out.DotFile, s.Network, "network", opts); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		s.log.Infof("graph written to %s", out.DotFile)
	}
	if out.ReportFile != "" {
		if err := export.Save(out.ReportFile, rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		s.log.Infof("report written to %s", out.ReportFile)
	}
	return nil
}

func (s *Service) fail(phase string, err error) error {
	monitoring.CaptureException(err, map[string]string{"run_id": s.runID, "phase": phase})
	return fmt.Errorf("%s: %w", phase, err)
}

// Close detaches the observers, dumps the Prometheus textfile when
// configured and closes the trace store and sinks.
func (s *Service) Close() error {
	for _, stop := range s.stops {
		stop()
	}
	s.bus.Close()
	var errs []error
	if path := s.cfg.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path, s.gatherer); err != nil {
			errs = append(errs, fmt.Errorf("textfile: %w", err))
		}
	}
	if n := s.recorder.Failures(); n > 0 {
		s.log.Warnf("%d trace records could not be written", n)
	}
	if n := s.collector.Failures(); n > 0 {
		s.log.Warnf("%d metric events could not be recorded", n)
	}
	if err := s.traces.Close(); err != nil {
		errs = append(errs, fmt.Errorf("trace store: %w", err))
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(errs...)
}
