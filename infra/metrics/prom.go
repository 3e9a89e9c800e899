package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/chargeplan/core/events"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
)

// PromSink records placement and simulation activity in Prometheus metrics.
type PromSink struct {
	outcomes  *prometheus.CounterVec
	distance  prometheus.Histogram
	energy    prometheus.Counter
	cost      *prometheus.GaugeVec
	swaps     prometheus.Counter
	rounds    prometheus.Counter
	running   prometheus.Gauge
	recharges *prometheus.CounterVec
}

// NewPromSink registers simulation metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.outcomes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vehicle_outcomes_total",
		Help: "Vehicles by terminal status at the end of a simulation",
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if s.distance, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vehicle_distance_km",
		Help:    "Distance travelled per vehicle",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})); err != nil {
		return nil, err
	}
	if s.energy, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vehicle_energy_kwh_total",
		Help: "Energy consumed by all simulated vehicles",
	})); err != nil {
		return nil, err
	}
	if s.cost, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "placement_cost",
		Help: "Placement cost after each optimizer phase",
	}, []string{"phase"})); err != nil {
		return nil, err
	}
	if s.swaps, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "placement_swaps_total",
		Help: "Improving swaps accepted by local search",
	})); err != nil {
		return nil, err
	}
	if s.rounds, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulation_rounds_total",
		Help: "Simulation rounds executed",
	})); err != nil {
		return nil, err
	}
	if s.running, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_running_vehicles",
		Help: "Vehicles still running at the start of the last round",
	})); err != nil {
		return nil, err
	}
	if s.recharges, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "charger_recharges_total",
		Help: "Recharges performed at each charger",
	}, []string{"charger"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordVehicleOutcomes counts vehicles by status and observes distances.
func (s *PromSink) RecordVehicleOutcomes(out []coremetrics.VehicleOutcome) error {
	for _, o := range out {
		s.outcomes.WithLabelValues(o.Status.String()).Inc()
		s.distance.Observe(o.DistanceKM)
		s.energy.Add(o.EnergyKWh)
	}
	return nil
}

// RecordPlacementStep tracks the cost after each committed change.
func (s *PromSink) RecordPlacementStep(ev coremetrics.PlacementStep) error {
	s.cost.WithLabelValues(ev.Phase).Set(ev.Cost)
	if ev.Removed >= 0 {
		s.swaps.Inc()
	}
	return nil
}

// RecordPlacementSummary publishes the final costs.
func (s *PromSink) RecordPlacementSummary(ev coremetrics.PlacementSummary) error {
	s.cost.WithLabelValues("greedy").Set(ev.GreedyCost)
	s.cost.WithLabelValues("final").Set(ev.Cost)
	return nil
}

// RecordRound counts rounds and tracks the running fleet.
func (s *PromSink) RecordRound(ev coremetrics.RoundStats) error {
	s.rounds.Inc()
	s.running.Set(float64(ev.Running))
	return nil
}

// RecordVehicleTransition counts recharges per charger.
func (s *PromSink) RecordVehicleTransition(ev coremetrics.VehicleTransition) error {
	if ev.Action == events.ActionRecharge {
		s.recharges.WithLabelValues(strconv.FormatInt(ev.To, 10)).Inc()
	}
	return nil
}
