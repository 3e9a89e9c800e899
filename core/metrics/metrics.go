package metrics

import (
	"time"

	"github.com/kilianp07/chargeplan/core/model"
)

// VehicleOutcome is the end-of-run state of one vehicle.
type VehicleOutcome struct {
	RunID      string
	VehicleID  string
	Status     model.Status
	DistanceKM float64
	EnergyKWh  float64
	BatteryKWh float64
	Detours    int
	Time       time.Time
}

// MetricsSink records simulation outcomes for observability purposes.
type MetricsSink interface {
	RecordVehicleOutcomes(outcomes []VehicleOutcome) error
}

// PlacementStep is a committed optimizer change. Removed is -1 for greedy
// picks.
type PlacementStep struct {
	RunID   string
	Phase   string
	Added   int64
	Removed int64
	Cost    float64
	Step    int
	Time    time.Time
}

// PlacementRecorder records optimizer steps.
type PlacementRecorder interface {
	RecordPlacementStep(ev PlacementStep) error
}

// PlacementSummary is the result of an optimization run.
type PlacementSummary struct {
	RunID      string
	Stations   int
	GreedyCost float64
	Cost       float64
	Scans      int
	Swaps      int
	Converged  bool
	Time       time.Time
}

// PlacementSummaryRecorder records optimization results.
type PlacementSummaryRecorder interface {
	RecordPlacementSummary(ev PlacementSummary) error
}

// RoundStats describes one simulation round.
type RoundStats struct {
	RunID   string
	Round   int
	Running int
	Moved   int
	Time    time.Time
}

// RoundRecorder records simulation rounds.
type RoundRecorder interface {
	RecordRound(ev RoundStats) error
}

// VehicleTransition is a single vehicle move, recharge or terminal change.
type VehicleTransition struct {
	RunID      string
	VehicleID  string
	Round      int
	Action     string
	From       int64
	To         int64
	BatteryKWh float64
	Time       time.Time
}

// VehicleTransitionRecorder records vehicle transitions.
type VehicleTransitionRecorder interface {
	RecordVehicleTransition(ev VehicleTransition) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordVehicleOutcomes([]VehicleOutcome) error    { return nil }
func (NopSink) RecordPlacementStep(PlacementStep) error         { return nil }
func (NopSink) RecordPlacementSummary(PlacementSummary) error   { return nil }
func (NopSink) RecordRound(RoundStats) error                    { return nil }
func (NopSink) RecordVehicleTransition(VehicleTransition) error { return nil }
