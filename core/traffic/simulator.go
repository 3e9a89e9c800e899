package traffic

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/logger"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// energyTolerance absorbs floating point error when comparing consumption
// with the remaining battery.
const energyTolerance = 1e-9

// Result summarizes a simulation run.
type Result struct {
	Rounds int `json:"rounds" yaml:"rounds"`
	// Truncated is true when the round bound stopped vehicles still running.
	Truncated bool `json:"truncated" yaml:"truncated"`
}

// Simulator advances vehicles one edge per round along their routes.
type Simulator struct {
	net       *graph.Network
	maxRounds int
	log       logger.Logger
	bus       eventbus.Publisher
	runID     string
	round     int
}

// NewSimulator returns a simulator. maxRounds bounds Run; zero derives the
// bound from the longest route. A nil bus discards events.
func NewSimulator(net *graph.Network, maxRounds int, log logger.Logger, bus eventbus.Publisher, runID string) *Simulator {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	return &Simulator{net: net, maxRounds: maxRounds, log: log, bus: bus, runID: runID}
}

// Run steps the fleet until no vehicle is Running or Recharging, or the round
// bound is reached. A vehicle needs at most len(route)-1 rounds, so the
// derived bound of the longest route length plus one always suffices.
func (s *Simulator) Run(vehicles []*model.Vehicle) (Result, error) {
	longest := 0
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return Result{}, fmt.Errorf("vehicle %s: %w", v.ID, err)
		}
		if v.Route.Len() > longest {
			longest = v.Route.Len()
		}
	}
	limit := s.maxRounds
	if limit <= 0 {
		limit = longest + 1
	}

	start := s.round
	for active(vehicles) > 0 && s.round-start < limit {
		s.Step(vehicles)
	}
	res := Result{Rounds: s.round - start, Truncated: active(vehicles) > 0}
	if res.Truncated {
		s.log.Warnf("simulation stopped after %d rounds with %d vehicles still running", res.Rounds, active(vehicles))
	} else {
		s.log.Infof("simulation finished after %d rounds", res.Rounds)
	}
	return res, nil
}

// Step attempts one move for every Running vehicle and returns the number of
// vehicles that moved.
func (s *Simulator) Step(vehicles []*model.Vehicle) int {
	s.round++
	running, moved := 0, 0
	for _, v := range vehicles {
		if v.Status != model.StatusRunning {
			continue
		}
		running++
		if s.advance(v) {
			moved++
		}
	}
	s.log.Debugf("round %d: %d running, %d moved", s.round, running, moved)
	s.bus.Publish(events.RoundEvent{RunID: s.runID, Round: s.round, Running: running, Moved: moved})
	return moved
}

// Round returns the number of rounds stepped so far.
func (s *Simulator) Round() int { return s.round }

func (s *Simulator) advance(v *model.Vehicle) bool {
	idx := v.Route.IndexFrom(v.RouteIndex, v.Position)
	if idx < 0 || idx == v.Route.Len()-1 {
		v.Status = model.StatusOther
		s.emit(v, events.ActionDesync, v.Position, v.Position, 0)
		return false
	}
	from, to := v.Position, v.Route.Vertices[idx+1]
	d, err := s.net.EdgeDistance(from, to)
	if err != nil {
		v.Status = model.StatusOther
		s.emit(v, events.ActionDesync, from, to, 0)
		return false
	}
	consumption := v.Consumption(d)
	if consumption > v.Battery+energyTolerance {
		v.Status = model.StatusStranded
		s.emit(v, events.ActionStrand, from, to, d)
		return false
	}

	v.Battery -= consumption
	if v.Battery < 0 {
		v.Battery = 0
	}
	v.Distance += d
	v.Position = to
	v.RouteIndex = idx + 1

	switch {
	case to == v.Destination:
		v.Status = model.StatusArrived
		s.emit(v, events.ActionArrive, from, to, d)
	case s.net.Kind(to) == model.Charger:
		v.Battery = v.Capacity
		s.emit(v, events.ActionRecharge, from, to, d)
	default:
		s.emit(v, events.ActionMove, from, to, d)
	}
	return true
}

func (s *Simulator) emit(v *model.Vehicle, action string, from, to int64, d float64) {
	s.log.Debugw("vehicle "+action, map[string]any{
		"round": s.round, "vehicle": v.ID, "from": from, "to": to, "battery": v.Battery, "status": v.Status.String(),
	})
	s.bus.Publish(events.VehicleEvent{
		RunID: s.runID, Round: s.round, VehicleID: v.ID, Action: action,
		From: from, To: to, Distance: d, Battery: v.Battery, Status: v.Status,
	})
}

func active(vehicles []*model.Vehicle) int {
	n := 0
	for _, v := range vehicles {
		if v.Status == model.StatusRunning || v.Status == model.StatusRecharging {
			n++
		}
	}
	return n
}
