package placement

import (
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/logger"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// improvementTolerance is the minimum cost decrease for a swap to count as
// an improvement.
const improvementTolerance = 1e-9

// Result summarizes an optimization run.
type Result struct {
	// Centers holds the committed chargers in ascending id order.
	Centers    []int64 `json:"centers" yaml:"centers"`
	GreedyCost float64 `json:"greedy_cost" yaml:"greedy_cost"`
	Cost       float64 `json:"cost" yaml:"cost"`
	Scans      int     `json:"scans" yaml:"scans"`
	Swaps      int     `json:"swaps" yaml:"swaps"`
	// Converged is false when local search stopped on the scan cap.
	Converged bool `json:"converged" yaml:"converged"`
}

// Optimizer places Config.Stations chargers on a network.
type Optimizer struct {
	net   *graph.Network
	cfg   Config
	log   logger.Logger
	bus   eventbus.Publisher
	runID string
}

// NewOptimizer returns an optimizer bound to net. A nil bus discards events.
func NewOptimizer(net *graph.Network, cfg Config, log logger.Logger, bus eventbus.Publisher, runID string) *Optimizer {
	if bus == nil {
		bus = eventbus.Nop{}
	}
	if cfg.MaxScans == 0 {
		cfg.MaxScans = DefaultMaxScans
	}
	if cfg.Objective == "" {
		cfg.Objective = ObjectiveDistance
	}
	return &Optimizer{net: net, cfg: cfg, log: log, bus: bus, runID: runID}
}

// Optimize clears any previous assignment, seeds k centers greedily and
// refines them by local search. On success exactly k vertices are marked
// Charger on the network. On failure the network holds no chargers.
func (o *Optimizer) Optimize() (Result, error) {
	if err := o.cfg.Validate(); err != nil {
		return Result{}, err
	}
	n := o.net.VertexCount()
	k := o.cfg.Stations
	if k > n {
		return Result{}, fmt.Errorf("%w: %d stations for %d vertices", model.ErrInvalidConfig, k, n)
	}
	if !o.net.Connected() {
		return Result{}, model.ErrDisconnected
	}
	o.net.ResetKinds()

	eval := newEvaluator(o.net, o.cfg.Objective)
	centers, greedyCost, err := o.seed(eval, k)
	if err != nil {
		o.net.ResetKinds()
		return Result{}, err
	}
	o.log.Infof("greedy seeding placed %d stations, cost %.3f", k, greedyCost)

	res := Result{GreedyCost: greedyCost}
	res.Cost, res.Scans, res.Swaps, res.Converged, err = o.refine(eval, centers, greedyCost)
	if err != nil {
		o.net.ResetKinds()
		return Result{}, err
	}
	if !res.Converged {
		o.log.Warnf("local search stopped after %d scans without convergence", res.Scans)
	}
	o.log.Infof("local search done: cost %.3f after %d swaps in %d scans", res.Cost, res.Swaps, res.Scans)

	res.Centers = append([]int64(nil), centers...)
	sort.Slice(res.Centers, func(i, j int) bool { return res.Centers[i] < res.Centers[j] })
	return res, nil
}

// seed adds k centers one at a time, each time picking the Normal vertex that
// minimizes the resulting cost, which is the vertex of maximum gain. Ties go
// to the lowest id.
func (o *Optimizer) seed(eval *evaluator, k int) ([]int64, float64, error) {
	n := int64(o.net.VertexCount())
	centers := make([]int64, 0, k)
	cost := math.Inf(1)
	for step := 1; step <= k; step++ {
		best := int64(-1)
		bestCost := math.Inf(1)
		overlay := append(append([]int64(nil), centers...), -1)
		for v := int64(0); v < n; v++ {
			if o.net.Kind(v) == model.Charger {
				continue
			}
			overlay[len(overlay)-1] = v
			c, err := eval.cost(overlay)
			if err != nil {
				return nil, 0, err
			}
			if c < bestCost {
				best, bestCost = v, c
			}
		}
		if best < 0 {
			return nil, 0, fmt.Errorf("%w: no candidate left at step %d", model.ErrInvalidConfig, step)
		}
		if err := o.net.SetKind(best, model.Charger); err != nil {
			return nil, 0, err
		}
		fields := map[string]any{"step": step, "vertex": best, "cost": bestCost}
		if step > 1 {
			fields["gain"] = cost - bestCost
		}
		centers = append(centers, best)
		cost = bestCost
		o.log.Debugw("greedy pick", fields)
		o.bus.Publish(events.PlacementEvent{
			RunID: o.runID, Phase: events.PhaseGreedy, Added: best, Removed: -1, Cost: cost, Step: step,
		})
	}
	return centers, cost, nil
}

// refine applies first-improvement single swaps until a full scan finds none
// or the scan cap is reached. centers is updated in place.
func (o *Optimizer) refine(eval *evaluator, centers []int64, cost float64) (float64, int, int, bool, error) {
	n := int64(o.net.VertexCount())
	candidate := make([]int64, len(centers))
	scans, swaps := 0, 0
	for scans < o.cfg.MaxScans {
		scans++
		improved := false
	scan:
		for i, c := range centers {
			for v := int64(0); v < n; v++ {
				if o.net.Kind(v) == model.Charger {
					continue
				}
				copy(candidate, centers)
				candidate[i] = v
				cc, err := eval.cost(candidate)
				if err != nil {
					return 0, scans, swaps, false, err
				}
				if cc < cost-improvementTolerance {
					if err := o.swap(c, v); err != nil {
						return 0, scans, swaps, false, err
					}
					centers[i] = v
					cost = cc
					swaps++
					improved = true
					o.log.Debugw("swap accepted", map[string]any{"removed": c, "added": v, "cost": cost, "scan": scans})
					o.bus.Publish(events.PlacementEvent{
						RunID: o.runID, Phase: events.PhaseSwap, Added: v, Removed: c, Cost: cost, Step: swaps,
					})
					break scan
				}
			}
		}
		if !improved {
			return cost, scans, swaps, true, nil
		}
	}
	return cost, scans, swaps, false, nil
}

func (o *Optimizer) swap(out, in int64) error {
	if err := o.net.SetKind(out, model.Normal); err != nil {
		return err
	}
	return o.net.SetKind(in, model.Charger)
}
