// Package routing plans battery-feasible vehicle itineraries across the
// committed charger assignment.
package routing

import (
	"errors"
	"fmt"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/logger"
	"github.com/kilianp07/chargeplan/core/model"
)

// energyTolerance absorbs floating point error when comparing consumption
// with the available battery.
const energyTolerance = 1e-9

// Request describes one trip to plan.
type Request struct {
	Origin          int64
	Destination     int64
	Capacity        float64 // kWh
	ConsumptionRate float64 // kWh per km
}

// Validate checks the battery parameters.
func (r Request) Validate() error {
	if !(r.Capacity > 0) {
		return fmt.Errorf("%w: battery capacity must be positive", model.ErrInvalidConfig)
	}
	if r.ConsumptionRate < 0 {
		return fmt.Errorf("%w: consumption rate must not be negative", model.ErrInvalidConfig)
	}
	return nil
}

// Planner computes vehicle routes. It reads the charger assignment from the
// network at each call and never modifies the network.
type Planner struct {
	net        *graph.Network
	maxDetours int
	log        logger.Logger
}

// NewPlanner returns a planner. maxDetours caps the number of charger
// detours per trip; zero or a negative value allows one detour per charger.
func NewPlanner(net *graph.Network, maxDetours int, log logger.Logger) *Planner {
	return &Planner{net: net, maxDetours: maxDetours, log: log}
}

// Plan returns the route from origin to destination. When the direct
// shortest path exceeds the battery, the vehicle detours to the reachable
// charger farthest from its current position (lowest id on ties), recharges
// fully and tries again. Chargers already visited on the trip are skipped.
//
// If no charger is reachable or the detour cap is hit, the direct shortest
// path is appended and the route is marked incomplete: the vehicle will
// strand while following it. If the destination cannot be reached at all,
// Plan returns a route holding only the origin and an error wrapping
// model.ErrUnreachable.
func (p *Planner) Plan(req Request) (model.Route, error) {
	if err := req.Validate(); err != nil {
		return model.Route{}, err
	}
	route := model.Route{Vertices: []int64{req.Origin}}
	direct, err := p.net.ShortestPath(req.Origin, req.Destination)
	if err != nil {
		if errors.Is(err, model.ErrUnreachable) {
			return route, err
		}
		return model.Route{}, err
	}

	limit := p.maxDetours
	chargers := p.net.Chargers()
	if limit <= 0 {
		limit = len(chargers)
	}
	visited := map[int64]bool{}
	if p.net.Kind(req.Origin) == model.Charger {
		visited[req.Origin] = true
	}

	cursor := req.Origin
	for {
		if direct.Distance*req.ConsumptionRate <= req.Capacity+energyTolerance {
			appendPath(&route, direct)
			route.Complete = true
			return route, nil
		}
		next, hop, ok := p.farthestCharger(cursor, chargers, visited, req)
		if !ok || len(route.Chargers) >= limit {
			appendPath(&route, direct)
			p.log.Debugw("route infeasible", map[string]any{
				"origin": req.Origin, "destination": req.Destination, "cursor": cursor, "detours": len(route.Chargers),
			})
			return route, nil
		}
		appendPath(&route, hop)
		route.Chargers = append(route.Chargers, next)
		visited[next] = true
		cursor = next
		p.log.Debugw("charger detour", map[string]any{
			"origin": req.Origin, "destination": req.Destination, "charger": next, "distance": hop.Distance,
		})

		direct, err = p.net.ShortestPath(cursor, req.Destination)
		if err != nil {
			return model.Route{}, err
		}
	}
}

func (p *Planner) farthestCharger(cursor int64, chargers []int64, visited map[int64]bool, req Request) (int64, graph.Path, bool) {
	best := int64(-1)
	var bestPath graph.Path
	for _, c := range chargers {
		if c == cursor || visited[c] {
			continue
		}
		sp, err := p.net.ShortestPath(cursor, c)
		if err != nil {
			continue
		}
		if sp.Distance*req.ConsumptionRate > req.Capacity+energyTolerance {
			continue
		}
		if best < 0 || sp.Distance > bestPath.Distance {
			best, bestPath = c, sp
		}
	}
	return best, bestPath, best >= 0
}

func appendPath(r *model.Route, sp graph.Path) {
	if len(sp.Vertices) > 1 {
		r.Vertices = append(r.Vertices, sp.Vertices[1:]...)
	}
	r.Distance += sp.Distance
}
