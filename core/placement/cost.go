package placement

import (
	"fmt"
	"math"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
)

// Cost returns the placement cost of centers: the sum over all vertices of
// the distance to the nearest center, weighted by population when objective
// is ObjectivePopulation. A vertex with no path to any center yields
// ErrUnreachable.
func Cost(net *graph.Network, centers []int64, objective Objective) (float64, error) {
	e := newEvaluator(net, objective)
	return e.cost(centers)
}

// evaluator caches one distance row per center so that repeated cost
// evaluations during optimization only pay for each Dijkstra once.
type evaluator struct {
	net     *graph.Network
	weights []float64
	rows    map[int64][]float64
}

func newEvaluator(net *graph.Network, objective Objective) *evaluator {
	n := net.VertexCount()
	w := make([]float64, n)
	for i := range w {
		if objective == ObjectivePopulation {
			w[i] = net.Population(int64(i))
		} else {
			w[i] = 1
		}
	}
	return &evaluator{net: net, weights: w, rows: make(map[int64][]float64)}
}

func (e *evaluator) row(c int64) ([]float64, error) {
	if r, ok := e.rows[c]; ok {
		return r, nil
	}
	r, err := e.net.DistancesFrom(c)
	if err != nil {
		return nil, err
	}
	e.rows[c] = r
	return r, nil
}

func (e *evaluator) cost(centers []int64) (float64, error) {
	if len(centers) == 0 {
		return 0, fmt.Errorf("%w: empty center set", model.ErrInvalidConfig)
	}
	rows := make([][]float64, len(centers))
	for i, c := range centers {
		r, err := e.row(c)
		if err != nil {
			return 0, err
		}
		rows[i] = r
	}
	total := 0.0
	for v, w := range e.weights {
		best := math.Inf(1)
		for _, r := range rows {
			if r[v] < best {
				best = r[v]
			}
		}
		if math.IsInf(best, 1) {
			return 0, fmt.Errorf("vertex %d has no path to a center: %w", v, model.ErrUnreachable)
		}
		total += w * best
	}
	return total, nil
}
