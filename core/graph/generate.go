package graph

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/kilianp07/chargeplan/core/model"
)

// GenerateOptions controls synthetic network generation.
type GenerateOptions struct {
	Vertices int
	// EdgeFactor sets the edge count to round(EdgeFactor*Vertices), never
	// below the Vertices-1 edges of a spanning tree.
	EdgeFactor    float64
	MinWeight     int
	MaxWeight     int
	MaxPopulation int
	Seed          uint64
}

// Validate checks the generation bounds.
func (o GenerateOptions) Validate() error {
	if o.Vertices < 1 {
		return fmt.Errorf("%w: vertices must be positive", model.ErrInvalidConfig)
	}
	if o.EdgeFactor < 0 {
		return fmt.Errorf("%w: edge factor must not be negative", model.ErrInvalidConfig)
	}
	if o.MinWeight <= 0 || o.MaxWeight < o.MinWeight {
		return fmt.Errorf("%w: weight range [%d, %d]", model.ErrInvalidConfig, o.MinWeight, o.MaxWeight)
	}
	if o.MaxPopulation < 0 {
		return fmt.Errorf("%w: max population must not be negative", model.ErrInvalidConfig)
	}
	return nil
}

// Generate builds a connected random network. A random spanning tree is laid
// first, then extra distinct edges are drawn uniformly until the target edge
// count is reached. Vertices are placed on the unit circle.
func Generate(o GenerateOptions) (*Network, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
	n := o.Vertices
	net := New(0)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pop := 0.0
		if o.MaxPopulation > 0 {
			pop = float64(rng.IntN(o.MaxPopulation))
		}
		net.AddVertex(pop, &Coord{X: math.Cos(angle), Y: math.Sin(angle)})
	}

	maxEdges := n * (n - 1) / 2
	target := int(math.Round(o.EdgeFactor * float64(n)))
	if target < n-1 {
		target = n - 1
	}
	if target > maxEdges {
		target = maxEdges
	}
	weight := func() float64 {
		return float64(rng.IntN(o.MaxWeight-o.MinWeight+1) + o.MinWeight)
	}

	order := rng.Perm(n)
	for i := 1; i < n; i++ {
		a := int64(order[i])
		b := int64(order[rng.IntN(i)])
		if err := net.AddEdge(a, b, weight()); err != nil {
			return nil, err
		}
	}
	for net.EdgeCount() < target {
		a := int64(rng.IntN(n))
		b := int64(rng.IntN(n))
		if a == b || net.g.HasEdgeBetween(a, b) {
			continue
		}
		if err := net.AddEdge(a, b, weight()); err != nil {
			return nil, err
		}
	}
	return net, nil
}
