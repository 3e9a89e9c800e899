package traffic

import (
	"fmt"
	"math/rand/v2"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
)

// NewRand returns the deterministic generator used for fleet sampling.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda942042e4dd58b5))
}

// GenerateFleet creates cfg.Vehicles vehicles with IDs veh0001..vehNNNN.
// Origins are drawn with probability proportional to vertex population,
// uniformly when the network has no population. Destinations are uniform
// among the other vertices. Routes are left empty.
func GenerateFleet(net *graph.Network, cfg Config, rng *rand.Rand) ([]*model.Vehicle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := net.VertexCount()
	if cfg.Vehicles == 0 {
		return nil, nil
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two vertices for trips, got %d", model.ErrInvalidConfig, n)
	}

	cumulative := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		total += net.Population(int64(i))
		cumulative[i] = total
	}

	vs := make([]*model.Vehicle, cfg.Vehicles)
	for i := range vs {
		origin := sampleOrigin(rng, cumulative, total)
		dest := int64(rng.IntN(n - 1))
		if dest >= origin {
			dest++
		}
		vs[i] = model.NewVehicle(fmt.Sprintf("veh%04d", i+1), origin, dest, cfg.BatteryCapacity, cfg.ConsumptionRate)
	}
	return vs, nil
}

func sampleOrigin(rng *rand.Rand, cumulative []float64, total float64) int64 {
	if total <= 0 {
		return int64(rng.IntN(len(cumulative)))
	}
	x := rng.Float64() * total
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cumulative[mid] > x {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return int64(lo)
}
