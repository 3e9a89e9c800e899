package events

// Placement phases.
const (
	PhaseGreedy = "greedy"
	PhaseSwap   = "swap"
)

// PlacementEvent is published when the optimizer commits a change to the
// charger assignment. Removed is -1 for greedy picks.
type PlacementEvent struct {
	RunID   string
	Phase   string
	Added   int64
	Removed int64
	Cost    float64
	Step    int
}
