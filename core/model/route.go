package model

// Route is the precomputed itinerary of a vehicle. Consecutive vertices are
// joined by a graph edge.
type Route struct {
	Vertices []int64 `json:"vertices"`
	// Chargers lists the charging detours in visiting order.
	Chargers []int64 `json:"chargers,omitempty"`
	// Distance is the total length of the route in km.
	Distance float64 `json:"distance"`
	// Complete is false when the planner could not reach the destination
	// within battery constraints.
	Complete bool `json:"complete"`
}

// Len returns the number of vertices of the route.
func (r Route) Len() int { return len(r.Vertices) }

// Last returns the final vertex of the route, or -1 for an empty route.
func (r Route) Last() int64 {
	if len(r.Vertices) == 0 {
		return -1
	}
	return r.Vertices[len(r.Vertices)-1]
}

// IndexFrom returns the first index >= start holding vertex v, or -1.
func (r Route) IndexFrom(start int, v int64) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(r.Vertices); i++ {
		if r.Vertices[i] == v {
			return i
		}
	}
	return -1
}
