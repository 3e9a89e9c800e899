package graph

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kilianp07/chargeplan/core/model"
)

// Coord is a planar position, longitude/latitude for real networks.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vertex holds the attributes of a network vertex.
type Vertex struct {
	ID         int64
	Population float64
	Kind       model.StationKind
	Coord      *Coord
}

// Edge is an undirected road segment.
type Edge struct {
	A, B     int64
	Distance float64
}

// Path is the result of a shortest-path query.
type Path struct {
	Vertices []int64
	Distance float64
}

// Network is an undirected weighted graph with dense vertex ids 0..n-1.
type Network struct {
	g        *simple.WeightedUndirectedGraph
	vertices []Vertex
	edges    []Edge

	mu    sync.Mutex
	trees map[int64]path.Shortest
}

// New returns a network with n isolated Normal vertices.
func New(n int) *Network {
	net := &Network{
		g:     simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		trees: make(map[int64]path.Shortest),
	}
	for i := 0; i < n; i++ {
		net.AddVertex(0, nil)
	}
	return net
}

// AddVertex appends a Normal vertex and returns its id.
func (n *Network) AddVertex(population float64, c *Coord) int64 {
	id := int64(len(n.vertices))
	n.g.AddNode(simple.Node(id))
	n.vertices = append(n.vertices, Vertex{ID: id, Population: population, Kind: model.Normal, Coord: c})
	n.invalidate()
	return id
}

// AddEdge joins a and b with an edge of the given distance.
func (n *Network) AddEdge(a, b int64, distance float64) error {
	if !n.has(a) || !n.has(b) {
		return fmt.Errorf("edge %d-%d: %w", a, b, model.ErrNotFound)
	}
	if a == b {
		return fmt.Errorf("%w: self-loop on vertex %d", model.ErrInvalidConfig, a)
	}
	if !(distance > 0) || math.IsInf(distance, 0) {
		return fmt.Errorf("%w: edge %d-%d distance %v must be positive", model.ErrInvalidConfig, a, b, distance)
	}
	if n.g.HasEdgeBetween(a, b) {
		return fmt.Errorf("%w: edge %d-%d already exists", model.ErrInvalidConfig, a, b)
	}
	n.g.SetWeightedEdge(n.g.NewWeightedEdge(simple.Node(a), simple.Node(b), distance))
	n.edges = append(n.edges, Edge{A: a, B: b, Distance: distance})
	n.invalidate()
	return nil
}

// VertexCount returns the number of vertices.
func (n *Network) VertexCount() int { return len(n.vertices) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.edges) }

// Edges returns the edges in insertion order.
func (n *Network) Edges() []Edge {
	out := make([]Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// Vertex returns a copy of the vertex attributes.
func (n *Network) Vertex(id int64) (Vertex, error) {
	if !n.has(id) {
		return Vertex{}, fmt.Errorf("vertex %d: %w", id, model.ErrNotFound)
	}
	return n.vertices[id], nil
}

// Population returns the population of a vertex, 0 for unknown ids.
func (n *Network) Population(id int64) float64 {
	if !n.has(id) {
		return 0
	}
	return n.vertices[id].Population
}

// SetPopulation updates the population of a vertex.
func (n *Network) SetPopulation(id int64, p float64) error {
	if !n.has(id) {
		return fmt.Errorf("vertex %d: %w", id, model.ErrNotFound)
	}
	if p < 0 {
		return fmt.Errorf("%w: negative population %v", model.ErrInvalidConfig, p)
	}
	n.vertices[id].Population = p
	return nil
}

// Kind returns the station kind of a vertex, Normal for unknown ids.
func (n *Network) Kind(id int64) model.StationKind {
	if !n.has(id) {
		return model.Normal
	}
	return n.vertices[id].Kind
}

// SetKind marks a vertex as Normal or Charger.
func (n *Network) SetKind(id int64, k model.StationKind) error {
	if !n.has(id) {
		return fmt.Errorf("vertex %d: %w", id, model.ErrNotFound)
	}
	n.vertices[id].Kind = k
	return nil
}

// ResetKinds marks every vertex Normal.
func (n *Network) ResetKinds() {
	for i := range n.vertices {
		n.vertices[i].Kind = model.Normal
	}
}

// Chargers returns the ids of Charger vertices in ascending order.
func (n *Network) Chargers() []int64 {
	var out []int64
	for _, v := range n.vertices {
		if v.Kind == model.Charger {
			out = append(out, v.ID)
		}
	}
	return out
}

// HasCoords reports whether every vertex carries coordinates.
func (n *Network) HasCoords() bool {
	if len(n.vertices) == 0 {
		return false
	}
	for _, v := range n.vertices {
		if v.Coord == nil {
			return false
		}
	}
	return true
}

// EdgeDistance returns the distance of the edge joining a and b.
func (n *Network) EdgeDistance(a, b int64) (float64, error) {
	if a == b || !n.has(a) || !n.has(b) {
		return 0, fmt.Errorf("edge %d-%d: %w", a, b, model.ErrNotFound)
	}
	w, ok := n.g.Weight(a, b)
	if !ok {
		return 0, fmt.Errorf("edge %d-%d: %w", a, b, model.ErrNotFound)
	}
	return w, nil
}

// ShortestPath returns the minimum-distance path from src to dst.
func (n *Network) ShortestPath(src, dst int64) (Path, error) {
	if !n.has(src) || !n.has(dst) {
		return Path{}, fmt.Errorf("path %d->%d: %w", src, dst, model.ErrNotFound)
	}
	nodes, w := n.tree(src).To(dst)
	if len(nodes) == 0 || math.IsInf(w, 1) {
		return Path{}, fmt.Errorf("path %d->%d: %w", src, dst, model.ErrUnreachable)
	}
	p := Path{Vertices: make([]int64, len(nodes)), Distance: w}
	for i, nd := range nodes {
		p.Vertices[i] = nd.ID()
	}
	return p, nil
}

// Distance returns the shortest-path distance between src and dst.
func (n *Network) Distance(src, dst int64) (float64, error) {
	if !n.has(src) || !n.has(dst) {
		return 0, fmt.Errorf("distance %d->%d: %w", src, dst, model.ErrNotFound)
	}
	w := n.tree(src).WeightTo(dst)
	if math.IsInf(w, 1) {
		return 0, fmt.Errorf("distance %d->%d: %w", src, dst, model.ErrUnreachable)
	}
	return w, nil
}

// DistancesFrom returns the shortest-path distance from src to every vertex,
// indexed by vertex id. Unreachable vertices hold +Inf.
func (n *Network) DistancesFrom(src int64) ([]float64, error) {
	if !n.has(src) {
		return nil, fmt.Errorf("vertex %d: %w", src, model.ErrNotFound)
	}
	t := n.tree(src)
	out := make([]float64, len(n.vertices))
	for i := range out {
		out[i] = t.WeightTo(int64(i))
	}
	return out, nil
}

// Connected reports whether every vertex can reach every other one.
func (n *Network) Connected() bool {
	if len(n.vertices) == 0 {
		return true
	}
	return len(topo.ConnectedComponents(n.g)) == 1
}

// Neighbors returns the adjacent vertex ids in ascending order.
func (n *Network) Neighbors(id int64) []int64 {
	if !n.has(id) {
		return nil
	}
	var out []int64
	it := n.g.From(id)
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (n *Network) has(id int64) bool { return id >= 0 && id < int64(len(n.vertices)) }

func (n *Network) tree(src int64) path.Shortest {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t, ok := n.trees[src]; ok {
		return t
	}
	t := path.DijkstraFrom(simple.Node(src), n.g)
	n.trees[src] = t
	return t
}

func (n *Network) invalidate() {
	n.mu.Lock()
	n.trees = make(map[int64]path.Shortest)
	n.mu.Unlock()
}
