// Package graph implements the road network consumed by the optimizer, the
// route planner and the traffic simulator. Vertices carry typed attributes
// (population, station kind, optional coordinates) and edges a strictly
// positive distance. Storage and Dijkstra shortest paths are delegated to
// gonum; shortest-path trees are cached per source until the topology changes.
package graph
