// Package placement chooses the vertices that host charging stations.
//
// The Optimizer solves the k-median problem approximately: k centers are
// seeded greedily, then refined by first-improvement single-swap local
// search bounded by Config.MaxScans. Candidate center sets are evaluated on a
// private overlay; only committed picks and accepted swaps are written back
// to the network as Charger vertices.
package placement
