// Package traffic generates a vehicle fleet, advances it over the network in
// discrete rounds and reduces the outcome to aggregate statistics.
package traffic
