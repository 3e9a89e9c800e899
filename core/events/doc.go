// Package events defines the events emitted on the event bus while stations
// are placed and traffic is simulated.
//
// Available event types:
//   - PlacementEvent: greedy pick or accepted local-search swap
//   - VehicleEvent: per-vehicle move, recharge or terminal transition
//   - RoundEvent: end of a simulation round
package events
