package events

import "github.com/kilianp07/chargeplan/core/model"

// Vehicle actions.
const (
	ActionMove     = "move"
	ActionRecharge = "recharge"
	ActionArrive   = "arrive"
	ActionStrand   = "strand"
	ActionDesync   = "desync"
)

// VehicleEvent is published for each vehicle attempt within a round.
type VehicleEvent struct {
	RunID     string
	Round     int
	VehicleID string
	Action    string
	From      int64
	To        int64
	Distance  float64
	Battery   float64
	Status    model.Status
}

// RoundEvent is published once every running vehicle has been attempted.
type RoundEvent struct {
	RunID   string
	Round   int
	Running int
	Moved   int
}
