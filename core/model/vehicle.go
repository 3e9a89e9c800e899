package model

import "fmt"

// Status is the lifecycle state of a simulated vehicle.
type Status int

const (
	StatusRunning Status = iota
	StatusArrived
	// StatusRecharging is reserved; recharging is instantaneous so no vehicle
	// holds it between rounds.
	StatusRecharging
	StatusStranded
	StatusOther
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusArrived:
		return "arrived"
	case StatusRecharging:
		return "recharging"
	case StatusStranded:
		return "stranded"
	case StatusOther:
		return "other"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "running":
		*s = StatusRunning
	case "arrived":
		*s = StatusArrived
	case "recharging":
		*s = StatusRecharging
	case "stranded":
		*s = StatusStranded
	case "other":
		*s = StatusOther
	default:
		return fmt.Errorf("unknown vehicle status %q", b)
	}
	return nil
}

// Terminal reports whether the vehicle is no longer advanced.
func (s Status) Terminal() bool {
	return s == StatusArrived || s == StatusStranded || s == StatusOther
}

// Vehicle represents an electric vehicle travelling on the road network.
type Vehicle struct {
	ID          string
	Origin      int64
	Destination int64
	Position    int64
	Route       Route
	// RouteIndex is the index of Position within Route.Vertices.
	RouteIndex      int
	Capacity        float64 // battery capacity in kWh
	ConsumptionRate float64 // kWh consumed per km
	Battery         float64 // current charge in kWh
	Distance        float64 // cumulative km travelled
	Status          Status
}

// NewVehicle returns a running vehicle parked at origin with a full battery.
func NewVehicle(id string, origin, destination int64, capacity, rate float64) *Vehicle {
	return &Vehicle{
		ID:              id,
		Origin:          origin,
		Destination:     destination,
		Position:        origin,
		Capacity:        capacity,
		ConsumptionRate: rate,
		Battery:         capacity,
		Status:          StatusRunning,
	}
}

// Validate checks that the battery parameters are sound.
func (v Vehicle) Validate() error {
	if v.Capacity <= 0 {
		return fmt.Errorf("%w: battery capacity must be positive", ErrInvalidConfig)
	}
	if v.ConsumptionRate < 0 {
		return fmt.Errorf("%w: consumption rate must not be negative", ErrInvalidConfig)
	}
	if v.Battery < 0 || v.Battery > v.Capacity {
		return fmt.Errorf("%w: battery %.2f outside [0, %.2f]", ErrInvalidConfig, v.Battery, v.Capacity)
	}
	return nil
}

// Energy returns the energy consumed so far in kWh.
func (v Vehicle) Energy() float64 { return v.Distance * v.ConsumptionRate }

// Consumption returns the energy needed to drive distance km.
func (v Vehicle) Consumption(distance float64) float64 { return distance * v.ConsumptionRate }
