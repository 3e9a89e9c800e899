package traffic

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/model"
)

// Config holds the fleet and simulation parameters.
type Config struct {
	// Vehicles is the number of trips to simulate.
	Vehicles int `json:"vehicles"`
	// BatteryCapacity in kWh, identical for every vehicle.
	BatteryCapacity float64 `json:"battery_capacity"`
	// ConsumptionRate in kWh per km.
	ConsumptionRate float64 `json:"consumption_rate"`
	// Seed drives origin and destination sampling.
	Seed uint64 `json:"seed"`
	// MaxDetours caps charger detours per trip, 0 allows one per charger.
	MaxDetours int `json:"max_detours"`
	// MaxRounds caps the simulation, 0 derives it from the longest route.
	MaxRounds int `json:"max_rounds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Vehicles == 0 {
		c.Vehicles = 50
	}
	if c.BatteryCapacity == 0 {
		c.BatteryCapacity = 50
	}
	if c.ConsumptionRate == 0 {
		c.ConsumptionRate = 0.2
	}
}

// Validate checks the parameters.
func (c Config) Validate() error {
	if c.Vehicles < 0 {
		return fmt.Errorf("%w: vehicles must not be negative", model.ErrInvalidConfig)
	}
	if !(c.BatteryCapacity > 0) {
		return fmt.Errorf("%w: battery_capacity must be positive", model.ErrInvalidConfig)
	}
	if c.ConsumptionRate < 0 {
		return fmt.Errorf("%w: consumption_rate must not be negative", model.ErrInvalidConfig)
	}
	if c.MaxDetours < 0 || c.MaxRounds < 0 {
		return fmt.Errorf("%w: max_detours and max_rounds must not be negative", model.ErrInvalidConfig)
	}
	return nil
}
