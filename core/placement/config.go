package placement

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/model"
)

// Objective selects how the distance of a vertex to its nearest center is
// weighted in the placement cost.
type Objective string

const (
	// ObjectiveDistance sums plain distances.
	ObjectiveDistance Objective = "distance"
	// ObjectivePopulation weights each distance by the vertex population.
	ObjectivePopulation Objective = "population"
)

// DefaultMaxScans bounds local search when no explicit cap is configured.
const DefaultMaxScans = 1000

// Config holds the optimizer parameters.
type Config struct {
	// Stations is the number k of chargers to place.
	Stations int `json:"stations"`
	// MaxScans caps the number of local-search scans.
	MaxScans  int       `json:"max_scans"`
	Objective Objective `json:"objective"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Stations == 0 {
		c.Stations = 3
	}
	if c.MaxScans == 0 {
		c.MaxScans = DefaultMaxScans
	}
	if c.Objective == "" {
		c.Objective = ObjectiveDistance
	}
}

// Validate checks the parameters.
func (c Config) Validate() error {
	if c.Stations <= 0 {
		return fmt.Errorf("%w: stations must be positive, got %d", model.ErrInvalidConfig, c.Stations)
	}
	if c.MaxScans < 0 {
		return fmt.Errorf("%w: max_scans must not be negative", model.ErrInvalidConfig)
	}
	switch c.Objective {
	case "", ObjectiveDistance, ObjectivePopulation:
	default:
		return fmt.Errorf("%w: unknown objective %q", model.ErrInvalidConfig, c.Objective)
	}
	return nil
}
