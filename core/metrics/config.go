package metrics

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/factory"
	"github.com/kilianp07/chargeplan/core/model"
)

// DefaultEmissionFactor is the CO2 emitted by a combustion vehicle in g/km.
const DefaultEmissionFactor = 110

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	// EmissionFactor in grams of CO2 per km, used to compute avoided emissions.
	EmissionFactor float64 `json:"emission_factor" yaml:"emission_factor"`
	// Textfile, when set, receives a Prometheus text exposition dump at the
	// end of the run.
	Textfile string `json:"textfile" yaml:"textfile"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.EmissionFactor == 0 {
		c.EmissionFactor = DefaultEmissionFactor
	}
}

// Validate checks the emission factor and that every sink names a type.
func (c Config) Validate() error {
	if c.EmissionFactor < 0 {
		return fmt.Errorf("%w: emission_factor must not be negative", model.ErrInvalidConfig)
	}
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("%w: sink %d has no type", model.ErrInvalidConfig, i)
		}
	}
	return nil
}
