package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/placement"
	"github.com/kilianp07/chargeplan/core/trace"
	"github.com/kilianp07/chargeplan/core/traffic"
)

// EnvPrefix prefixes environment overrides; CP_TRAFFIC__VEHICLES sets
// traffic.vehicles.
const EnvPrefix = "CP_"

type Config struct {
	Graph     GraphConfig      `json:"graph"`
	Placement placement.Config `json:"placement"`
	Traffic   traffic.Config   `json:"traffic"`
	Metrics   metrics.Config   `json:"metrics"`
	Trace     trace.Config     `json:"trace"`
	Output    OutputConfig     `json:"output"`
	Sentry    SentryConfig     `json:"sentry"`
}

// Load reads path (YAML or JSON, by extension), applies environment
// overrides, fills defaults and validates every section. An empty path
// yields the defaults plus environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	keepExplicitZeros(k, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// keepExplicitZeros restores counts that were set to 0 in the file or the
// environment, which SetDefaults cannot tell apart from unset keys.
func keepExplicitZeros(k *koanf.Koanf, cfg *Config) {
	if k.Exists("placement.stations") {
		cfg.Placement.Stations = k.Int("placement.stations")
	}
	if k.Exists("traffic.vehicles") {
		cfg.Traffic.Vehicles = k.Int("traffic.vehicles")
	}
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Graph.SetDefaults()
	c.Placement.SetDefaults()
	c.Traffic.SetDefaults()
	c.Metrics.SetDefaults()
	c.Trace.SetDefaults()
	c.Output.SetDefaults()
	c.Sentry.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Graph.Validate(); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if err := c.Placement.Validate(); err != nil {
		return fmt.Errorf("placement: %w", err)
	}
	if err := c.Traffic.Validate(); err != nil {
		return fmt.Errorf("traffic: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Trace.Validate(); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if err := c.Sentry.Validate(); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	return nil
}
