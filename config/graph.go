package config

import (
	"fmt"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
)

// Graph sources.
const (
	SourceRandom = "random"
	SourceCSV    = "csv"
)

// RandomGraphConfig bounds synthetic network generation.
type RandomGraphConfig struct {
	Vertices      int     `json:"vertices"`
	EdgeFactor    float64 `json:"edge_factor"`
	MinWeight     int     `json:"min_weight"`
	MaxWeight     int     `json:"max_weight"`
	MaxPopulation int     `json:"max_population"`
}

// GraphConfig selects where the road network comes from.
type GraphConfig struct {
	// Source is "random" or "csv".
	Source       string            `json:"source"`
	VerticesFile string            `json:"vertices_file"`
	EdgesFile    string            `json:"edges_file"`
	Seed         uint64            `json:"seed"`
	Random       RandomGraphConfig `json:"random"`
}

// SetDefaults applies sane defaults.
func (c *GraphConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = SourceRandom
	}
	if c.Random.Vertices == 0 {
		c.Random.Vertices = 30
	}
	if c.Random.EdgeFactor == 0 {
		c.Random.EdgeFactor = 1.25
	}
	if c.Random.MinWeight == 0 {
		c.Random.MinWeight = 10
	}
	if c.Random.MaxWeight == 0 {
		c.Random.MaxWeight = 200
	}
	if c.Random.MaxPopulation == 0 {
		c.Random.MaxPopulation = 100
	}
}

// Validate checks the selected source is usable.
func (c GraphConfig) Validate() error {
	switch c.Source {
	case SourceRandom:
		return c.GenerateOptions().Validate()
	case SourceCSV:
		if c.VerticesFile == "" || c.EdgesFile == "" {
			return fmt.Errorf("%w: csv source needs vertices_file and edges_file", model.ErrInvalidConfig)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown graph source %q", model.ErrInvalidConfig, c.Source)
	}
}

// GenerateOptions converts the random section for graph.Generate.
func (c GraphConfig) GenerateOptions() graph.GenerateOptions {
	return graph.GenerateOptions{
		Vertices:      c.Random.Vertices,
		EdgeFactor:    c.Random.EdgeFactor,
		MinWeight:     c.Random.MinWeight,
		MaxWeight:     c.Random.MaxWeight,
		MaxPopulation: c.Random.MaxPopulation,
		Seed:          c.Seed,
	}
}
