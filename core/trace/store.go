// Package trace persists the step-by-step trace of placement and simulation
// runs as JSON lines.
package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/chargeplan/core/model"
)

// Record kinds.
const (
	KindPlacement = "placement"
	KindVehicle   = "vehicle"
	KindRound     = "round"
)

// Record captures one optimizer step, vehicle transition or round.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Action    string    `json:"action,omitempty"`
	Round     int       `json:"round,omitempty"`
	Step      int       `json:"step,omitempty"`
	VehicleID string    `json:"vehicle_id,omitempty"`
	From      int64     `json:"from"`
	To        int64     `json:"to"`
	Distance  float64   `json:"distance,omitempty"`
	Battery   float64   `json:"battery,omitempty"`
	Cost      float64   `json:"cost,omitempty"`
	Running   int       `json:"running,omitempty"`
	Status    string    `json:"status,omitempty"`
}

// Query defines filters for retrieving records. Zero values match all.
type Query struct {
	Start     time.Time
	End       time.Time
	RunID     string
	Kind      string
	VehicleID string
}

// Match reports whether r satisfies the filters.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	if q.VehicleID != "" && r.VehicleID != q.VehicleID {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error           { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }

// Config defines settings for trace storage and rotation.
type Config struct {
	// Backend selects the store type: "none", "jsonl", "rotating" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the trace.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "none"
	}
	if c.Path == "" && c.Backend == "sqlite" {
		c.Path = "trace.db"
	}
	if c.Path == "" && c.Backend != "none" {
		c.Path = "trace.jsonl"
	}
	if c.Backend == "rotating" && c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "none", "":
		return nil
	case "jsonl", "rotating", "sqlite":
	default:
		return fmt.Errorf("%w: unknown trace backend %s", model.ErrInvalidConfig, c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("%w: trace path is required", model.ErrInvalidConfig)
	}
	return nil
}

// New opens the store selected by cfg.
func New(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "rotating":
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return NopStore{}, nil
	}
}
