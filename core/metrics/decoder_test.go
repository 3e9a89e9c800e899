package metrics_test

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"

	metrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/model"
)

func TestConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: prometheus
  - type: influx
    conf:
      url: http://localhost:8086
      bucket: runs
emission_factor: 95
textfile: /tmp/chargeplan.prom
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if cfg.EmissionFactor != 95 || cfg.Textfile != "/tmp/chargeplan.prom" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Sinks) != 2 || cfg.Sinks[1].Conf["bucket"] != "runs" {
		t.Fatalf("unexpected sinks %+v", cfg.Sinks)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := metrics.Config{EmissionFactor: -1}
	if err := cfg.Validate(); !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative factor, got %v", err)
	}
	var untyped metrics.Config
	if err := yaml.Unmarshal([]byte("sinks:\n  - conf: {}\n"), &untyped); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if err := untyped.Validate(); !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for sink without type, got %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg metrics.Config
	cfg.SetDefaults()
	if cfg.EmissionFactor != metrics.DefaultEmissionFactor {
		t.Fatalf("unexpected emission factor %v", cfg.EmissionFactor)
	}
}
