package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/chargeplan/core/factory"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/core/metrics/eco"
	"github.com/kilianp07/chargeplan/infra/kpi"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	_ = coremetrics.RegisterMetricsSink("eco", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			EmissionFactor float64 `json:"emission_factor"`
			// Store is "memory" (default) or "sqlite".
			Store string `json:"store"`
			Path  string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.EmissionFactor == 0 {
			c.EmissionFactor = coremetrics.DefaultEmissionFactor
		}
		var store eco.Store = eco.NewMemoryStore()
		switch c.Store {
		case "", "memory":
		case "sqlite":
			if c.Path == "" {
				c.Path = "eco_kpi.db"
			}
			db, err := kpi.NewSQLiteStore(c.Path)
			if err != nil {
				return nil, fmt.Errorf("eco store: %w", err)
			}
			store = db
		default:
			return nil, fmt.Errorf("unknown eco store %q", c.Store)
		}
		return NewEcoSink(store, c.EmissionFactor, prometheus.DefaultRegisterer)
	})
}
