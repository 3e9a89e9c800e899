package metrics

import "github.com/prometheus/client_golang/prometheus"

// WriteTextfile dumps every metric gathered by g to path in the Prometheus
// text exposition format, for node_exporter's textfile collector. A nil
// gatherer selects the default registry.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return prometheus.WriteToTextfile(path, g)
}
