// Package metrics defines the sinks that observe placement and simulation
// runs. A MetricsSink records end-of-run vehicle outcomes; optional recorder
// interfaces receive placement steps, placement summaries, simulation rounds
// and vehicle transitions. Sinks like PromSink and InfluxSink are built
// from configuration through the factory registry, which wraps several
// configured sinks in a MultiSink.
package metrics
