// Package infra contains technical adapters: the zerolog logger, metrics
// sinks and their HTTP exposition, the Sentry monitor, the SQLite KPI store
// and road network file formats. These packages depend only on the
// interfaces defined in the core packages.
package infra
