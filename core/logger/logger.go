// Package logger defines the logging interface used by the optimizer, the
// route planner and the simulator.
package logger

// Fields are the structured key/value pairs of a trace line.
type Fields = map[string]any

// Logger exposes logging methods for common severity levels. Per-step traces
// (greedy picks, swaps, vehicle moves) go through Debugw.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields Fields)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
