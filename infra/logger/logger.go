package logger

import corelogger "github.com/kilianp07/chargeplan/core/logger"

// Logger is the core logger interface, re-exported for callers that only
// import infra.
type Logger = corelogger.Logger

// NopLogger discards everything. Tests and library callers without a
// configured logger use it.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debugf(string, ...any)            {}
func (NopLogger) Debugw(string, corelogger.Fields) {}
func (NopLogger) Infof(string, ...any)             {}
func (NopLogger) Warnf(string, ...any)             {}
func (NopLogger) Errorf(string, ...any)            {}

// New returns the zerolog-backed Logger for a chargeplan component.
func New(component string) Logger {
	return NewZerologLogger(component)
}
