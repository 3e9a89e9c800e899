package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/chargeplan/config"
	coremon "github.com/kilianp07/chargeplan/core/monitoring"
)

// NewSentryMonitor initializes Sentry when a DSN is configured; otherwise it
// returns a NopMonitor. tags are attached to every captured event, typically
// the run id.
func NewSentryMonitor(cfg config.SentryConfig, tags map[string]string) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		return nil, err
	}
	return &sentryMonitor{hub: sentry.CurrentHub(), tags: tags}, nil
}

type sentryMonitor struct {
	hub  *sentry.Hub
	tags map[string]string
}

// CaptureException reports err with the monitor tags plus the given ones,
// the latter taking precedence.
func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range s.tags {
			scope.SetTag(k, v)
		}
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		s.hub.CaptureException(err)
	})
}

func (s *sentryMonitor) Recover() {
	if r := recover(); r != nil {
		s.hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range s.tags {
				scope.SetTag(k, v)
			}
			s.hub.Recover(r)
		})
		s.hub.Flush(2 * time.Second)
		panic(r)
	}
}

func (s *sentryMonitor) Flush(timeout time.Duration) { s.hub.Flush(timeout) }
