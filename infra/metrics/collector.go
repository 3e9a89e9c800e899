package metrics

import (
	"sync"
	"time"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/logger"
	coremetrics "github.com/kilianp07/chargeplan/core/metrics"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// EventCollector forwards placement, round and vehicle events from the bus
// to the recorders the sink implements.
type EventCollector struct {
	sink coremetrics.MetricsSink
	log  logger.Logger
	stop func()

	mu     sync.Mutex
	failed int
}

// StartEventCollector subscribes a collector to bus. Only the first failing
// record is logged; Failures reports the total.
func StartEventCollector(bus eventbus.EventBus, sink coremetrics.MetricsSink, log logger.Logger) *EventCollector {
	c := &EventCollector{sink: sink, log: log, stop: func() {}}
	if bus == nil || sink == nil {
		return c
	}
	sub := bus.Subscribe(c.Handle)
	c.stop = func() { bus.Unsubscribe(sub) }
	return c
}

// Handle records a single event. Other event types are ignored.
func (c *EventCollector) Handle(ev eventbus.Event) {
	var err error
	switch e := ev.(type) {
	case events.PlacementEvent:
		if r, ok := c.sink.(coremetrics.PlacementRecorder); ok {
			err = r.RecordPlacementStep(coremetrics.PlacementStep{
				RunID: e.RunID, Phase: e.Phase, Added: e.Added, Removed: e.Removed,
				Cost: e.Cost, Step: e.Step, Time: time.Now(),
			})
		}
	case events.RoundEvent:
		if r, ok := c.sink.(coremetrics.RoundRecorder); ok {
			err = r.RecordRound(coremetrics.RoundStats{
				RunID: e.RunID, Round: e.Round, Running: e.Running, Moved: e.Moved, Time: time.Now(),
			})
		}
	case events.VehicleEvent:
		if r, ok := c.sink.(coremetrics.VehicleTransitionRecorder); ok {
			err = r.RecordVehicleTransition(coremetrics.VehicleTransition{
				RunID: e.RunID, VehicleID: e.VehicleID, Round: e.Round, Action: e.Action,
				From: e.From, To: e.To, BatteryKWh: e.Battery, Time: time.Now(),
			})
		}
	}
	if err == nil {
		return
	}
	c.mu.Lock()
	c.failed++
	first := c.failed == 1
	c.mu.Unlock()
	if first && c.log != nil {
		c.log.Errorf("metrics record failed: %v", err)
	}
}

// Stop removes the bus subscription.
func (c *EventCollector) Stop() { c.stop() }

// Failures returns the number of events the sink rejected.
func (c *EventCollector) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}
