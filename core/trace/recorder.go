package trace

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/logger"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

// Recorder appends bus events to a Store.
type Recorder struct {
	store Store
	log   logger.Logger
	now   func() time.Time

	mu     sync.Mutex
	failed int
}

// NewRecorder returns a recorder writing to store.
func NewRecorder(store Store, log logger.Logger) *Recorder {
	return &Recorder{store: store, log: log, now: time.Now}
}

// Attach subscribes the recorder to bus and returns a function removing the
// subscription.
func (r *Recorder) Attach(bus eventbus.EventBus) func() {
	sub := bus.Subscribe(r.Handle)
	return func() { bus.Unsubscribe(sub) }
}

// Handle converts a placement, vehicle or round event into a Record. Other
// events are ignored.
func (r *Recorder) Handle(ev eventbus.Event) {
	var rec Record
	switch e := ev.(type) {
	case events.PlacementEvent:
		rec = Record{RunID: e.RunID, Kind: KindPlacement, Action: e.Phase, Step: e.Step, From: e.Removed, To: e.Added, Cost: e.Cost}
	case events.VehicleEvent:
		rec = Record{
			RunID: e.RunID, Kind: KindVehicle, Action: e.Action, Round: e.Round, VehicleID: e.VehicleID,
			From: e.From, To: e.To, Distance: e.Distance, Battery: e.Battery, Status: e.Status.String(),
		}
	case events.RoundEvent:
		rec = Record{RunID: e.RunID, Kind: KindRound, Round: e.Round, Running: e.Running, From: -1, To: -1}
	default:
		return
	}
	rec.Timestamp = r.now()
	if err := r.store.Append(context.Background(), rec); err != nil {
		r.mu.Lock()
		r.failed++
		first := r.failed == 1
		r.mu.Unlock()
		if first {
			r.log.Errorf("trace append failed: %v", err)
		}
	}
}

// Failures returns the number of records that could not be stored.
func (r *Recorder) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}
