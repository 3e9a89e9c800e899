package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/chargeplan/core/events"
	"github.com/kilianp07/chargeplan/core/model"
	"github.com/kilianp07/chargeplan/infra/logger"
	"github.com/kilianp07/chargeplan/internal/eventbus"
)

type memStore struct {
	NopStore
	recs []Record
	err  error
}

func (m *memStore) Append(_ context.Context, r Record) error {
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, r)
	return nil
}

func TestRecorderConvertsEvents(t *testing.T) {
	bus := eventbus.New()
	store := &memStore{}
	detach := NewRecorder(store, logger.NopLogger{}).Attach(bus)

	bus.Publish(events.PlacementEvent{RunID: "r", Phase: events.PhaseSwap, Added: 4, Removed: 1, Cost: 9, Step: 2})
	bus.Publish(events.VehicleEvent{RunID: "r", Round: 3, VehicleID: "veh0002", Action: events.ActionStrand, From: 1, To: 2, Status: model.StatusStranded})
	bus.Publish(events.RoundEvent{RunID: "r", Round: 3, Running: 1})
	bus.Publish(42)

	require.Len(t, store.recs, 3)
	assert.Equal(t, KindPlacement, store.recs[0].Kind)
	assert.Equal(t, int64(1), store.recs[0].From)
	assert.Equal(t, int64(4), store.recs[0].To)
	assert.Equal(t, "stranded", store.recs[1].Status)
	assert.Equal(t, KindRound, store.recs[2].Kind)
	assert.False(t, store.recs[2].Timestamp.IsZero())

	detach()
	bus.Publish(events.RoundEvent{Round: 4})
	assert.Len(t, store.recs, 3)
}

func TestRecorderCountsFailures(t *testing.T) {
	rec := NewRecorder(&memStore{err: errors.New("disk full")}, logger.NopLogger{})
	rec.Handle(events.RoundEvent{Round: 1})
	rec.Handle(events.RoundEvent{Round: 2})
	assert.Equal(t, 2, rec.Failures())
}
