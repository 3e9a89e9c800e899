package eventbus

import "sync"

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription uint64

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe(Handler) Subscription
	Unsubscribe(Subscription)
	Close()
}

type entry struct {
	id Subscription
	fn Handler
}

// Bus is the default EventBus implementation. Publish calls every handler
// synchronously in subscription order, so no event is ever dropped and the
// order observed by subscribers matches the publishing order.
type Bus struct {
	mu     sync.RWMutex
	subs   []entry
	next   Subscription
	closed bool
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }

// Publish delivers the event to all handlers. Events published after Close
// are discarded.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]entry, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(e)
	}
}

// Subscribe registers a handler. Subscribing to a closed bus returns a
// subscription that never fires.
func (b *Bus) Subscribe(fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	if !b.closed && fn != nil {
		b.subs = append(b.subs, entry{id: b.next, fn: fn})
	}
	return b.next
}

// Unsubscribe removes the handler.
func (b *Bus) Unsubscribe(id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Close drops all handlers.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	b.subs = nil
	b.mu.Unlock()
}
