package eventbus

// SubscribeTo registers fn for events of type T only; other events are
// ignored.
func SubscribeTo[T any](b EventBus, fn func(T)) Subscription {
	return b.Subscribe(func(e Event) {
		if v, ok := e.(T); ok {
			fn(v)
		}
	})
}

// Publisher is the publishing half of an EventBus.
type Publisher interface {
	Publish(Event)
}

// Nop is a Publisher that discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(Event) {}
