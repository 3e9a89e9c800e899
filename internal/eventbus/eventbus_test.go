package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	var got []Event
	id := bus.Subscribe(func(e Event) { got = append(got, e) })
	bus.Publish("hello")
	bus.Publish("world")
	if len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Fatalf("unexpected events %v", got)
	}
	bus.Unsubscribe(id)
	bus.Publish("again")
	if len(got) != 2 {
		t.Fatalf("handler called after unsubscribe")
	}
}

func TestBusClose(t *testing.T) {
	bus := New()
	calls := 0
	bus.Subscribe(func(Event) { calls++ })
	bus.Subscribe(func(Event) { calls++ })
	bus.Close()
	bus.Publish("x")
	if calls != 0 {
		t.Fatalf("expected no delivery after close, got %d", calls)
	}
	bus.Subscribe(func(Event) { calls++ })
	bus.Publish("y")
	if calls != 0 {
		t.Fatalf("expected subscribe after close to be inert")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	id := bus.Subscribe(func(Event) {})
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(id)
}

func TestBusOrder(t *testing.T) {
	bus := New()
	var order []int
	bus.Subscribe(func(Event) { order = append(order, 1) })
	bus.Subscribe(func(Event) { order = append(order, 2) })
	bus.Publish(struct{}{})
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
}
