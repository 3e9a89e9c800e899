package eventbus

import "testing"

func TestSubscribeToFiltersType(t *testing.T) {
	bus := New()
	var ints []int
	SubscribeTo(bus, func(v int) { ints = append(ints, v) })
	bus.Publish("hello")
	bus.Publish(4)
	bus.Publish(2.5)
	bus.Publish(7)
	if len(ints) != 2 || ints[0] != 4 || ints[1] != 7 {
		t.Fatalf("unexpected ints %v", ints)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	p.Publish("ignored")
}
