package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestVehicleValidate(t *testing.T) {
	cases := []struct {
		name string
		v    Vehicle
		ok   bool
	}{
		{"valid", *NewVehicle("v", 0, 1, 50, 0.2), true},
		{"zero capacity", Vehicle{Capacity: 0}, false},
		{"negative rate", Vehicle{Capacity: 10, ConsumptionRate: -1, Battery: 10}, false},
		{"overcharged", Vehicle{Capacity: 10, Battery: 11}, false},
	}
	for _, c := range cases {
		err := c.v.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig got %v", c.name, err)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusRunning.Terminal() || StatusRecharging.Terminal() {
		t.Fatal("running states reported terminal")
	}
	for _, s := range []Status{StatusArrived, StatusStranded, StatusOther} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
}

func TestRouteIndexFrom(t *testing.T) {
	r := Route{Vertices: []int64{0, 1, 2, 1, 3}}
	if i := r.IndexFrom(0, 1); i != 1 {
		t.Fatalf("expected 1 got %d", i)
	}
	if i := r.IndexFrom(2, 1); i != 3 {
		t.Fatalf("expected 3 got %d", i)
	}
	if i := r.IndexFrom(0, 9); i != -1 {
		t.Fatalf("expected -1 got %d", i)
	}
	if r.Last() != 3 {
		t.Fatalf("unexpected last %d", r.Last())
	}
}

func TestDisconnectedIsUnreachable(t *testing.T) {
	if !errors.Is(ErrDisconnected, ErrUnreachable) {
		t.Fatal("ErrDisconnected must wrap ErrUnreachable")
	}
}

func TestStatusTextRoundTrip(t *testing.T) {
	type wrapper struct {
		S Status `json:"s"`
	}
	for _, st := range []Status{StatusRunning, StatusArrived, StatusRecharging, StatusStranded, StatusOther} {
		b, err := json.Marshal(wrapper{S: st})
		if err != nil {
			t.Fatalf("marshal %s: %v", st, err)
		}
		var got wrapper
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if got.S != st {
			t.Fatalf("round trip: want %s got %s", st, got.S)
		}
	}
	var w wrapper
	if err := json.Unmarshal([]byte(`{"s":"charging"}`), &w); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
