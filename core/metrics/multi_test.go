package metrics

import "testing"

// TestMultiSink ensures records are forwarded to all sinks.

type recordSink struct {
	count int
}

func (r *recordSink) RecordVehicleOutcomes([]VehicleOutcome) error {
	r.count++
	return nil
}

func (r *recordSink) RecordRound(RoundStats) error {
	r.count++
	return nil
}

type outcomesOnly struct{ count int }

func (o *outcomesOnly) RecordVehicleOutcomes([]VehicleOutcome) error {
	o.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	s3 := &outcomesOnly{}
	m := NewMultiSink(s1, s2, s3)
	if err := m.RecordVehicleOutcomes(nil); err != nil {
		t.Fatalf("record outcomes: %v", err)
	}
	if err := m.RecordRound(RoundStats{Round: 1}); err != nil {
		t.Fatalf("record round: %v", err)
	}
	if err := m.RecordPlacementStep(PlacementStep{}); err != nil {
		t.Fatalf("record step: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("records not forwarded")
	}
	if s3.count != 1 {
		t.Fatalf("expected optional recorders to be skipped, got %d", s3.count)
	}
}
