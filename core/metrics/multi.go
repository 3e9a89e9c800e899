package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordVehicleOutcomes forwards the outcomes to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordVehicleOutcomes(out []VehicleOutcome) error {
	for _, s := range m.Sinks {
		if err := s.RecordVehicleOutcomes(out); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlacementStep forwards optimizer steps.
func (m *MultiSink) RecordPlacementStep(ev PlacementStep) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PlacementRecorder); ok {
			if err := rec.RecordPlacementStep(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPlacementSummary forwards optimization results.
func (m *MultiSink) RecordPlacementSummary(ev PlacementSummary) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PlacementSummaryRecorder); ok {
			if err := rec.RecordPlacementSummary(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRound forwards round statistics.
func (m *MultiSink) RecordRound(ev RoundStats) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RoundRecorder); ok {
			if err := rec.RecordRound(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordVehicleTransition forwards vehicle transitions.
func (m *MultiSink) RecordVehicleTransition(ev VehicleTransition) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(VehicleTransitionRecorder); ok {
			if err := rec.RecordVehicleTransition(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink exposing a Close method.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
