package eco

import "sync"

// MemoryStore stores records in memory for testing or lightweight usage.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]*Record{}}
}

// Add inserts or updates the record aggregated by vehicle. Each call counts
// as one trip unless r.Trips is set.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.data[r.VehicleID]
	if rec == nil {
		rec = &Record{VehicleID: r.VehicleID}
		s.data[r.VehicleID] = rec
	}
	trips := r.Trips
	if trips == 0 {
		trips = 1
	}
	rec.Trips += trips
	rec.DistanceKM += r.DistanceKM
	rec.EnergyKWh += r.EnergyKWh
	return nil
}

// Get returns the aggregated record of a vehicle.
func (s *MemoryStore) Get(vehicleID string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[vehicleID]
	if !ok {
		return Record{}, false, nil
	}
	return *rec, true, nil
}

// Totals returns the sum over every vehicle. VehicleID is empty.
func (s *MemoryStore) Totals() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t Record
	for _, r := range s.data {
		t.Trips += r.Trips
		t.DistanceKM += r.DistanceKM
		t.EnergyKWh += r.EnergyKWh
	}
	return t, nil
}
