// Package kpi persists ecological KPI records.
package kpi

import (
	"database/sql"

	_ "modernc.org/sqlite"

	core "github.com/kilianp07/chargeplan/core/metrics/eco"
)

// SQLiteStore persists per-vehicle KPI aggregates in a SQLite database so
// they accumulate over successive runs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS eco_kpi (
        vehicle_id TEXT PRIMARY KEY,
        trips INTEGER,
        distance_km REAL,
        energy_kwh REAL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts or accumulates the record. Each call counts as one trip unless
// r.Trips is set.
func (s *SQLiteStore) Add(r core.Record) error {
	trips := r.Trips
	if trips == 0 {
		trips = 1
	}
	_, err := s.db.Exec(`INSERT INTO eco_kpi (vehicle_id, trips, distance_km, energy_kwh)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(vehicle_id) DO UPDATE SET
            trips = trips + excluded.trips,
            distance_km = distance_km + excluded.distance_km,
            energy_kwh = energy_kwh + excluded.energy_kwh`,
		r.VehicleID, trips, r.DistanceKM, r.EnergyKWh)
	return err
}

// Get returns the aggregated record of a vehicle.
func (s *SQLiteStore) Get(vehicleID string) (core.Record, bool, error) {
	rec := core.Record{VehicleID: vehicleID}
	err := s.db.QueryRow(`SELECT trips, distance_km, energy_kwh FROM eco_kpi WHERE vehicle_id = ?`, vehicleID).
		Scan(&rec.Trips, &rec.DistanceKM, &rec.EnergyKWh)
	if err == sql.ErrNoRows {
		return core.Record{}, false, nil
	}
	if err != nil {
		return core.Record{}, false, err
	}
	return rec, true, nil
}

// Totals returns the sum over every vehicle.
func (s *SQLiteStore) Totals() (core.Record, error) {
	var t core.Record
	err := s.db.QueryRow(`SELECT COALESCE(SUM(trips), 0), COALESCE(SUM(distance_km), 0), COALESCE(SUM(energy_kwh), 0) FROM eco_kpi`).
		Scan(&t.Trips, &t.DistanceKM, &t.EnergyKWh)
	return t, err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
