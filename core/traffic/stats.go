package traffic

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/chargeplan/core/model"
)

// VehicleStats is the end-of-run record of one vehicle.
type VehicleStats struct {
	ID          string       `json:"id" yaml:"id"`
	Origin      int64        `json:"origin" yaml:"origin"`
	Destination int64        `json:"destination" yaml:"destination"`
	Position    int64        `json:"position" yaml:"position"`
	Status      model.Status `json:"status" yaml:"status"`
	Distance    float64      `json:"distance_km" yaml:"distance_km"`
	Energy      float64      `json:"energy_kwh" yaml:"energy_kwh"`
	Battery     float64      `json:"battery_kwh" yaml:"battery_kwh"`
	Detours     int          `json:"detours" yaml:"detours"`
}

// Summary aggregates the outcome of a simulation.
type Summary struct {
	Vehicles int `json:"vehicles" yaml:"vehicles"`
	Arrived  int `json:"arrived" yaml:"arrived"`
	Stranded int `json:"stranded" yaml:"stranded"`
	Other    int `json:"other" yaml:"other"`
	Running  int `json:"running" yaml:"running"`

	TotalDistance float64 `json:"total_distance_km" yaml:"total_distance_km"`
	TotalEnergy   float64 `json:"total_energy_kwh" yaml:"total_energy_kwh"`
	// AvoidedEmissions in kg CO2, relative to a combustion vehicle emitting
	// the configured grams per km.
	AvoidedEmissions float64 `json:"avoided_emissions_kg" yaml:"avoided_emissions_kg"`
	MeanDistance     float64 `json:"mean_distance_km" yaml:"mean_distance_km"`
	StdDevDistance   float64 `json:"stddev_distance_km" yaml:"stddev_distance_km"`
	MaxDistance      float64 `json:"max_distance_km" yaml:"max_distance_km"`

	PerVehicle []VehicleStats `json:"per_vehicle" yaml:"per_vehicle"`
}

// Summarize reduces the fleet state. emissionFactor is in g CO2 per km.
func Summarize(vehicles []*model.Vehicle, emissionFactor float64) Summary {
	s := Summary{Vehicles: len(vehicles), PerVehicle: make([]VehicleStats, 0, len(vehicles))}
	if len(vehicles) == 0 {
		return s
	}
	dist := make([]float64, len(vehicles))
	energy := make([]float64, len(vehicles))
	for i, v := range vehicles {
		switch v.Status {
		case model.StatusArrived:
			s.Arrived++
		case model.StatusStranded:
			s.Stranded++
		case model.StatusOther:
			s.Other++
		default:
			s.Running++
		}
		dist[i] = v.Distance
		energy[i] = v.Energy()
		s.PerVehicle = append(s.PerVehicle, VehicleStats{
			ID: v.ID, Origin: v.Origin, Destination: v.Destination, Position: v.Position, Status: v.Status,
			Distance: v.Distance, Energy: energy[i], Battery: v.Battery, Detours: len(v.Route.Chargers),
		})
	}
	s.TotalDistance = floats.Sum(dist)
	s.TotalEnergy = floats.Sum(energy)
	s.AvoidedEmissions = s.TotalDistance * emissionFactor / 1000
	s.MeanDistance, s.StdDevDistance = stat.MeanStdDev(dist, nil)
	if len(dist) < 2 {
		s.StdDevDistance = 0
	}
	s.MaxDistance = floats.Max(dist)
	return s
}
