package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"

	core "github.com/kilianp07/chargeplan/core/metrics"
	eco "github.com/kilianp07/chargeplan/core/metrics/eco"
)

// EcoSink aggregates vehicle outcomes as ecological KPIs.
type EcoSink struct {
	store    eco.Store
	factor   float64
	co2      *prometheus.GaugeVec
	perKM    *prometheus.GaugeVec
	fleetCO2 prometheus.Gauge
}

// NewEcoSink creates a sink with Prometheus gauges registered on reg.
// factor is the combustion emission factor in g CO2/km.
func NewEcoSink(store eco.Store, factor float64, reg prometheus.Registerer) (*EcoSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &EcoSink{store: store, factor: factor}
	var err error
	if s.co2, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_co2_avoided_grams",
		Help: "CO2 avoided per vehicle compared to a combustion vehicle",
	}, []string{"vehicle_id"})); err != nil {
		return nil, err
	}
	if s.perKM, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vehicle_energy_kwh_per_km",
		Help: "Average consumption per vehicle",
	}, []string{"vehicle_id"})); err != nil {
		return nil, err
	}
	if s.fleetCO2, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_co2_avoided_grams",
		Help: "CO2 avoided by the whole simulated fleet",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordVehicleOutcomes adds the outcomes to the store and refreshes KPIs.
func (s *EcoSink) RecordVehicleOutcomes(out []core.VehicleOutcome) error {
	for _, o := range out {
		if err := s.store.Add(eco.Record{VehicleID: o.VehicleID, DistanceKM: o.DistanceKM, EnergyKWh: o.EnergyKWh}); err != nil {
			return err
		}
		rec, ok, err := s.store.Get(o.VehicleID)
		if err != nil {
			return err
		}
		if ok {
			s.co2.WithLabelValues(o.VehicleID).Set(rec.CO2Avoided(s.factor))
			s.perKM.WithLabelValues(o.VehicleID).Set(rec.EnergyPerKM())
		}
	}
	tot, err := s.store.Totals()
	if err != nil {
		return err
	}
	s.fleetCO2.Set(tot.CO2Avoided(s.factor))
	return nil
}

// Close closes the store when it holds resources.
func (s *EcoSink) Close() {
	if c, ok := s.store.(io.Closer); ok {
		_ = c.Close()
	}
}
