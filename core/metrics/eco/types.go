package eco

// Record aggregates the ecological footprint of one vehicle.
type Record struct {
	VehicleID  string
	Trips      int
	DistanceKM float64
	EnergyKWh  float64
}

// CO2Avoided returns the grams of CO2 a combustion vehicle emitting factor
// g/km would have produced over the same distance.
func (r Record) CO2Avoided(factor float64) float64 {
	return r.DistanceKM * factor
}

// EnergyPerKM returns the average consumption in kWh/km.
func (r Record) EnergyPerKM() float64 {
	if r.DistanceKM == 0 {
		return 0
	}
	return r.EnergyKWh / r.DistanceKM
}
