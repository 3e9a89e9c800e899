package model

// StationKind tells whether a vertex hosts a charging station.
type StationKind int

const (
	Normal StationKind = iota
	Charger
)

// String returns a human-readable representation of the station kind.
func (k StationKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Charger:
		return "charger"
	default:
		return "unknown"
	}
}
