package eco

// Store persists ecological KPI records.
type Store interface {
	Add(Record) error
	Get(vehicleID string) (Record, bool, error)
	Totals() (Record, error)
}
