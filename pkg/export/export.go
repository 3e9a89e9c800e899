// Package export writes run reports as JSON, YAML, a per-vehicle CSV or an
// HTML page of charts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/chargeplan/core/placement"
	"github.com/kilianp07/chargeplan/core/traffic"
)

// NetworkInfo describes the network a run was computed on.
type NetworkInfo struct {
	Source   string `json:"source" yaml:"source"`
	Vertices int    `json:"vertices" yaml:"vertices"`
	Edges    int    `json:"edges" yaml:"edges"`
}

// Report is the outcome of one placement and simulation run.
type Report struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Network     NetworkInfo      `json:"network" yaml:"network"`
	Placement   placement.Result `json:"placement" yaml:"placement"`
	Simulation  traffic.Result   `json:"simulation" yaml:"simulation"`
	Summary     traffic.Summary  `json:"summary" yaml:"summary"`
}

// WriteJSON writes the report to w as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes the report to w as YAML.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteCSV writes one row per vehicle.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	header := []string{"run_id", "vehicle_id", "origin", "destination", "position", "status", "distance_km", "energy_kwh", "battery_kwh", "detours"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range r.Summary.PerVehicle {
		rec := []string{
			r.RunID,
			v.ID,
			strconv.FormatInt(v.Origin, 10),
			strconv.FormatInt(v.Destination, 10),
			strconv.FormatInt(v.Position, 10),
			v.Status.String(),
			strconv.FormatFloat(v.Distance, 'f', -1, 64),
			strconv.FormatFloat(v.Energy, 'f', -1, 64),
			strconv.FormatFloat(v.Battery, 'f', -1, 64),
			strconv.Itoa(v.Detours),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the report to path, choosing the format from the extension:
// .json, .yaml/.yml, .csv or .html.
func Save(path string, r Report) (err error) {
	var write func(io.Writer, Report) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		write = WriteJSON
	case ".yaml", ".yml":
		write = WriteYAML
	case ".csv":
		write = WriteCSV
	case ".html":
		write = WriteHTML
	default:
		return fmt.Errorf("unsupported report format %q", filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, r)
}
