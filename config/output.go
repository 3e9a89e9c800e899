package config

// OutputConfig lists the optional artefacts written at the end of a run.
type OutputConfig struct {
	// DotFile receives the Graphviz description of the network.
	DotFile    string  `json:"dot_file"`
	DotScale   float64 `json:"dot_scale"`
	DotOffsetX float64 `json:"dot_offset_x"`
	DotOffsetY float64 `json:"dot_offset_y"`
	// ReportFile format follows its extension: .json, .yaml or .csv.
	ReportFile string `json:"report_file"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.DotScale == 0 {
		c.DotScale = 1
	}
}
