// Package graphio reads and writes road networks: CSV vertex and edge
// tables, and Graphviz DOT descriptions for rendering.
package graphio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/chargeplan/core/graph"
)

// ReadStats counts what ReadNetwork kept and dropped.
type ReadStats struct {
	Vertices        int
	Edges           int
	SkippedVertices int
	SkippedEdges    int
}

// ReadNetwork builds a network from a vertex table (lon, lat, population)
// and an edge table (lon1, lat1, lon2, lat2, distance). Lines starting with
// '#' are comments. Rows with too few or unparsable fields are skipped.
// Edges are matched to vertices by exact coordinates; edges with an unknown
// endpoint, self-loops, duplicates and non-positive distances are dropped.
func ReadNetwork(vertices, edges io.Reader) (*graph.Network, ReadStats, error) {
	var st ReadStats
	net := graph.New(0)
	byCoord := map[graph.Coord]int64{}

	err := eachRow(vertices, func(rec []string) {
		vals, ok := parseFloats(rec, 3)
		if !ok || !(vals[2] >= 0) {
			st.SkippedVertices++
			return
		}
		c := graph.Coord{X: vals[0], Y: vals[1]}
		id := net.AddVertex(vals[2], &c)
		if _, dup := byCoord[c]; !dup {
			byCoord[c] = id
		}
		st.Vertices++
	})
	if err != nil {
		return nil, st, fmt.Errorf("vertices: %w", err)
	}

	err = eachRow(edges, func(rec []string) {
		vals, ok := parseFloats(rec, 5)
		if !ok {
			st.SkippedEdges++
			return
		}
		a, okA := byCoord[graph.Coord{X: vals[0], Y: vals[1]}]
		b, okB := byCoord[graph.Coord{X: vals[2], Y: vals[3]}]
		if !okA || !okB || net.AddEdge(a, b, vals[4]) != nil {
			st.SkippedEdges++
			return
		}
		st.Edges++
	})
	if err != nil {
		return nil, st, fmt.Errorf("edges: %w", err)
	}
	return net, st, nil
}

// LoadNetwork opens both files and calls ReadNetwork.
func LoadNetwork(verticesPath, edgesPath string) (*graph.Network, ReadStats, error) {
	vf, err := os.Open(verticesPath)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer func() { _ = vf.Close() }()
	ef, err := os.Open(edgesPath)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer func() { _ = ef.Close() }()
	return ReadNetwork(vf, ef)
}

// WriteNetwork writes the two tables read by ReadNetwork. Every vertex must
// carry coordinates, and coordinates must be distinct for edges to load back.
func WriteNetwork(net *graph.Network, vertices, edges io.Writer) error {
	if !net.HasCoords() && net.VertexCount() > 0 {
		return errors.New("network has vertices without coordinates")
	}
	vw := csv.NewWriter(vertices)
	if _, err := io.WriteString(vertices, "# lon,lat,population\n"); err != nil {
		return err
	}
	for i := 0; i < net.VertexCount(); i++ {
		v, err := net.Vertex(int64(i))
		if err != nil {
			return err
		}
		if err := vw.Write([]string{ftoa(v.Coord.X), ftoa(v.Coord.Y), ftoa(v.Population)}); err != nil {
			return err
		}
	}
	vw.Flush()
	if err := vw.Error(); err != nil {
		return err
	}

	ew := csv.NewWriter(edges)
	if _, err := io.WriteString(edges, "# lon1,lat1,lon2,lat2,distance\n"); err != nil {
		return err
	}
	for _, e := range net.Edges() {
		a, _ := net.Vertex(e.A)
		b, _ := net.Vertex(e.B)
		rec := []string{ftoa(a.Coord.X), ftoa(a.Coord.Y), ftoa(b.Coord.X), ftoa(b.Coord.Y), ftoa(e.Distance)}
		if err := ew.Write(rec); err != nil {
			return err
		}
	}
	ew.Flush()
	return ew.Error()
}

// SaveNetwork creates both files and calls WriteNetwork.
func SaveNetwork(net *graph.Network, verticesPath, edgesPath string) (err error) {
	vf, err := os.Create(verticesPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := vf.Close(); err == nil {
			err = cerr
		}
	}()
	ef, err := os.Create(edgesPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ef.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteNetwork(net, vf, ef)
}

func eachRow(r io.Reader, fn func([]string)) error {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fn(rec)
	}
}

func parseFloats(rec []string, n int) ([]float64, bool) {
	if len(rec) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
