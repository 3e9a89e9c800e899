package graphio

import (
	"fmt"
	"io"
	"os"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/kilianp07/chargeplan/core/graph"
	"github.com/kilianp07/chargeplan/core/model"
)

// DotOptions maps vertex coordinates to Graphviz positions:
// x*Scale+OffsetX, y*Scale+OffsetY.
type DotOptions struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Vertex colors by station kind.
const (
	ChargerColor = "red"
	NormalColor  = "lightgray"
)

type dotNode struct {
	id    int64
	attrs []encoding.Attribute
}

func (n dotNode) ID() int64                        { return n.id }
func (n dotNode) Attributes() []encoding.Attribute { return n.attrs }

type dotEdge struct {
	from, to dotNode
	label    string
}

func (e dotEdge) From() gonumgraph.Node         { return e.from }
func (e dotEdge) To() gonumgraph.Node           { return e.to }
func (e dotEdge) ReversedEdge() gonumgraph.Edge { return dotEdge{from: e.to, to: e.from, label: e.label} }
func (e dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: e.label}}
}

// MarshalDOT renders the network as an undirected DOT graph. Charger
// vertices are filled red, others light gray; vertices with coordinates get
// a pinned position and edges are labelled with their distance in km.
func MarshalDOT(net *graph.Network, name string, opts DotOptions) ([]byte, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	g := simple.NewUndirectedGraph()
	nodes := make([]dotNode, net.VertexCount())
	for i := range nodes {
		v, err := net.Vertex(int64(i))
		if err != nil {
			return nil, err
		}
		color := NormalColor
		if v.Kind == model.Charger {
			color = ChargerColor
		}
		var attrs []encoding.Attribute
		if v.Coord != nil {
			x := v.Coord.X*opts.Scale + opts.OffsetX
			y := v.Coord.Y*opts.Scale + opts.OffsetY
			attrs = append(attrs, encoding.Attribute{Key: "pos", Value: fmt.Sprintf("%.2f,%.2f!", x, y)})
		}
		attrs = append(attrs,
			encoding.Attribute{Key: "style", Value: "filled"},
			encoding.Attribute{Key: "color", Value: color},
		)
		nodes[i] = dotNode{id: v.ID, attrs: attrs}
		g.AddNode(nodes[i])
	}
	for _, e := range net.Edges() {
		g.SetEdge(dotEdge{from: nodes[e.A], to: nodes[e.B], label: fmt.Sprintf("%.2fkm", e.Distance)})
	}
	return dot.Marshal(g, name, "", "  ")
}

// WriteDOT writes the DOT description to w.
func WriteDOT(w io.Writer, net *graph.Network, name string, opts DotOptions) error {
	b, err := MarshalDOT(net, name, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// SaveDOT writes the DOT description to path.
func SaveDOT(path string, net *graph.Network, name string, opts DotOptions) error {
	b, err := MarshalDOT(net, name, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
