package editor

import "github.com/c360/flowcanvas/canvas"

// Connector appends edges for completed connect gestures. It does not check
// endpoint liveness, cardinality, or cycles.
type Connector struct {
	graph *canvas.Graph
}

// NewConnector creates a connection controller writing into graph
func NewConnector(graph *canvas.Graph) *Connector {
	return &Connector{graph: graph}
}

// Connect appends an edge for c
func (c *Connector) Connect(conn canvas.Connection) (canvas.Edge, bool) {
	return c.graph.AddEdge(conn)
}
