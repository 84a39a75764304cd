package canvas

// Graph owns the node and edge collections of one editor session.
//
// Nodes and edges keep insertion order across change batches. Changes that
// reference unknown identifiers are ignored rather than reported; this is an
// editing surface and a lost interaction is recovered by repeating it.
//
// Graph is not safe for concurrent use. Callers that introduce background
// writers must serialize access themselves.
type Graph struct {
	nodes     []Node
	nodeIndex map[string]int
	edges     []Edge
	edgeIndex map[string]int
	edgeIDs   *IDGenerator
}

// NewGraph creates an empty graph whose edges are named by edgeIDs.
// A nil generator defaults to the "edge_" prefix.
func NewGraph(edgeIDs *IDGenerator) *Graph {
	if edgeIDs == nil {
		edgeIDs = NewIDGenerator(EdgeIDPrefix)
	}
	return &Graph{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[string]int),
		edgeIDs:   edgeIDs,
	}
}

// ApplyNodeChanges applies changes in order
func (g *Graph) ApplyNodeChanges(changes []NodeChange) ChangeResult {
	var res ChangeResult
	for _, change := range changes {
		if g.applyNodeChange(change) {
			res.Applied++
		} else {
			res.Ignored++
		}
	}
	return res
}

func (g *Graph) applyNodeChange(change NodeChange) bool {
	switch change.Type {
	case ChangeAdd:
		if change.Item == nil || change.Item.ID == "" {
			return false
		}
		if _, exists := g.nodeIndex[change.Item.ID]; exists {
			return false
		}
		g.nodeIndex[change.Item.ID] = len(g.nodes)
		g.nodes = append(g.nodes, *change.Item)
		return true

	case ChangePosition:
		i, ok := g.nodeIndex[change.ID]
		if !ok || change.Position == nil {
			return false
		}
		g.nodes[i].Position = *change.Position
		return true

	case ChangeRemove:
		i, ok := g.nodeIndex[change.ID]
		if !ok {
			return false
		}
		g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
		delete(g.nodeIndex, change.ID)
		for j := i; j < len(g.nodes); j++ {
			g.nodeIndex[g.nodes[j].ID] = j
		}
		return true
	}
	return false
}

// ApplyEdgeChanges applies edge changes in order
func (g *Graph) ApplyEdgeChanges(changes []EdgeChange) ChangeResult {
	var res ChangeResult
	for _, change := range changes {
		if g.applyEdgeChange(change) {
			res.Applied++
		} else {
			res.Ignored++
		}
	}
	return res
}

func (g *Graph) applyEdgeChange(change EdgeChange) bool {
	switch change.Type {
	case ChangeAdd:
		if change.Item == nil || change.Item.ID == "" {
			return false
		}
		if _, exists := g.edgeIndex[change.Item.ID]; exists {
			return false
		}
		g.edgeIndex[change.Item.ID] = len(g.edges)
		g.edges = append(g.edges, *change.Item)
		return true

	case ChangeRemove:
		i, ok := g.edgeIndex[change.ID]
		if !ok {
			return false
		}
		g.edges = append(g.edges[:i], g.edges[i+1:]...)
		delete(g.edgeIndex, change.ID)
		for j := i; j < len(g.edges); j++ {
			g.edgeIndex[g.edges[j].ID] = j
		}
		return true
	}
	return false
}

// AddEdge appends an edge for c with a fresh identifier. Endpoints are not
// checked against the node set, and self-loops and duplicates are accepted;
// connection policy belongs to the caller. It only refuses a candidate with a
// missing endpoint.
func (g *Graph) AddEdge(c Connection) (Edge, bool) {
	if c.Source == "" || c.Target == "" {
		return Edge{}, false
	}
	id := g.edgeIDs.Next()
	for g.hasEdge(id) {
		id = g.edgeIDs.Next()
	}
	edge := Edge{
		ID:     id,
		Source: c.Source,
		Target: c.Target,
	}
	g.edgeIndex[edge.ID] = len(g.edges)
	g.edges = append(g.edges, edge)
	return edge, true
}

// HasNode reports whether a node with id exists
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

func (g *Graph) hasEdge(id string) bool {
	_, ok := g.edgeIndex[id]
	return ok
}

// Node returns a copy of the node with id
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Snapshot returns copies of the node and edge collections
func (g *Graph) Snapshot() Snapshot {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return Snapshot{Nodes: nodes, Edges: edges}
}

// Reset drops all nodes and edges and rewinds the edge counter
func (g *Graph) Reset() {
	g.nodes = nil
	g.edges = nil
	g.nodeIndex = make(map[string]int)
	g.edgeIndex = make(map[string]int)
	g.edgeIDs.Reset()
}
