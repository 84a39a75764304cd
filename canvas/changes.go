package canvas

// ChangeType identifies the kind of incremental change applied to the graph
type ChangeType string

// Change types accepted by ApplyNodeChanges and ApplyEdgeChanges
const (
	ChangeAdd      ChangeType = "add"
	ChangePosition ChangeType = "position"
	ChangeRemove   ChangeType = "remove"
)

// NodeChange is one entry of a node change batch.
//   - add: Item is appended; an ID already present is ignored
//   - position: node ID moves to Position
//   - remove: node ID is dropped
type NodeChange struct {
	Type     ChangeType `json:"type"`
	ID       string     `json:"id,omitempty"`
	Position *Position  `json:"position,omitempty"`
	Item     *Node      `json:"item,omitempty"`
}

// EdgeChange is one entry of an edge change batch (add or remove)
type EdgeChange struct {
	Type ChangeType `json:"type"`
	ID   string     `json:"id,omitempty"`
	Item *Edge      `json:"item,omitempty"`
}

// AddNode builds an add change for n
func AddNode(n Node) NodeChange {
	return NodeChange{Type: ChangeAdd, ID: n.ID, Item: &n}
}

// MoveNode builds a position change
func MoveNode(id string, pos Position) NodeChange {
	return NodeChange{Type: ChangePosition, ID: id, Position: &pos}
}

// RemoveNode builds a remove change
func RemoveNode(id string) NodeChange {
	return NodeChange{Type: ChangeRemove, ID: id}
}

// AddEdgeChange builds an add change for e
func AddEdgeChange(e Edge) EdgeChange {
	return EdgeChange{Type: ChangeAdd, ID: e.ID, Item: &e}
}

// RemoveEdge builds an edge remove change
func RemoveEdge(id string) EdgeChange {
	return EdgeChange{Type: ChangeRemove, ID: id}
}

// ChangeResult counts how a batch was applied
type ChangeResult struct {
	Applied int
	Ignored int
}
