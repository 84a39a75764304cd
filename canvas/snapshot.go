package canvas

import (
	"fmt"

	"github.com/c360/flowcanvas/errors"
)

// Snapshot is a read-only copy of the graph handed to the rendering layer
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Validate checks structural invariants of the snapshot: non-empty and
// unique node and edge IDs, and non-empty edge endpoints. Endpoint existence
// is deliberately not checked.
func (s Snapshot) Validate() error {
	nodeIDs := make(map[string]bool, len(s.Nodes))
	for i, node := range s.Nodes {
		if node.ID == "" {
			return errors.WrapInvalid(
				fmt.Errorf("node at index %d has empty ID", i),
				"canvas", "Validate", "node ID validation failed")
		}
		if nodeIDs[node.ID] {
			return errors.WrapInvalid(
				fmt.Errorf("duplicate node ID: %s", node.ID),
				"canvas", "Validate", "duplicate node ID detected")
		}
		nodeIDs[node.ID] = true
	}

	edgeIDs := make(map[string]bool, len(s.Edges))
	for i, edge := range s.Edges {
		if edge.ID == "" {
			return errors.WrapInvalid(
				fmt.Errorf("edge at index %d has empty ID", i),
				"canvas", "Validate", "edge ID validation failed")
		}
		if edgeIDs[edge.ID] {
			return errors.WrapInvalid(
				fmt.Errorf("duplicate edge ID: %s", edge.ID),
				"canvas", "Validate", "duplicate edge ID detected")
		}
		if edge.Source == "" || edge.Target == "" {
			return errors.WrapInvalid(
				fmt.Errorf("edge '%s' has an empty endpoint", edge.ID),
				"canvas", "Validate", "edge endpoint validation failed")
		}
		edgeIDs[edge.ID] = true
	}

	return nil
}

// NodeIDs returns node identifiers in graph order
func (s Snapshot) NodeIDs() []string {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}
