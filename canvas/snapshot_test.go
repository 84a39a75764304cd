package canvas

import (
	"testing"

	"github.com/c360/flowcanvas/errors"
)

// TestSnapshotValidation tests the Snapshot.Validate() method
func TestSnapshotValidation(t *testing.T) {
	tests := []struct {
		name      string
		snapshot  Snapshot
		wantError bool
	}{
		{
			name: "valid snapshot with self-loop and dangling edge",
			snapshot: Snapshot{
				Nodes: []Node{{ID: "node_0", Kind: BlockA}},
				Edges: []Edge{
					{ID: "edge_0", Source: "node_0", Target: "node_0"},
					{ID: "edge_1", Source: "node_0", Target: "node_9"},
				},
			},
			wantError: false,
		},
		{
			name:      "empty snapshot",
			snapshot:  Snapshot{},
			wantError: false,
		},
		{
			name:      "node with empty ID",
			snapshot:  Snapshot{Nodes: []Node{{Kind: BlockA}}},
			wantError: true,
		},
		{
			name: "duplicate node IDs",
			snapshot: Snapshot{Nodes: []Node{
				{ID: "node_0", Kind: BlockA},
				{ID: "node_0", Kind: BlockB},
			}},
			wantError: true,
		},
		{
			name: "duplicate edge IDs",
			snapshot: Snapshot{Edges: []Edge{
				{ID: "edge_0", Source: "a", Target: "b"},
				{ID: "edge_0", Source: "b", Target: "a"},
			}},
			wantError: true,
		},
		{
			name:      "edge with empty endpoint",
			snapshot:  Snapshot{Edges: []Edge{{ID: "edge_0", Source: "a"}}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snapshot.Validate()
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.IsInvalid(err) {
				t.Errorf("expected invalid error class, got %v", errors.Classify(err))
			}
		})
	}
}
