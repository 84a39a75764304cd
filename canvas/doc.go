// Package canvas holds the data model of the block editor: nodes placed from
// the palette, directed edges between them, and the Graph that applies
// incremental changes to both collections.
//
// # Identity
//
// Node and edge identifiers come from IDGenerator, a counter seeded at 0 that
// produces "node_0", "node_1", ... Identifiers are never reused within a
// session, including after a node is removed by the rendering layer.
//
// # Changes
//
// The rendering layer reports user edits as change batches:
//
//	graph.ApplyNodeChanges([]canvas.NodeChange{
//		canvas.MoveNode("node_0", canvas.Position{X: 120, Y: 40}),
//	})
//
// Changes are applied in order. Changes that reference unknown identifiers are
// counted as ignored in the returned ChangeResult and never fail the batch.
//
// # Edges
//
// AddEdge accepts self-loops, duplicates, and endpoints that are not present
// in the node set. Connection policy lives above this package.
package canvas
