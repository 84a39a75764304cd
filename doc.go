// Package flowcanvas is the interaction core of a node-graph block editor and
// the server that hosts it.
//
// Users drag blocks from a palette onto a canvas, wire blocks together with
// edges, and open a context menu with a right click. The core turns those
// gestures into graph state; rendering is left to the client.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│        cmd/flowcanvas               │  Flags, logging, config,
//	│   (servers, signals, event feed)    │  shutdown
//	└─────────────────────────────────────┘
//	           ↓ hosts
//	┌─────────────────────────────────────┐
//	│           session                   │  One editor per websocket
//	│   (envelopes, event loop, limits)   │  connection, state replies
//	└─────────────────────────────────────┘
//	           ↓ drives
//	┌─────────────────────────────────────┐
//	│            editor                   │  Drag-drop, connect,
//	│   (controllers, observers)          │  context menu
//	└─────────────────────────────────────┘
//	           ↓ mutates
//	┌──────────────────┐ ┌────────────────┐
//	│     canvas       │ │    viewport    │  Graph state, IDs;
//	│ (nodes, edges)   │ │  (projection)  │  screen → graph coords
//	└──────────────────┘ └────────────────┘
//
// Observers attached to each editor feed the metric package (Prometheus)
// and, when enabled, the eventfeed package (NATS).
//
// # Packages
//
//   - canvas: data model, identity generator, graph state, change batches
//   - viewport: projector contract and the mounted/unmounted lifecycle
//   - editor: gesture controllers and the Editor facade
//   - session: websocket protocol and per-connection event loop
//   - config: layered JSON/YAML configuration with env overrides
//   - metric: Prometheus registry, editor metrics and /metrics server
//   - eventfeed: NATS publisher of editor events
//   - errors: classified errors shared by the outer layers
//
// The editor core is single-threaded and never returns errors: input it
// cannot use is ignored and permissive input is accepted.
package flowcanvas
