// Package session serves editors to websocket clients.
//
// Each connection gets its own Session wrapping an editor.Editor. Messages
// are JSON envelopes:
//
//	{"type": "drop", "id": "42", "timestamp": 1700000000000,
//	 "payload": {"client_x": 400, "client_y": 150}}
//
// A reader goroutine pushes raw messages onto a channel; the connection's
// event loop applies them to the editor in arrival order and replies with a
// "state" envelope (nodes, edges, menu, viewport) carrying the request ID,
// or an "error" envelope when the message could not be applied. Errors never
// close the session.
//
// Inbound types: mount, unmount, drag_start, drag_over, drop, connect,
// context_menu, click, node_changes, edge_changes, snapshot, reset.
//
// drag_start stores the block kind for the connection until the next drop,
// standing in for the browser DataTransfer that spans a drag gesture. A drop
// may carry its own kind instead.
package session
