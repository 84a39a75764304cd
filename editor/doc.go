// Package editor implements the interaction layer of the block editor: the
// controllers that turn user gestures into graph and menu state.
//
// # Controllers
//
//   - DragDrop: palette drag start, canvas drag over, and drop. A drop projects
//     the pointer through the viewport (after subtracting the canvas chrome
//     offset) and appends one node.
//   - Connector: appends an edge for every completed connect gesture, with no
//     policy checks.
//   - ContextMenu: closed or open at a screen position; right click opens,
//     any primary click closes.
//
// Editor composes the controllers around one canvas.Graph and one viewport
// lifecycle. It is single-threaded: every method must run on the goroutine
// that receives the input events, in delivery order.
//
// # Drag payload
//
// DragStart writes the block kind under PayloadKey; Drop reads it back. The
// same DataTransfer value must span the gesture.
//
//	dt := editor.NewDataTransfer()
//	ed.DragStart(dt, canvas.BlockA)
//	ed.DragOver(&editor.DragEvent{ClientX: x, ClientY: y, DataTransfer: dt})
//	node, ok := ed.Drop(&editor.DragEvent{ClientX: x, ClientY: y, DataTransfer: dt})
//
// Drops that arrive before Mount are ignored: ok is false and observers see an
// EventDropIgnored event.
//
// # Observers
//
// Observers receive an Event after every state change. The metric and
// eventfeed packages and LogObserver implement Observer.
package editor
