package editor

import (
	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/viewport"
)

// DefaultChromeOffset is the canvas chrome in front of the viewport origin:
// the palette sidebar width and the header height, in screen pixels.
var DefaultChromeOffset = viewport.Point{X: 250, Y: 50}

// DropOutcome describes what a drop did
type DropOutcome int

// Drop outcomes
const (
	DropCreated DropOutcome = iota
	DropViewportUninitialized
	DropPositionNotFinite
)

// String returns the string representation of DropOutcome
func (o DropOutcome) String() string {
	switch o {
	case DropCreated:
		return "created"
	case DropViewportUninitialized:
		return "viewport_uninitialized"
	case DropPositionNotFinite:
		return "position_not_finite"
	default:
		return "unknown"
	}
}

// DragDrop turns palette drags into nodes on the canvas
type DragDrop struct {
	graph    *canvas.Graph
	ids      *canvas.IDGenerator
	viewport *viewport.Viewport
	catalog  *canvas.Catalog
	chrome   viewport.Point
}

// NewDragDrop creates a drag-drop controller writing into graph
func NewDragDrop(graph *canvas.Graph, ids *canvas.IDGenerator, vp *viewport.Viewport,
	catalog *canvas.Catalog, chrome viewport.Point) *DragDrop {
	return &DragDrop{
		graph:    graph,
		ids:      ids,
		viewport: vp,
		catalog:  catalog,
		chrome:   chrome,
	}
}

// DragStart tags the outgoing payload with kind and allows move only
func (d *DragDrop) DragStart(dt *DataTransfer, kind canvas.BlockKind) {
	if dt == nil {
		return
	}
	dt.SetData(PayloadKey, string(kind))
	dt.EffectAllowed = EffectMove
}

// DragOver must run for every drag-over event: it suppresses the platform's
// default reject-drop behavior so the canvas accepts the drop.
func (d *DragDrop) DragOver(ev *DragEvent) {
	ev.PreventDefault()
	if ev.DataTransfer != nil {
		ev.DataTransfer.DropEffect = EffectMove
	}
}

// Drop creates exactly one node for the payload kind at the projected drop
// point. Before the viewport is mounted, or when the projection overflows,
// it does nothing. The kind is not validated; unknown kinds get the catalog
// fallback label. Identifiers already taken by renderer adds are skipped.
func (d *DragDrop) Drop(ev *DragEvent) (canvas.Node, DropOutcome) {
	ev.PreventDefault()
	kind := canvas.BlockKind(ev.DataTransfer.GetData(PayloadKey))

	projector, ok := d.viewport.Projector()
	if !ok {
		return canvas.Node{}, DropViewportUninitialized
	}

	pos := projector.Project(viewport.Point{
		X: ev.ClientX - d.chrome.X,
		Y: ev.ClientY - d.chrome.Y,
	})
	if !pos.Finite() {
		return canvas.Node{}, DropPositionNotFinite
	}

	id := d.ids.Next()
	for d.graph.HasNode(id) {
		id = d.ids.Next()
	}
	n := canvas.Node{
		ID:       id,
		Kind:     kind,
		Position: canvas.Position{X: pos.X, Y: pos.Y},
		Label:    d.catalog.Label(kind),
	}
	d.graph.ApplyNodeChanges([]canvas.NodeChange{canvas.AddNode(n)})
	return n, DropCreated
}
