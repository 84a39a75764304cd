package editor

import (
	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/viewport"
)

// Options configures an Editor
type Options struct {
	Catalog      *canvas.Catalog
	ChromeOffset viewport.Point
	NodeIDPrefix string
	EdgeIDPrefix string
	MenuLabel    string
	Observers    []Observer
}

// DefaultOptions returns the two-block palette with the default chrome offset
func DefaultOptions() Options {
	return Options{
		Catalog:      canvas.DefaultCatalog(),
		ChromeOffset: DefaultChromeOffset,
		NodeIDPrefix: canvas.NodeIDPrefix,
		EdgeIDPrefix: canvas.EdgeIDPrefix,
		MenuLabel:    DefaultMenuLabel,
	}
}

// Editor is one editor instance: the graph, its identity generator, the
// viewport lifecycle, and the controllers that mutate them. Each controller
// is the only writer of the state it owns.
//
// All methods must be called from a single goroutine in the order the input
// events were delivered.
type Editor struct {
	graph     *canvas.Graph
	nodeIDs   *canvas.IDGenerator
	viewport  viewport.Viewport
	dragDrop  *DragDrop
	connector *Connector
	menu      *ContextMenu
	catalog   *canvas.Catalog
	observers []Observer
}

// New creates an editor with an empty graph, a closed menu, and an
// uninitialized viewport
func New(opts Options) *Editor {
	if opts.Catalog == nil {
		opts.Catalog = canvas.DefaultCatalog()
	}
	if opts.NodeIDPrefix == "" {
		opts.NodeIDPrefix = canvas.NodeIDPrefix
	}
	if opts.EdgeIDPrefix == "" {
		opts.EdgeIDPrefix = canvas.EdgeIDPrefix
	}

	e := &Editor{
		graph:     canvas.NewGraph(canvas.NewIDGenerator(opts.EdgeIDPrefix)),
		nodeIDs:   canvas.NewIDGenerator(opts.NodeIDPrefix),
		menu:      NewContextMenu(opts.MenuLabel),
		catalog:   opts.Catalog,
		observers: opts.Observers,
	}
	e.dragDrop = NewDragDrop(e.graph, e.nodeIDs, &e.viewport, opts.Catalog, opts.ChromeOffset)
	e.connector = NewConnector(e.graph)
	return e
}

// AddObserver registers o for subsequent events
func (e *Editor) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Editor) notify(ev Event) {
	for _, o := range e.observers {
		o.Observe(ev)
	}
}

// Mount signals that the rendering layer has mounted its viewport
func (e *Editor) Mount(p viewport.Projector) {
	e.viewport.Mount(p)
	if e.viewport.State() == viewport.Ready {
		e.notify(Event{Type: EventViewportMounted})
	}
}

// Unmount returns the viewport to Uninitialized
func (e *Editor) Unmount() {
	e.viewport.Unmount()
	e.notify(Event{Type: EventViewportUnmounted})
}

// ViewportState reports the viewport lifecycle state
func (e *Editor) ViewportState() viewport.State {
	return e.viewport.State()
}

// DragStart tags dt with kind for a palette drag
func (e *Editor) DragStart(dt *DataTransfer, kind canvas.BlockKind) {
	e.dragDrop.DragStart(dt, kind)
}

// DragOver accepts a drag-over event on the canvas
func (e *Editor) DragOver(ev *DragEvent) {
	e.dragDrop.DragOver(ev)
}

// Drop creates a node from a palette drop. It returns false when the drop was
// ignored because the viewport is not mounted yet or the projected position
// is not finite.
func (e *Editor) Drop(ev *DragEvent) (canvas.Node, bool) {
	n, outcome := e.dragDrop.Drop(ev)
	if outcome != DropCreated {
		e.notify(Event{Type: EventDropIgnored, Reason: outcome.String()})
		return canvas.Node{}, false
	}
	pos := n.Position
	e.notify(Event{Type: EventNodeCreated, NodeID: n.ID, Kind: n.Kind, Position: &pos})
	return n, true
}

// Connect appends an edge for a completed connect gesture
func (e *Editor) Connect(c canvas.Connection) (canvas.Edge, bool) {
	edge, ok := e.connector.Connect(c)
	if !ok {
		e.notify(Event{Type: EventEdgeRejected, Source: c.Source, Target: c.Target, Reason: "missing_endpoint"})
		return canvas.Edge{}, false
	}
	e.notify(Event{Type: EventEdgeCreated, EdgeID: edge.ID, Source: edge.Source, Target: edge.Target})
	return edge, true
}

// RightClick opens the context menu at the pointer
func (e *Editor) RightClick(ev *PointerEvent) MenuState {
	state := e.menu.RightClick(ev)
	e.notify(Event{Type: EventMenuOpened, Menu: &state})
	return state
}

// Click closes the context menu on a primary click. A nil event counts as a
// primary click. Closing a closed menu is a no-op.
func (e *Editor) Click(ev *PointerEvent) {
	if e.menu.Click(ev) {
		state := e.menu.State()
		e.notify(Event{Type: EventMenuClosed, Menu: &state})
	}
}

// ApplyNodeChanges applies node changes originating in the rendering layer.
// Added nodes take the catalog label of their kind; any label they carry is
// replaced.
func (e *Editor) ApplyNodeChanges(changes []canvas.NodeChange) canvas.ChangeResult {
	res := e.graph.ApplyNodeChanges(e.relabel(changes))
	e.notify(Event{Type: EventNodesChanged, Changes: &ChangeCounts{Applied: res.Applied, Ignored: res.Ignored}})
	return res
}

func (e *Editor) relabel(changes []canvas.NodeChange) []canvas.NodeChange {
	out := make([]canvas.NodeChange, len(changes))
	for i, change := range changes {
		if change.Type == canvas.ChangeAdd && change.Item != nil {
			n := *change.Item
			n.Label = e.catalog.Label(n.Kind)
			change.Item = &n
		}
		out[i] = change
	}
	return out
}

// ApplyEdgeChanges applies edge changes originating in the rendering layer
func (e *Editor) ApplyEdgeChanges(changes []canvas.EdgeChange) canvas.ChangeResult {
	res := e.graph.ApplyEdgeChanges(changes)
	e.notify(Event{Type: EventEdgesChanged, Changes: &ChangeCounts{Applied: res.Applied, Ignored: res.Ignored}})
	return res
}

// Snapshot returns a copy of the graph for rendering
func (e *Editor) Snapshot() canvas.Snapshot {
	return e.graph.Snapshot()
}

// Menu returns the context menu state
func (e *Editor) Menu() MenuState {
	return e.menu.State()
}

// MenuContent returns the label rendered inside the open menu
func (e *Editor) MenuContent() string {
	return e.menu.Content()
}

// Palette returns the blocks offered for dragging
func (e *Editor) Palette() []canvas.Block {
	return e.catalog.Blocks()
}

// Reset clears the graph, rewinds both identity counters, and closes the
// menu. The viewport lifecycle is left as is.
func (e *Editor) Reset() {
	e.graph.Reset()
	e.nodeIDs.Reset()
	e.menu.Click(nil)
	e.notify(Event{Type: EventReset})
}
