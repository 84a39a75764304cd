package metric

import (
	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/editor"
)

// otherKind labels block kinds outside the palette so that client-supplied
// kinds cannot grow label cardinality
const otherKind = "other"

// EditorObserver feeds editor events into Metrics
type EditorObserver struct {
	metrics *Metrics
	catalog *canvas.Catalog
}

var _ editor.Observer = (*EditorObserver)(nil)

// NewEditorObserver creates an observer recording into m. Node kinds unknown
// to catalog are recorded as "other"; a nil catalog records kinds verbatim.
func NewEditorObserver(m *Metrics, catalog *canvas.Catalog) *EditorObserver {
	return &EditorObserver{metrics: m, catalog: catalog}
}

// Observe implements editor.Observer
func (o *EditorObserver) Observe(ev editor.Event) {
	m := o.metrics
	switch ev.Type {
	case editor.EventNodeCreated:
		m.NodesCreated.WithLabelValues(o.kindLabel(ev.Kind)).Inc()
	case editor.EventDropIgnored:
		m.DropsIgnored.WithLabelValues(ev.Reason).Inc()
	case editor.EventEdgeCreated:
		m.EdgesCreated.Inc()
	case editor.EventEdgeRejected:
		m.EdgesRejected.Inc()
	case editor.EventMenuOpened:
		m.MenuTransitions.WithLabelValues("open").Inc()
	case editor.EventMenuClosed:
		m.MenuTransitions.WithLabelValues("closed").Inc()
	case editor.EventNodesChanged:
		o.recordChanges("node", ev.Changes)
	case editor.EventEdgesChanged:
		o.recordChanges("edge", ev.Changes)
	}
}

func (o *EditorObserver) recordChanges(target string, counts *editor.ChangeCounts) {
	if counts == nil {
		return
	}
	o.metrics.ChangeEntries.WithLabelValues(target, "applied").Add(float64(counts.Applied))
	o.metrics.ChangeEntries.WithLabelValues(target, "ignored").Add(float64(counts.Ignored))
}

func (o *EditorObserver) kindLabel(kind canvas.BlockKind) string {
	if o.catalog == nil || o.catalog.Known(kind) {
		return string(kind)
	}
	return otherKind
}
