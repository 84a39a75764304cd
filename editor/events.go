package editor

import (
	"context"
	"log/slog"

	"github.com/c360/flowcanvas/canvas"
)

// EventType names a state change reported to observers
type EventType string

// Event types
const (
	EventNodeCreated       EventType = "node_created"
	EventDropIgnored       EventType = "drop_ignored"
	EventEdgeCreated       EventType = "edge_created"
	EventEdgeRejected      EventType = "edge_rejected"
	EventNodesChanged      EventType = "nodes_changed"
	EventEdgesChanged      EventType = "edges_changed"
	EventMenuOpened        EventType = "menu_opened"
	EventMenuClosed        EventType = "menu_closed"
	EventViewportMounted   EventType = "viewport_mounted"
	EventViewportUnmounted EventType = "viewport_unmounted"
	EventReset             EventType = "reset"
)

// Event describes one editor state change. Only the fields relevant to Type
// are set.
type Event struct {
	Type     EventType        `json:"type"`
	NodeID   string           `json:"node_id,omitempty"`
	Kind     canvas.BlockKind `json:"kind,omitempty"`
	Position *canvas.Position `json:"position,omitempty"`
	EdgeID   string           `json:"edge_id,omitempty"`
	Source   string           `json:"source,omitempty"`
	Target   string           `json:"target,omitempty"`
	Menu     *MenuState       `json:"menu,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Changes  *ChangeCounts    `json:"changes,omitempty"`
}

// ChangeCounts reports applied and ignored entries of a change batch
type ChangeCounts struct {
	Applied int `json:"applied"`
	Ignored int `json:"ignored"`
}

// Observer receives editor events synchronously on the editor's goroutine.
// Implementations must not call back into the Editor.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

// Observe calls f(ev)
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

// LogObserver writes every event to a slog.Logger at debug level
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates a log observer; a nil logger uses slog.Default()
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger.With("component", "editor")}
}

// Observe logs ev
func (o *LogObserver) Observe(ev Event) {
	attrs := []slog.Attr{slog.String("event", string(ev.Type))}
	if ev.NodeID != "" {
		attrs = append(attrs, slog.String("node_id", ev.NodeID), slog.String("kind", string(ev.Kind)))
	}
	if ev.Position != nil {
		attrs = append(attrs, slog.Float64("x", ev.Position.X), slog.Float64("y", ev.Position.Y))
	}
	if ev.EdgeID != "" || ev.Source != "" {
		attrs = append(attrs, slog.String("edge_id", ev.EdgeID),
			slog.String("source", ev.Source), slog.String("target", ev.Target))
	}
	if ev.Reason != "" {
		attrs = append(attrs, slog.String("reason", ev.Reason))
	}
	if ev.Changes != nil {
		attrs = append(attrs, slog.Int("applied", ev.Changes.Applied), slog.Int("ignored", ev.Changes.Ignored))
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "editor event", attrs...)
}
