package session

import (
	"encoding/json"
	"time"

	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/editor"
	"github.com/c360/flowcanvas/errors"
)

// MessageEnvelope wraps every message exchanged with a client
type MessageEnvelope struct {
	Type      string          `json:"type"`              // Message type
	ID        string          `json:"id"`                // Client-chosen ID echoed in the reply
	Timestamp int64           `json:"timestamp"`         // Unix milliseconds
	Payload   json.RawMessage `json:"payload,omitempty"` // Type-specific payload
}

// Inbound message types
const (
	TypeMount       = "mount"
	TypeUnmount     = "unmount"
	TypeDragStart   = "drag_start"
	TypeDragOver    = "drag_over"
	TypeDrop        = "drop"
	TypeConnect     = "connect"
	TypeContextMenu = "context_menu"
	TypeClick       = "click"
	TypeNodeChanges = "node_changes"
	TypeEdgeChanges = "edge_changes"
	TypeSnapshot    = "snapshot"
	TypeReset       = "reset"
)

// Outbound message types
const (
	TypeSession = "session"
	TypeState   = "state"
	TypeError   = "error"
)

// Error codes carried in ErrorPayload
const (
	CodeInvalidEnvelope = "invalid_envelope"
	CodeInvalidPayload  = "invalid_payload"
	CodeUnknownType     = "unknown_type"
	CodeRateLimited     = "rate_limited"
)

// DragStartPayload starts a palette drag
type DragStartPayload struct {
	Kind canvas.BlockKind `json:"kind"`
}

// PointerPayload is a screen position for drag-over and context-menu events
type PointerPayload struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
}

// ClickPayload is a click on the editor surface. Button follows the
// platform numbering; the zero value is the primary button.
type ClickPayload struct {
	ClientX float64       `json:"client_x"`
	ClientY float64       `json:"client_y"`
	Button  editor.Button `json:"button"`
}

// DropPayload ends a palette drag. Kind, when set, replaces the kind stored by
// the last drag_start.
type DropPayload struct {
	ClientX float64          `json:"client_x"`
	ClientY float64          `json:"client_y"`
	Kind    canvas.BlockKind `json:"kind,omitempty"`
}

// NodeChangesPayload carries a node change batch from the renderer
type NodeChangesPayload struct {
	Changes []canvas.NodeChange `json:"changes"`
}

// EdgeChangesPayload carries an edge change batch from the renderer
type EdgeChangesPayload struct {
	Changes []canvas.EdgeChange `json:"changes"`
}

// SessionPayload is sent once after the connection is accepted
type SessionPayload struct {
	SessionID string         `json:"session_id"`
	Palette   []canvas.Block `json:"palette"`
}

// MenuPayload is the context menu as rendered
type MenuPayload struct {
	Open    bool    `json:"open"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Content string  `json:"content,omitempty"`
}

// StatePayload is the editor state after an event
type StatePayload struct {
	Nodes    []canvas.Node `json:"nodes"`
	Edges    []canvas.Edge `json:"edges"`
	Menu     MenuPayload   `json:"menu"`
	Viewport string        `json:"viewport"`
}

// ErrorPayload reports an event that could not be applied
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newEnvelope(msgType, id string, payload any) MessageEnvelope {
	env := MessageEnvelope{
		Type:      msgType,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
	}
	if payload == nil {
		return env
	}
	data, err := json.Marshal(payload)
	if err != nil {
		err = errors.WrapInvalid(err, "Session", "newEnvelope", "encode "+msgType+" payload")
		env.Type = TypeError
		// two strings always encode
		env.Payload, _ = json.Marshal(ErrorPayload{Code: CodeInvalidPayload, Message: err.Error()})
		return env
	}
	env.Payload = data
	return env
}

func stateOf(ed *editor.Editor) StatePayload {
	snap := ed.Snapshot()
	menu := ed.Menu()
	mp := MenuPayload{Open: menu.Open, X: menu.X, Y: menu.Y}
	if menu.Open {
		mp.Content = ed.MenuContent()
	}
	return StatePayload{
		Nodes:    snap.Nodes,
		Edges:    snap.Edges,
		Menu:     mp,
		Viewport: ed.ViewportState().String(),
	}
}
