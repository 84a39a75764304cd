package editor

// DefaultMenuLabel is the placeholder content of the context menu
const DefaultMenuLabel = "Hello World"

// MenuState is either closed or open at a screen position
type MenuState struct {
	Open bool    `json:"open"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// Closed is the initial menu state
var Closed = MenuState{}

// OpenAt returns the open state at (x, y)
func OpenAt(x, y float64) MenuState {
	return MenuState{Open: true, X: x, Y: y}
}

// ContextMenu is the two-state machine behind the right-click menu.
// A right click anywhere opens it at the pointer, replacing any previous
// position; any primary click anywhere closes it, including clicks on the
// menu itself.
type ContextMenu struct {
	state MenuState
	label string
}

// NewContextMenu creates a closed menu showing label when open
func NewContextMenu(label string) *ContextMenu {
	if label == "" {
		label = DefaultMenuLabel
	}
	return &ContextMenu{label: label}
}

// RightClick opens the menu at the pointer and suppresses the platform menu
func (m *ContextMenu) RightClick(ev *PointerEvent) MenuState {
	ev.PreventDefault()
	m.state = OpenAt(ev.ClientX, ev.ClientY)
	return m.state
}

// Click closes the menu on a primary click; a nil event counts as one. It
// reports whether the state changed.
func (m *ContextMenu) Click(ev *PointerEvent) bool {
	if ev != nil && ev.Button != ButtonPrimary {
		return false
	}
	if !m.state.Open {
		return false
	}
	m.state = Closed
	return true
}

// State returns the current state
func (m *ContextMenu) State() MenuState {
	return m.state
}

// Content returns the menu label when open, or "" when closed
func (m *ContextMenu) Content() string {
	if !m.state.Open {
		return ""
	}
	return m.label
}
