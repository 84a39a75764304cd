package editor

// PayloadKey is the custom drag payload key carrying the block kind. Only this
// editor reads it; it is not a system clipboard format.
const PayloadKey = "application/reactflow"

// Effect is a drag affordance
type Effect string

// EffectMove is the only drag effect the editor uses; there is no copy
// semantics.
const EffectMove Effect = "move"

// DataTransfer carries key/value payload across a drag gesture. It is written
// on drag start and read back on drop.
type DataTransfer struct {
	data          map[string]string
	EffectAllowed Effect `json:"effect_allowed,omitempty"`
	DropEffect    Effect `json:"drop_effect,omitempty"`
}

// NewDataTransfer creates an empty payload
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{data: make(map[string]string)}
}

// SetData stores value under key, replacing any previous value
func (dt *DataTransfer) SetData(key, value string) {
	if dt.data == nil {
		dt.data = make(map[string]string)
	}
	dt.data[key] = value
}

// GetData returns the value under key, or "" when absent
func (dt *DataTransfer) GetData(key string) string {
	if dt == nil {
		return ""
	}
	return dt.data[key]
}

// baseEvent is the default-action contract shared by drag and pointer events
type baseEvent struct {
	defaultPrevented bool
}

// PreventDefault suppresses the platform's default handling of the event
func (e *baseEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called
func (e *baseEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// DragEvent is a drag-over or drop event at a screen position
type DragEvent struct {
	baseEvent
	ClientX      float64
	ClientY      float64
	DataTransfer *DataTransfer
}

// Button identifies a pointer button, numbered as the platform's
// MouseEvent.button
type Button int

// Pointer buttons
const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// PointerEvent is a click or context-menu event at a screen position
type PointerEvent struct {
	baseEvent
	ClientX float64
	ClientY float64
	Button  Button
}
