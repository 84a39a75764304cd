// Package viewport maps pointer positions in screen pixels to graph
// coordinates and tracks whether a projector is available yet.
package viewport

import "math"

// minZoom is the smallest normal float64. Dividing by anything below it
// overflows for ordinary screen coordinates.
const minZoom = 0x1p-1022

// Point is a 2D coordinate. Whether it is in screen or graph space depends on
// where it is used.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are neither NaN nor infinite
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Projector converts a screen-space point into graph space, accounting for the
// current pan and zoom.
type Projector interface {
	Project(screen Point) Point
}

// ProjectorFunc adapts a function to Projector
type ProjectorFunc func(Point) Point

// Project calls f(p)
func (f ProjectorFunc) Project(p Point) Point {
	return f(p)
}

// Transform is the pan/zoom state of a rendered canvas: a graph point g is
// drawn at screen point g*Zoom + Offset.
type Transform struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Zoom    float64 `json:"zoom"`
}

// Identity returns the transform with no pan and unit zoom
func Identity() Transform {
	return Transform{Zoom: 1}
}

// Project inverts the transform. A zoom that is not a positive normal number
// is treated as 1. The result can still overflow for extreme offsets; callers
// check it with Point.Finite.
func (t Transform) Project(p Point) Point {
	zoom := t.Zoom
	if !(zoom >= minZoom) || math.IsInf(zoom, 0) {
		zoom = 1
	}
	return Point{
		X: (p.X - t.OffsetX) / zoom,
		Y: (p.Y - t.OffsetY) / zoom,
	}
}

// State is the viewport lifecycle
type State int

// Viewport lifecycle states
const (
	Uninitialized State = iota
	Ready
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Viewport is either Uninitialized or Ready with a projector. The zero value
// is Uninitialized; it becomes Ready when the rendering layer reports it has
// mounted.
type Viewport struct {
	projector Projector
}

// Mount moves the viewport to Ready. Mounting with a nil projector leaves it
// Uninitialized.
func (v *Viewport) Mount(p Projector) {
	v.projector = p
}

// Unmount moves the viewport back to Uninitialized
func (v *Viewport) Unmount() {
	v.projector = nil
}

// State reports the lifecycle state
func (v *Viewport) State() State {
	if v.projector == nil {
		return Uninitialized
	}
	return Ready
}

// Projector returns the projector when the viewport is Ready
func (v *Viewport) Projector() (Projector, bool) {
	if v.projector == nil {
		return nil, false
	}
	return v.projector, true
}
