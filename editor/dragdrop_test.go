package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/viewport"
)

func newDragDrop(vp *viewport.Viewport, chrome viewport.Point) (*DragDrop, *canvas.Graph) {
	g := canvas.NewGraph(nil)
	return NewDragDrop(g, canvas.NewIDGenerator(canvas.NodeIDPrefix), vp, canvas.DefaultCatalog(), chrome), g
}

func TestDragStart_WritesPayload(t *testing.T) {
	dd, _ := newDragDrop(&viewport.Viewport{}, DefaultChromeOffset)
	dt := NewDataTransfer()

	dd.DragStart(dt, canvas.BlockB)

	assert.Equal(t, "blockB", dt.GetData(PayloadKey))
	assert.Equal(t, EffectMove, dt.EffectAllowed)
	assert.Empty(t, dt.GetData("text/plain"))
}

func TestDragOver_AcceptsDrop(t *testing.T) {
	dd, _ := newDragDrop(&viewport.Viewport{}, DefaultChromeOffset)

	for i := 0; i < 3; i++ {
		ev := &DragEvent{DataTransfer: NewDataTransfer()}
		dd.DragOver(ev)
		assert.True(t, ev.DefaultPrevented())
		assert.Equal(t, EffectMove, ev.DataTransfer.DropEffect)
	}
}

func TestDrop_Projection(t *testing.T) {
	tests := []struct {
		name   string
		tr     viewport.Transform
		chrome viewport.Point
		client viewport.Point
		want   canvas.Position
	}{
		{"identity", viewport.Identity(), viewport.Point{X: 250, Y: 50}, viewport.Point{X: 300, Y: 150}, canvas.Position{X: 50, Y: 100}},
		{"no chrome", viewport.Identity(), viewport.Point{}, viewport.Point{X: 300, Y: 150}, canvas.Position{X: 300, Y: 150}},
		{"zoomed out", viewport.Transform{Zoom: 0.5}, viewport.Point{X: 250, Y: 50}, viewport.Point{X: 300, Y: 150}, canvas.Position{X: 100, Y: 200}},
		{"panned", viewport.Transform{OffsetX: 20, OffsetY: 30, Zoom: 1}, viewport.Point{X: 250, Y: 50}, viewport.Point{X: 300, Y: 150}, canvas.Position{X: 30, Y: 70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := &viewport.Viewport{}
			vp.Mount(tt.tr)
			dd, g := newDragDrop(vp, tt.chrome)
			dt := NewDataTransfer()
			dd.DragStart(dt, canvas.BlockA)

			n, outcome := dd.Drop(&DragEvent{ClientX: tt.client.X, ClientY: tt.client.Y, DataTransfer: dt})

			require.Equal(t, DropCreated, outcome)
			assert.InDelta(t, tt.want.X, n.Position.X, 1e-9)
			assert.InDelta(t, tt.want.Y, n.Position.Y, 1e-9)
			assert.Equal(t, 1, g.NodeCount())
		})
	}
}

func TestDrop_Uninitialized(t *testing.T) {
	dd, g := newDragDrop(&viewport.Viewport{}, DefaultChromeOffset)
	ev := &DragEvent{ClientX: 1, ClientY: 1, DataTransfer: NewDataTransfer()}

	_, outcome := dd.Drop(ev)

	assert.Equal(t, DropViewportUninitialized, outcome)
	assert.Equal(t, "viewport_uninitialized", outcome.String())
	assert.Equal(t, 0, g.NodeCount())
	assert.True(t, ev.DefaultPrevented())
}

func TestDrop_NonFiniteProjectionIgnored(t *testing.T) {
	tests := []struct {
		name      string
		projector viewport.Projector
		clientX   float64
	}{
		{"offset overflow", viewport.Transform{OffsetX: math.MaxFloat64, Zoom: 1}, -math.MaxFloat64},
		{"tiny zoom", viewport.Transform{Zoom: 1e-307}, 300},
		{"NaN projector", viewport.ProjectorFunc(func(viewport.Point) viewport.Point {
			return viewport.Point{X: math.NaN()}
		}), 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := &viewport.Viewport{}
			vp.Mount(tt.projector)
			dd, g := newDragDrop(vp, DefaultChromeOffset)
			dt := NewDataTransfer()
			dd.DragStart(dt, canvas.BlockA)

			_, outcome := dd.Drop(&DragEvent{ClientX: tt.clientX, ClientY: 150, DataTransfer: dt})

			assert.Equal(t, DropPositionNotFinite, outcome)
			assert.Equal(t, "position_not_finite", outcome.String())
			assert.Equal(t, 0, g.NodeCount())
		})
	}
}

func TestDrop_SkipsIDsTakenByRenderer(t *testing.T) {
	vp := &viewport.Viewport{}
	vp.Mount(viewport.Identity())
	dd, g := newDragDrop(vp, DefaultChromeOffset)
	g.ApplyNodeChanges([]canvas.NodeChange{
		canvas.AddNode(canvas.Node{ID: "node_0", Kind: canvas.BlockB, Label: "Block B"}),
		canvas.AddNode(canvas.Node{ID: "node_1", Kind: canvas.BlockB, Label: "Block B"}),
	})
	dt := NewDataTransfer()
	dd.DragStart(dt, canvas.BlockA)

	n, outcome := dd.Drop(&DragEvent{ClientX: 300, ClientY: 150, DataTransfer: dt})

	require.Equal(t, DropCreated, outcome)
	assert.Equal(t, "node_2", n.ID)
	assert.Equal(t, 3, g.NodeCount())
	got, ok := g.Node("node_2")
	require.True(t, ok)
	assert.Equal(t, canvas.BlockA, got.Kind)
}
