package editor

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360/flowcanvas/canvas"
)

func TestContextMenu_Transitions(t *testing.T) {
	m := NewContextMenu("")

	assert.Equal(t, Closed, m.State())
	assert.False(t, m.Click(nil), "closing a closed menu changes nothing")

	m.RightClick(&PointerEvent{ClientX: 10, ClientY: 20})
	assert.Equal(t, MenuState{Open: true, X: 10, Y: 20}, m.State())
	assert.Equal(t, DefaultMenuLabel, m.Content())

	assert.True(t, m.Click(&PointerEvent{Button: ButtonPrimary}))
	assert.Equal(t, Closed, m.State())
	assert.False(t, m.Click(nil))
}

func TestContextMenu_OnlyPrimaryClickCloses(t *testing.T) {
	m := NewContextMenu("")
	m.RightClick(&PointerEvent{ClientX: 10, ClientY: 20, Button: ButtonSecondary})

	assert.False(t, m.Click(&PointerEvent{Button: ButtonAuxiliary}))
	assert.False(t, m.Click(&PointerEvent{Button: ButtonSecondary}))
	assert.Equal(t, OpenAt(10, 20), m.State())

	assert.True(t, m.Click(&PointerEvent{ClientX: 500, ClientY: 500}))
	assert.Equal(t, Closed, m.State())
}

func TestContextMenu_OpenAtOrigin(t *testing.T) {
	m := NewContextMenu("Actions")

	m.RightClick(&PointerEvent{})

	assert.True(t, m.State().Open, "open at (0,0) is distinct from closed")
	assert.Equal(t, "Actions", m.Content())
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogObserver(logger)

	pos := canvas.Position{X: 1, Y: 2}
	obs.Observe(Event{Type: EventNodeCreated, NodeID: "node_0", Kind: canvas.BlockA, Position: &pos})

	out := buf.String()
	assert.Contains(t, out, "event=node_created")
	assert.Contains(t, out, "node_id=node_0")
	assert.Contains(t, out, "component=editor")
}
