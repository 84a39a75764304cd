package session

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/c360/flowcanvas/canvas"
	"github.com/c360/flowcanvas/editor"
	"github.com/c360/flowcanvas/errors"
	"github.com/c360/flowcanvas/metric"
	"github.com/c360/flowcanvas/viewport"
)

// Event handling status labels
const (
	statusOK          = "ok"
	statusInvalid     = "invalid"
	statusRateLimited = "rate_limited"
)

// Session is one connected client and the editor it drives. It is not safe
// for concurrent use; the server calls it from one goroutine per connection.
type Session struct {
	id      string
	editor  *editor.Editor
	pending *editor.DataTransfer // payload of the drag in progress
	limiter *rate.Limiter
	metrics *metric.Metrics
	logger  *slog.Logger
}

// New creates a session around ed. A nil limiter disables rate limiting and
// a nil metrics disables recording.
func New(id string, ed *editor.Editor, limiter *rate.Limiter, metrics *metric.Metrics, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:      id,
		editor:  ed,
		limiter: limiter,
		metrics: metrics,
		logger:  logger.With("component", "session", "session_id", id),
	}
}

// ID returns the session ID
func (s *Session) ID() string {
	return s.id
}

// Editor returns the editor driven by this session
func (s *Session) Editor() *editor.Editor {
	return s.editor
}

// Hello returns the envelope announcing the session to its client
func (s *Session) Hello() MessageEnvelope {
	return newEnvelope(TypeSession, s.id, SessionPayload{
		SessionID: s.id,
		Palette:   s.editor.Palette(),
	})
}

// HandleMessage decodes one raw client message, applies it, and returns the
// reply. Undecodable input yields an error envelope; the session stays usable.
func (s *Session) HandleMessage(data []byte) MessageEnvelope {
	var env MessageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.record("unknown", statusInvalid, time.Now())
		err = errors.WrapInvalid(err, "Session", "HandleMessage", "decode envelope")
		s.logger.Debug("Dropping undecodable message", "error", err)
		return newEnvelope(TypeError, "", ErrorPayload{Code: CodeInvalidEnvelope, Message: err.Error()})
	}
	return s.Handle(env)
}

// Handle applies one decoded envelope and returns the reply: the editor
// state on success, an error envelope otherwise
func (s *Session) Handle(env MessageEnvelope) MessageEnvelope {
	start := time.Now()

	if s.limiter != nil && !s.limiter.Allow() {
		s.record(env.Type, statusRateLimited, start)
		return newEnvelope(TypeError, env.ID, ErrorPayload{
			Code:    CodeRateLimited,
			Message: errors.ErrRateLimited.Error(),
		})
	}

	if err := s.apply(env); err != nil {
		s.record(env.Type, statusInvalid, start)
		code := CodeInvalidPayload
		if stderrors.Is(err, errors.ErrUnknownEventType) {
			code = CodeUnknownType
		}
		s.logger.Debug("Rejected event", "type", env.Type, "id", env.ID, "error", err)
		return newEnvelope(TypeError, env.ID, ErrorPayload{Code: code, Message: err.Error()})
	}

	s.record(env.Type, statusOK, start)
	reply := newEnvelope(TypeState, env.ID, stateOf(s.editor))
	if reply.Type == TypeError {
		s.logger.Error("Failed to encode editor state", "type", env.Type, "id", env.ID)
	}
	return reply
}

func (s *Session) apply(env MessageEnvelope) error {
	switch env.Type {
	case TypeMount:
		t := viewport.Identity()
		if err := decode(env, &t); err != nil {
			return err
		}
		s.editor.Mount(t)

	case TypeUnmount:
		s.editor.Unmount()

	case TypeDragStart:
		var p DragStartPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		s.pending = editor.NewDataTransfer()
		s.editor.DragStart(s.pending, p.Kind)

	case TypeDragOver:
		var p PointerPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		s.editor.DragOver(&editor.DragEvent{ClientX: p.ClientX, ClientY: p.ClientY, DataTransfer: s.pending})

	case TypeDrop:
		var p DropPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		dt := s.pending
		if p.Kind != "" {
			dt = editor.NewDataTransfer()
			s.editor.DragStart(dt, p.Kind)
		}
		s.pending = nil
		s.editor.Drop(&editor.DragEvent{ClientX: p.ClientX, ClientY: p.ClientY, DataTransfer: dt})

	case TypeConnect:
		var c canvas.Connection
		if err := decode(env, &c); err != nil {
			return err
		}
		s.editor.Connect(c)

	case TypeContextMenu:
		var p PointerPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		s.editor.RightClick(&editor.PointerEvent{ClientX: p.ClientX, ClientY: p.ClientY, Button: editor.ButtonSecondary})

	case TypeClick:
		var p ClickPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		s.editor.Click(&editor.PointerEvent{ClientX: p.ClientX, ClientY: p.ClientY, Button: p.Button})

	case TypeNodeChanges:
		var p NodeChangesPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		s.editor.ApplyNodeChanges(p.Changes)

	case TypeEdgeChanges:
		var p EdgeChangesPayload
		if err := decode(env, &p); err != nil {
			return err
		}
		s.editor.ApplyEdgeChanges(p.Changes)

	case TypeSnapshot:

	case TypeReset:
		s.pending = nil
		s.editor.Reset()

	default:
		return errors.WrapInvalid(errors.ErrUnknownEventType, "Session", "apply",
			fmt.Sprintf("message type %q", env.Type))
	}
	return nil
}

// decode unmarshals the envelope payload into v. An absent payload leaves v
// unchanged.
func decode(env MessageEnvelope, v any) error {
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return errors.WrapInvalid(err, "Session", "decode", fmt.Sprintf("%s payload", env.Type))
	}
	return nil
}

func (s *Session) record(eventType, status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	if !knownType(eventType) {
		eventType = "unknown"
	}
	s.metrics.RecordEvent(eventType, status, time.Since(start))
}

func knownType(t string) bool {
	switch t {
	case TypeMount, TypeUnmount, TypeDragStart, TypeDragOver, TypeDrop, TypeConnect,
		TypeContextMenu, TypeClick, TypeNodeChanges, TypeEdgeChanges, TypeSnapshot, TypeReset:
		return true
	}
	return false
}
