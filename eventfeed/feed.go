package eventfeed

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/flowcanvas/editor"
	"github.com/c360/flowcanvas/errors"
	"github.com/c360/flowcanvas/metric"
)

// Publisher sends a message on a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Message is the JSON body published for every editor event
type Message struct {
	SessionID string       `json:"session_id"`
	Timestamp int64        `json:"timestamp"` // Unix milliseconds
	Event     editor.Event `json:"event"`
}

// Feed publishes editor events under a subject prefix
type Feed struct {
	pub      Publisher
	prefix   string
	logger   *slog.Logger
	failures atomic.Int64
	counter  prometheus.Counter
}

// New creates a feed publishing to <prefix>.<session>.<event type>
func New(pub Publisher, prefix string, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		pub:     pub,
		prefix:  strings.TrimSuffix(prefix, "."),
		logger:  logger.With("component", "eventfeed"),
		counter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flowcanvas",
			Subsystem: "eventfeed",
			Name:      "publish_failures_total",
			Help:      "Editor events that could not be published",
		}),
	}
}

// RegisterMetrics exposes the publish failure counter through r
func (f *Feed) RegisterMetrics(r metric.MetricsRegistrar) error {
	return r.RegisterCounter("eventfeed", "publish_failures_total", f.counter)
}

// Subject returns the subject an event of type t from sessionID is published on
func (f *Feed) Subject(sessionID string, t editor.EventType) string {
	return f.prefix + "." + sessionID + "." + string(t)
}

// ForSession returns an observer publishing the events of one session
func (f *Feed) ForSession(sessionID string) editor.Observer {
	return editor.ObserverFunc(func(ev editor.Event) {
		if err := f.Publish(sessionID, ev); err != nil {
			f.logger.Warn("Failed to publish editor event",
				"session_id", sessionID, "type", ev.Type, "error", err)
		}
	})
}

// Publish sends one event. Failures are counted and returned; the editor
// never waits on the feed.
func (f *Feed) Publish(sessionID string, ev editor.Event) error {
	data, err := json.Marshal(Message{
		SessionID: sessionID,
		Timestamp: time.Now().UnixMilli(),
		Event:     ev,
	})
	if err != nil {
		f.fail()
		return errors.WrapInvalid(err, "Feed", "Publish", "encode event")
	}
	if err := f.pub.Publish(f.Subject(sessionID, ev.Type), data); err != nil {
		f.fail()
		return errors.WrapTransient(err, "Feed", "Publish", "publish "+string(ev.Type))
	}
	return nil
}

func (f *Feed) fail() {
	f.failures.Add(1)
	f.counter.Inc()
}

// Failures returns the number of events that could not be published
func (f *Feed) Failures() int64 {
	return f.failures.Load()
}
