package eventfeed

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/flowcanvas/errors"
	"github.com/c360/flowcanvas/health"
)

const (
	clientName    = "flowcanvas"
	reconnectWait = 2 * time.Second
	connTimeout   = 5 * time.Second
	drainTimeout  = 10 * time.Second

	// HealthComponent is the name the feed reports under
	HealthComponent = "event_feed"
)

// connectionOptions builds NATS options that log connection state changes
// and report them to monitor
func connectionOptions(logger *slog.Logger, monitor *health.Monitor) []nats.Option {
	return []nats.Option{
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(reconnectWait),
		nats.Timeout(connTimeout),
		nats.DrainTimeout(drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
			msg := "disconnected"
			if err != nil {
				msg += ": " + err.Error()
			}
			monitor.UpdateDegraded(HealthComponent, msg)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrl())
			monitor.UpdateHealthy(HealthComponent, "reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("NATS connection closed")
			monitor.UpdateUnhealthy(HealthComponent, "connection closed")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("NATS error", "error", err)
		}),
	}
}

// Connect dials the NATS server at url, giving up when ctx is done.
// Connection state changes are reported to monitor when it is non-nil.
func Connect(ctx context.Context, url string, monitor *health.Monitor, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if monitor == nil {
		monitor = health.NewMonitor()
	}
	logger = logger.With("component", "eventfeed")
	logger.Info("Connecting to NATS", "url", url)

	type result struct {
		conn *nats.Conn
		err  error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := nats.Connect(url, connectionOptions(logger, monitor)...)
		done <- result{conn, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			monitor.UpdateUnhealthy(HealthComponent, r.err.Error())
			return nil, errors.WrapTransient(r.err, "eventfeed", "Connect", "establish connection")
		}
		monitor.UpdateHealthy(HealthComponent, "connected")
		return r.conn, nil
	case <-ctx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				r.conn.Close()
			}
		}()
		return nil, errors.WrapTransient(ctx.Err(), "eventfeed", "Connect", "connection cancelled")
	}
}
