package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/c360/flowcanvas/config"
	"github.com/c360/flowcanvas/editor"
	"github.com/c360/flowcanvas/errors"
	"github.com/c360/flowcanvas/health"
	"github.com/c360/flowcanvas/metric"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	inboundBuffer   = 32

	healthComponent = "sessions"
	healthSystem    = "flowcanvas"
)

// ObserverFactory returns extra observers for a new session
type ObserverFactory func(sessionID string) []editor.Observer

// ServerConfig holds the dependencies of a Server
type ServerConfig struct {
	Server    config.ServerConfig
	Editor    editor.Options
	Metrics   *metric.Metrics // optional
	Observers ObserverFactory // optional
	Health    *health.Monitor // optional, created when nil
	Logger    *slog.Logger
}

// Server accepts websocket connections and hosts one editor per connection
type Server struct {
	cfg      config.ServerConfig
	editor   editor.Options
	metrics  *metric.Metrics
	newObs   ObserverFactory
	health   *health.Monitor
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	server   *http.Server
	addr     string
	stopped  bool
	sessions map[string]*websocket.Conn
	wg       sync.WaitGroup
}

// NewServer creates a session server
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaults := config.Default().Server
	if cfg.Server.WSPath == "" {
		cfg.Server.WSPath = defaults.WSPath
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.Server.MaxMessageBytes <= 0 {
		cfg.Server.MaxMessageBytes = defaults.MaxMessageBytes
	}

	s := &Server{
		cfg:      cfg.Server,
		editor:   cfg.Editor,
		metrics:  cfg.Metrics,
		newObs:   cfg.Observers,
		health:   cfg.Health,
		logger:   logger.With("component", "session-server"),
		sessions: make(map[string]*websocket.Conn),
	}
	if s.health == nil {
		s.health = health.NewMonitor()
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin allows any origin when none are configured. Requests without
// an Origin header come from non-browser clients and are allowed.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(s.cfg.AllowedOrigins) == 0 || origin == "" {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, origin)
}

// Handler returns the mux serving the websocket path and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.WSPath, s.handleWebSocket)
	mux.Handle("/health", s.health.Handler(healthSystem))
	return mux
}

// Run serves sessions until ctx is cancelled, then closes every connection.
// A stopped server cannot be run again.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrShuttingDown, "Server", "Run",
			"session server was stopped")
	}
	if s.server != nil {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "Server", "Run",
			"session server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		s.mu.Unlock()
		return errors.WrapFatal(err, "Server", "Run", "listen on "+s.cfg.ListenAddr)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.server = srv
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	s.logger.Info("Session server listening", "address", s.addr, "path", s.cfg.WSPath)
	s.reportHealth()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		s.mu.Lock()
		s.server = nil
		s.mu.Unlock()
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.WrapFatal(err, "Server", "Run", "serve sessions")
	}
}

// Stop shuts the HTTP server down, closes open sessions and waits for their
// event loops to exit
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.stopped = true
	for _, conn := range s.sessions {
		_ = conn.Close()
	}
	s.mu.Unlock()
	s.health.UpdateUnhealthy(healthComponent, "stopped")

	var err error
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = srv.Shutdown(ctx)
		cancel()
	}
	s.wg.Wait()
	if err != nil {
		return errors.WrapTransient(err, "Server", "Stop", "shutdown HTTP server")
	}
	return nil
}

// Addr returns the bound listen address once Run has started
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Health returns the monitor served on /health
func (s *Server) Health() *health.Monitor {
	return s.health
}

func (s *Server) reportHealth() {
	s.mu.Lock()
	stopped, n := s.stopped, len(s.sessions)
	s.mu.Unlock()
	if stopped {
		return
	}
	s.health.UpdateHealthy(healthComponent, fmt.Sprintf("%d active", n))
}

// newSession builds the editor and session for a fresh connection
func (s *Server) newSession() *Session {
	id := uuid.NewString()

	opts := s.editor
	opts.Observers = slices.Clone(opts.Observers)
	if s.newObs != nil {
		opts.Observers = append(opts.Observers, s.newObs(id)...)
	}

	var limiter *rate.Limiter
	if s.cfg.EventsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.EventsPerSecond), s.cfg.EventBurst)
	}

	return New(id, editor.New(opts), limiter, s.metrics, s.logger)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := s.newSession()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.sessions[sess.ID()] = conn
	s.wg.Add(1)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	s.logger.Info("Session opened", "session_id", sess.ID(), "remote", r.RemoteAddr)
	s.reportHealth()

	s.serve(conn, sess)
}

// serve runs the session event loop. A reader goroutine feeds raw messages
// into a channel; this goroutine is the only one that touches the editor or
// writes to conn.
func (s *Server) serve(conn *websocket.Conn, sess *Session) {
	defer s.wg.Done()
	defer s.closeSession(conn, sess)

	inbound := make(chan []byte, inboundBuffer)
	done := make(chan struct{})
	defer close(done)

	go s.readLoop(conn, inbound, done)

	if err := s.write(conn, sess.Hello()); err != nil {
		s.logger.Debug("Hello write failed", "session_id", sess.ID(), "error", err)
		return
	}

	ping := time.NewTicker(s.cfg.ReadTimeout / 2)
	defer ping.Stop()

	for {
		select {
		case data, ok := <-inbound:
			if !ok {
				return
			}
			if err := s.write(conn, sess.HandleMessage(data)); err != nil {
				s.logger.Debug("Reply write failed", "session_id", sess.ID(), "error", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) readLoop(conn *websocket.Conn, inbound chan<- []byte, done <-chan struct{}) {
	defer close(inbound)

	conn.SetReadLimit(s.cfg.MaxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		select {
		case inbound <- data:
		case <-done:
			return
		}
	}
}

func (s *Server) write(conn *websocket.Conn, env MessageEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return errors.WrapInvalid(err, "Server", "write", "encode envelope")
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WrapTransient(err, "Server", "write", "send envelope")
	}
	return nil
}

func (s *Server) closeSession(conn *websocket.Conn, sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()

	_ = conn.Close()
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
	s.logger.Info("Session closed", "session_id", sess.ID())
	s.reportHealth()
}
