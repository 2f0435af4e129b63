package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/livehooks/pkg/hooks"
)

// ClientPath is where the relay script is served.
const ClientPath = "/client.js"

// Server is the HTTP/WebSocket host for hooks.
type Server struct {
	// Session management
	sessions *SessionManager
	registry *hooks.Registry

	// Configuration
	config *ServerConfig

	// Metrics; gatherer is nil when the caller supplied a Registerer that
	// cannot also gather.
	metrics  *Metrics
	gatherer prometheus.Gatherer

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// page serves everything that is not the socket, the relay script or
	// an operational endpoint.
	page    http.Handler
	handler http.Handler

	// HTTP server
	httpServer *http.Server

	// Logger
	logger *slog.Logger
}

// New creates a Server hosting the hooks in registry.
func New(registry *hooks.Registry, config *ServerConfig) *Server {
	config = config.withDefaults()

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	var (
		metrics  *Metrics
		gatherer prometheus.Gatherer
	)
	if config.MetricsEnabled {
		reg := config.Registerer
		if reg == nil {
			r := prometheus.NewRegistry()
			reg, gatherer = r, r
		} else if g, ok := reg.(prometheus.Gatherer); ok {
			gatherer = g
		}
		metrics = NewMetrics(reg, config.MetricsNamespace)
	}

	sessions := NewSessionManager(registry, config.SessionConfig, metrics, defaultTracer(), logger)
	sessions.maxSessions = config.MaxSessions

	s := &Server{
		sessions: sessions,
		registry: registry,
		config:   config,
		metrics:  metrics,
		gatherer: gatherer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: logger,
	}
	s.handler = s.routes()
	return s
}

// SetHandler sets the handler for page requests. It must be called before
// the server starts serving.
func (s *Server) SetHandler(h http.Handler) {
	s.page = h
	s.handler = s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get(s.config.Path, s.HandleWebSocket)
	r.Get(ClientPath, s.serveThinClient)
	r.Head(ClientPath, s.serveThinClient)
	r.Get("/healthz", s.serveHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.page != nil {
		r.Handle("/*", s.page)
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// HandleWebSocket upgrades the request and starts a session on it.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.config.MaxSessions > 0 && s.sessions.Count() >= s.config.MaxSessions {
		http.Error(w, "Too many sessions", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	session, err := s.sessions.Create(conn)
	if err != nil {
		s.logger.Warn("session rejected", "error", err, "remote", r.RemoteAddr)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(s.config.SessionConfig.WriteTimeout))
		conn.Close()
		return
	}
	session.Start()
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "path", s.config.Path)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	// Close all sessions first
	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Registry returns the hook registry.
func (s *Server) Registry() *hooks.Registry {
	return s.registry
}

// Config returns the effective configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}
