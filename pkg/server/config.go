package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message from the client.
	// Pongs extend it. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 256KB.
	MaxMessageSize int64

	// MaxEventQueue is the size of the loop's task buffer.
	// Default: 256.
	MaxEventQueue int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    256 * 1024,
		MaxEventQueue:     256,
	}
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on. Default: ":8080".
	Address string

	// Path is the WebSocket endpoint. Default: "/live".
	Path string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096 each.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the request origin.
	// Default: same-origin check of gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	SessionConfig *SessionConfig

	// MaxSessions caps concurrent sessions. 0 means no limit.
	MaxSessions int

	// ShutdownTimeout bounds graceful shutdown. Default: 15 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout guards against slow clients. Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// Metrics

	// MetricsEnabled exposes GET /metrics.
	MetricsEnabled bool

	// MetricsNamespace prefixes metric names. Default: "livehooks".
	MetricsNamespace string

	// Registerer receives the collectors. Default: a fresh registry, also
	// used as the gatherer for /metrics.
	Registerer prometheus.Registerer

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger

	// DevMode disables caching of the client script.
	DevMode bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		Path:              "/live",
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		SessionConfig:     DefaultSessionConfig(),
		ShutdownTimeout:   15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MetricsEnabled:    true,
		MetricsNamespace:  "livehooks",
	}
}

// withDefaults fills unset fields of c from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Path == "" {
		out.Path = d.Path
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.MetricsNamespace == "" {
		out.MetricsNamespace = d.MetricsNamespace
	}

	sc := *d.SessionConfig
	if c.SessionConfig != nil {
		user := c.SessionConfig
		if user.ReadTimeout > 0 {
			sc.ReadTimeout = user.ReadTimeout
		}
		if user.WriteTimeout > 0 {
			sc.WriteTimeout = user.WriteTimeout
		}
		if user.HeartbeatInterval > 0 {
			sc.HeartbeatInterval = user.HeartbeatInterval
		}
		if user.MaxMessageSize > 0 {
			sc.MaxMessageSize = user.MaxMessageSize
		}
		if user.MaxEventQueue > 0 {
			sc.MaxEventQueue = user.MaxEventQueue
		}
	}
	out.SessionConfig = &sc
	return &out
}
