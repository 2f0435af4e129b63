package livehooks

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vango-dev/livehooks/internal/config"
	"github.com/vango-dev/livehooks/pkg/datepicker"
	"github.com/vango-dev/livehooks/pkg/hooks"
	"github.com/vango-dev/livehooks/pkg/server"
)

// App wires the built-in hooks into a server.
type App struct {
	server   *server.Server
	registry *hooks.Registry
	options  Options
	logger   *slog.Logger
}

// New creates an App serving the built-in hooks.
func New(cfg *server.ServerConfig, opts Options) *App {
	registry := NewRegistry(opts)
	srv := server.New(registry, cfg)
	return &App{
		server:   srv,
		registry: registry,
		options:  opts,
		logger:   srv.Logger(),
	}
}

// FromConfig builds an App from a loaded configuration file.
func FromConfig(cfg *config.Config, logger *slog.Logger) *App {
	srvCfg, opts := translate(cfg)
	srvCfg.Logger = logger
	return New(srvCfg, opts)
}

// translate maps the file configuration onto server and hook settings.
func translate(cfg *config.Config) (*server.ServerConfig, Options) {
	sc := server.DefaultServerConfig()
	sc.Address = cfg.Server.Address
	sc.Path = cfg.Server.Path
	sc.MaxSessions = cfg.Server.MaxSessions
	sc.DevMode = cfg.Server.DevMode
	sc.MetricsEnabled = cfg.Metrics.IsEnabled()
	sc.MetricsNamespace = cfg.Metrics.Namespace
	sc.SessionConfig.ReadTimeout = cfg.Server.ReadTimeout.Duration
	sc.SessionConfig.WriteTimeout = cfg.Server.WriteTimeout.Duration
	sc.SessionConfig.HeartbeatInterval = cfg.Server.Heartbeat.Duration
	sc.SessionConfig.MaxEventQueue = cfg.Server.MaxQueue

	opts := Options{
		Datepicker: datepicker.Options{
			Timing: datepicker.Timing{
				Debounce: cfg.Datepicker.Debounce.Duration,
				Coalesce: cfg.Datepicker.Coalesce.Duration,
			},
			Locale: cfg.Datepicker.Locale,
		},
		FlashDismissAfter: cfg.Flash.DismissAfter.Duration,
	}
	return sc, opts
}

// EnableDemo serves the demo page for every path the server does not
// handle itself.
func (a *App) EnableDemo() {
	a.server.SetHandler(DemoHandler(a.server.Config().Path, a.options.Datepicker.Locale))
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.server.ServeHTTP(w, r)
}

// Handler returns the App as an http.Handler.
func (a *App) Handler() http.Handler {
	return a
}

// Run serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Shutdown closes all sessions and stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Server returns the underlying server.
func (a *App) Server() *server.Server {
	return a.server
}

// Registry returns the hook registry. Hooks registered before the first
// connection are available to it.
func (a *App) Registry() *hooks.Registry {
	return a.registry
}
