package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/livehooks"
	"github.com/vango-dev/livehooks/internal/config"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
		demo       bool
		dev        bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the hook server",
		Long: `Start the HTTP/WebSocket server for the built-in hooks.

Configuration is read from --config, or from livehooks.yaml,
livehooks.yml or livehooks.json in the working directory.

Examples:
  livehooks serve
  livehooks serve --addr=:9000 --demo
  livehooks serve --config=deploy/livehooks.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}
			if dev {
				cfg.Server.DevMode = true
			}

			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			app := livehooks.FromConfig(cfg, logger)
			if demo {
				app.EnableDemo()
			}

			out := cmd.OutOrStdout()
			success(out, "livehooks listening on %s", cfg.Server.Address)
			info(out, "socket %s, relay /client.js", cfg.Server.Path)
			if demo {
				info(out, "demo page at /")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: livehooks.yaml in the working directory)")
	cmd.Flags().StringVarP(&address, "addr", "a", "", "Listen address (overrides server.address)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Serve the demo page at /")
	cmd.Flags().BoolVar(&dev, "dev", false, "Disable caching of the relay script")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(".")
}
