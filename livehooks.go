// Package livehooks hosts server-side behavior for [v-hook] anchors.
//
// A page marks elements with a v-hook attribute naming a registered hook
// and, optionally, its JSON config:
//
//	<div id="due" v-hook='Datepicker:{"locale":"en"}'>...</div>
//
// The relay script served at /client.js reports anchors and their events
// over a WebSocket; hooks answer with DOM patches. Usage:
//
//	app := livehooks.New(server.DefaultServerConfig(), livehooks.DefaultOptions())
//	app.EnableDemo()
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package livehooks

import (
	"time"

	"github.com/vango-dev/livehooks/pkg/datepicker"
	"github.com/vango-dev/livehooks/pkg/flash"
	"github.com/vango-dev/livehooks/pkg/hooks"
	"github.com/vango-dev/livehooks/pkg/selectbox"
	"github.com/vango-dev/livehooks/pkg/tabs"
)

// Version is the release of the module.
const Version = "0.3.0"

// Options are the host-wide hook defaults.
type Options struct {
	// Datepicker carries the reconciler delays and default locale.
	Datepicker datepicker.Options

	// FlashDismissAfter is the default auto-dismiss delay of flash
	// messages.
	FlashDismissAfter time.Duration
}

// DefaultOptions returns the standard hook defaults.
func DefaultOptions() Options {
	return Options{
		Datepicker: datepicker.Options{
			Timing: datepicker.DefaultTiming(),
			Locale: "es",
		},
		FlashDismissAfter: flash.DefaultDismissAfter,
	}
}

// NewRegistry returns a registry with every built-in hook.
func NewRegistry(opts Options) *hooks.Registry {
	r := hooks.NewRegistry()
	r.Register(datepicker.Name, datepicker.Factory(opts.Datepicker))
	r.Register(flash.Name, flash.Factory(opts.FlashDismissAfter))
	r.Register(tabs.Name, tabs.Factory())
	r.Register(selectbox.Name, selectbox.Factory())
	return r
}
