// Package flash auto-dismisses flash messages.
//
// The anchor is the flash element itself; its click handler clears the
// message on the server. After the dismiss delay the hook clicks it:
//
//	<div id="flash-info" v-hook="Flash" phx-click="lv:clear-flash">...</div>
//	<div id="flash-error" v-hook='Flash:{"dismissAfter":"15s"}'>...</div>
package flash

import (
	"log/slog"
	"time"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/hooks"
	"github.com/vango-dev/livehooks/pkg/loop"
)

// Name is the registry name of the hook.
const Name = "Flash"

// DefaultDismissAfter is how long a flash stays up.
const DefaultDismissAfter = 8 * time.Second

// Config is the per-anchor config from the v-hook attribute.
type Config struct {
	DismissAfter string `json:"dismissAfter,omitempty"`
}

// Factory returns a hooks.Factory using dismissAfter unless the anchor
// overrides it. A non-positive dismissAfter means DefaultDismissAfter.
func Factory(dismissAfter time.Duration) hooks.Factory {
	if dismissAfter <= 0 {
		dismissAfter = DefaultDismissAfter
	}
	return func(env hooks.Env, raw hooks.Config) (hooks.Hook, error) {
		var cfg Config
		if err := raw.Decode(&cfg); err != nil {
			return nil, err
		}
		d := dismissAfter
		if cfg.DismissAfter != "" {
			parsed, err := time.ParseDuration(cfg.DismissAfter)
			if err != nil || parsed <= 0 {
				return nil, errors.New("E005").WithDetailf("dismissAfter %q", cfg.DismissAfter)
			}
			d = parsed
		}
		if env.Logger == nil {
			env.Logger = slog.Default().With("hook", Name, "hook_id", env.ID)
		}
		return &Hook{env: env, after: d}, nil
	}
}

// Hook dismisses its anchor once.
type Hook struct {
	env    hooks.Env
	after  time.Duration
	anchor *dom.Anchor
	timer  loop.Timer
	done   bool
}

// Mounted starts the dismiss timer.
func (h *Hook) Mounted(anchor *dom.Anchor) error {
	if h.timer != nil {
		return errors.New("E007").WithDetail(anchor.ID())
	}
	h.anchor = anchor
	h.timer = h.env.Scheduler.AfterFunc(h.after, h.dismiss)
	return nil
}

// Updated keeps the running timer; a re-rendered message does not restart
// the countdown.
func (h *Hook) Updated(anchor *dom.Anchor) error {
	if h.anchor == nil {
		return errors.New("E006").WithDetail(Name)
	}
	h.anchor = anchor
	return nil
}

// HandleEvent ignores events.
func (h *Hook) HandleEvent(hooks.Event) error { return nil }

// Destroyed cancels a pending dismiss.
func (h *Hook) Destroyed() {
	if h.timer != nil {
		h.timer.Stop()
	}
	h.done = true
}

// Pending reports whether the dismiss has not fired yet.
func (h *Hook) Pending() bool {
	return h.timer != nil && !h.done
}

func (h *Hook) dismiss() {
	h.done = true
	h.env.Logger.Debug("dismissing flash", "after", h.after)
	h.anchor.Root().Click()
	h.env.Record(Name, "dismissed")
}
