package datepicker

import (
	"log/slog"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/hooks"
)

// Name is the registry name of the hook.
const Name = "Datepicker"

const (
	selValueInput   = "[data-value-input]"
	selDisplayInput = "[data-display-input]"
	selCalendar     = "[data-calendar]"

	hiddenClass = "hidden"
)

// Options are the host-wide defaults for datepicker instances.
type Options struct {
	Timing Timing
	Locale string
}

// Config is the per-anchor config from the v-hook attribute.
type Config struct {
	Locale string `json:"locale,omitempty"`
}

// Factory returns a hooks.Factory producing datepickers with opts as
// defaults.
func Factory(opts Options) hooks.Factory {
	return func(env hooks.Env, raw hooks.Config) (hooks.Hook, error) {
		cfg := Config{Locale: opts.Locale}
		if err := raw.Decode(&cfg); err != nil {
			return nil, err
		}
		if env.Logger == nil {
			env.Logger = slog.Default().With("hook", Name, "hook_id", env.ID)
		}
		return &Hook{
			env:    env,
			timing: opts.Timing,
			locale: LocaleFor(cfg.Locale),
		}, nil
	}
}

// Hook binds a Reconciler to a datepicker anchor.
type Hook struct {
	env    hooks.Env
	timing Timing
	locale Locale

	anchor   *dom.Anchor
	store    *Store
	rec      *Reconciler
	readonly bool
	open     bool
}

// Mounted seeds the widget from the anchor's current value.
func (h *Hook) Mounted(anchor *dom.Anchor) error {
	if err := h.bind(anchor); err != nil {
		return err
	}

	h.store = NewStore(anchor.Find(selValueInput).Value(), h.notify)
	h.rec = NewReconciler(h.store, h.env.Scheduler,
		WithTiming(h.timing),
		WithDisplay(h.showDate),
		WithOutcome(func(o Outcome) { h.env.Record(Name, o.String()) }),
		WithLogger(h.env.Logger),
	)
	h.syncView()
	return nil
}

// Updated treats the re-rendered anchor as an inbound notification.
func (h *Hook) Updated(anchor *dom.Anchor) error {
	if h.rec == nil {
		return errors.New("E006").WithDetail(Name)
	}
	if err := h.bind(anchor); err != nil {
		return err
	}
	if h.readonly && h.open {
		h.close()
	}

	h.rec.Reconcile(anchor.Find(selValueInput).Value())
	h.syncView()
	return nil
}

// HandleEvent routes user interaction to calendar intents.
func (h *Hook) HandleEvent(e hooks.Event) error {
	if h.rec == nil {
		return errors.New("E006").WithDetail(Name)
	}

	switch e.Name {
	case "click":
		switch {
		case e.Targets("toggleButton"):
			if h.open {
				h.close()
			} else {
				h.openCalendar()
			}
		case e.Targets("displayInput"):
			h.openCalendar()
		case e.Targets("prevMonth"):
			return h.apply(Navigate(-1))
		case e.Targets("nextMonth"):
			return h.apply(Navigate(1))
		case e.Targets("today"):
			return h.apply(JumpToToday())
		case e.Targets("day"):
			d, err := Parse(e.TargetValue("day"))
			if err != nil || d.IsZero() {
				return errors.New("E001").WithDetailf("day %q", e.TargetValue("day"))
			}
			return h.apply(PickDay(d))
		}
	case "keydown":
		if e.String("key") == "Escape" {
			return h.apply(Close())
		}
	case dom.ListenClickOutside:
		return h.apply(Close())
	}
	return nil
}

// Destroyed cancels the reconciler's timers and drops the overlay listener.
func (h *Hook) Destroyed() {
	if h.rec != nil {
		h.rec.Detach()
	}
	if h.open && h.anchor != nil {
		h.anchor.Unlisten(dom.ListenClickOutside)
	}
	h.open = false
}

// Reconciler exposes the state machine, mainly for tests and diagnostics.
func (h *Hook) Reconciler() *Reconciler { return h.rec }

// IsOpen reports whether the overlay is visible.
func (h *Hook) IsOpen() bool { return h.open }

// Readonly reports whether user selection is disabled.
func (h *Hook) Readonly() bool { return h.readonly }

func (h *Hook) apply(in Intent) error {
	switch in.Kind {
	case IntentPickDay, IntentJumpToToday:
		if h.readonly || !h.open {
			return nil
		}
		var err error
		if in.Kind == IntentPickDay {
			err = h.rec.Select(in.Date)
		} else {
			err = h.rec.JumpToToday()
		}
		if err != nil {
			return err
		}
		h.close()
	case IntentNavigate:
		if !h.open {
			return nil
		}
		h.rec.Navigate(in.Delta)
		return h.renderCalendar()
	case IntentClose:
		h.close()
	}
	return nil
}

func (h *Hook) bind(anchor *dom.Anchor) error {
	for _, sel := range []string{selValueInput, selDisplayInput, selCalendar} {
		if !anchor.Find(sel).Exists() {
			return errors.New("E004").WithDetailf("%s in #%s", sel, anchor.ID())
		}
	}
	h.anchor = anchor
	h.readonly = anchor.Data("readonly") == "true"
	return nil
}

func (h *Hook) openCalendar() {
	if h.open || h.readonly {
		return
	}
	h.open = true
	if err := h.renderCalendar(); err != nil {
		h.env.Logger.Error("render calendar", "error", err)
	}
	h.anchor.Find(selCalendar).RemoveClass(hiddenClass)
	h.anchor.Listen(dom.ListenClickOutside)
}

func (h *Hook) close() {
	if !h.open {
		return
	}
	h.open = false
	h.anchor.Find(selCalendar).AddClass(hiddenClass)
	h.anchor.Unlisten(dom.ListenClickOutside)
}

func (h *Hook) renderCalendar() error {
	g := NewGrid(h.rec.VisibleMonth(), h.rec.Selected(), h.rec.Today())
	markup, err := RenderCalendar(g, h.locale)
	if err != nil {
		return err
	}
	h.anchor.Find(selCalendar).SetHTML(markup)
	return nil
}

// notify is the store's outbound path: set the field and fire input so the
// page's form binding picks the value up.
func (h *Hook) notify(value string) {
	in := h.anchor.Find(selValueInput)
	in.SetValue(value)
	in.Dispatch("input")
}

func (h *Hook) showDate(d Date) {
	display := h.anchor.Find(selDisplayInput)
	if display.Value() != d.Display() {
		display.SetValue(d.Display())
	}
}

// syncView repairs view state a re-render may have reset: the display text
// and, while open, the overlay.
func (h *Hook) syncView() {
	h.showDate(h.rec.Selected())
	if !h.open {
		return
	}
	cal := h.anchor.Find(selCalendar)
	if cal.HasClass(hiddenClass) {
		cal.RemoveClass(hiddenClass)
	}
	if !cal.Find("[data-today]").Exists() {
		if err := h.renderCalendar(); err != nil {
			h.env.Logger.Error("render calendar", "error", err)
		}
	}
}
