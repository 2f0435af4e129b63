package datepicker

import (
	"log/slog"
	"time"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/loop"
)

const (
	// DefaultDebounce is how long a user selection stays authoritative
	// over inbound values.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultCoalesce is how long a repair waits so that a burst of
	// dropped-value re-renders produces a single rewrite.
	DefaultCoalesce = 150 * time.Millisecond
)

// Mode is the reconciler's user-action state.
type Mode uint8

const (
	// ModeIdle accepts inbound values.
	ModeIdle Mode = iota
	// ModeSelecting ignores inbound values until the debounce window ends.
	ModeSelecting
)

func (m Mode) String() string {
	if m == ModeSelecting {
		return "selecting"
	}
	return "idle"
}

// Outcome reports what the reconciler did with an input.
type Outcome uint8

const (
	// OutcomeSuppressed means an inbound value arrived while selecting.
	OutcomeSuppressed Outcome = iota + 1
	// OutcomeEcho means the inbound value is the one this widget wrote.
	OutcomeEcho
	// OutcomeCorrected means the inbound value replaced the selection.
	OutcomeCorrected
	// OutcomeRepairScheduled means the inbound value dropped the selection
	// and a rewrite is pending.
	OutcomeRepairScheduled
	// OutcomeCleared means an inbound empty value arrived with nothing
	// selected.
	OutcomeCleared
	// OutcomeMalformed means the inbound value is not a date.
	OutcomeMalformed
	// OutcomeIgnored means the inbound value needs no action.
	OutcomeIgnored
	// OutcomeDetached means the widget is gone.
	OutcomeDetached
	// OutcomeRepaired means a pending repair rewrote the selection.
	OutcomeRepaired
	// OutcomeRepairStale means a pending repair fired but no longer applied.
	OutcomeRepairStale
)

var outcomeNames = map[Outcome]string{
	OutcomeSuppressed:      "suppressed",
	OutcomeEcho:            "echo",
	OutcomeCorrected:       "corrected",
	OutcomeRepairScheduled: "repair_scheduled",
	OutcomeCleared:         "cleared",
	OutcomeMalformed:       "malformed",
	OutcomeIgnored:         "ignored",
	OutcomeDetached:        "detached",
	OutcomeRepaired:        "repaired",
	OutcomeRepairStale:     "repair_stale",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Timing holds the reconciler's delays.
type Timing struct {
	Debounce time.Duration
	Coalesce time.Duration
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{Debounce: DefaultDebounce, Coalesce: DefaultCoalesce}
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithTiming overrides the debounce and coalesce delays. Zero fields keep
// their defaults.
func WithTiming(t Timing) Option {
	return func(r *Reconciler) {
		if t.Debounce > 0 {
			r.timing.Debounce = t.Debounce
		}
		if t.Coalesce > 0 {
			r.timing.Coalesce = t.Coalesce
		}
	}
}

// WithDisplay registers fn to be called whenever the displayed date must
// change.
func WithDisplay(fn func(Date)) Option {
	return func(r *Reconciler) {
		r.display = fn
	}
}

// WithOutcome registers fn to observe every outcome, including those of
// repairs firing.
func WithOutcome(fn func(Outcome)) Option {
	return func(r *Reconciler) {
		r.observe = fn
	}
}

// WithLogger sets the reconciler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// repair is a scheduled rewrite of target.
type repair struct {
	timer  loop.Timer
	target Date
}

// Reconciler keeps a widget's selection consistent with a field that is
// re-rendered from outside.
//
// All methods must be called from the scheduler's execution context; timers
// it arms run there too.
type Reconciler struct {
	store   *Store
	sched   loop.Scheduler
	timing  Timing
	display func(Date)
	observe func(Outcome)
	logger  *slog.Logger

	visible  Month
	selected Date

	// selecting is non-nil exactly while in ModeSelecting.
	selecting loop.Timer
	// pending is non-nil exactly while a repair is scheduled.
	pending *repair

	detached bool
}

// NewReconciler creates a reconciler seeded from the store's current value.
// With no valid value the calendar opens on the current month.
func NewReconciler(store *Store, sched loop.Scheduler, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:  store,
		sched:  sched,
		timing: DefaultTiming(),
		logger: slog.Default().With("component", "datepicker"),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.visible = MonthOf(DateOf(sched.Now()))
	if d, err := store.Read(); err == nil && !d.IsZero() {
		r.selected = d
		r.visible = MonthOf(d)
	}
	return r
}

// Mode returns the current user-action state.
func (r *Reconciler) Mode() Mode {
	if r.selecting != nil {
		return ModeSelecting
	}
	return ModeIdle
}

// RestorePending reports whether a repair is scheduled.
func (r *Reconciler) RestorePending() bool {
	return r.pending != nil
}

// Selected returns the current selection.
func (r *Reconciler) Selected() Date { return r.selected }

// VisibleMonth returns the month the calendar shows.
func (r *Reconciler) VisibleMonth() Month { return r.visible }

// Today returns the scheduler's current date.
func (r *Reconciler) Today() Date { return DateOf(r.sched.Now()) }

// Select commits a user selection: the store is written and notified, and
// inbound values are ignored for the debounce window.
func (r *Reconciler) Select(d Date) error {
	if r.detached {
		return errors.New("E006").WithDetail("datepicker detached")
	}
	if d.IsZero() {
		return errors.New("E002").WithDetail("empty selection")
	}

	r.enterSelecting()
	r.cancelRepair()

	r.selected = d
	r.visible = MonthOf(d)
	if err := r.store.Write(d.String()); err != nil {
		return err
	}
	r.show()
	return nil
}

// JumpToToday selects the current date.
func (r *Reconciler) JumpToToday() error {
	return r.Select(r.Today())
}

// Navigate moves the visible month by delta without touching the
// selection.
func (r *Reconciler) Navigate(delta int) {
	if r.detached {
		return
	}
	r.visible = r.visible.AddMonths(delta)
}

// Reconcile applies an inbound value. Rules are checked in order and the
// first match wins.
func (r *Reconciler) Reconcile(raw string) Outcome {
	return r.report(r.reconcile(raw))
}

func (r *Reconciler) reconcile(raw string) Outcome {
	if r.detached {
		return OutcomeDetached
	}
	r.store.Observe(raw)

	if r.selecting != nil {
		return OutcomeSuppressed
	}

	v, err := Parse(raw)
	if err != nil {
		r.logger.Debug("ignoring malformed value", "value", raw, "error", err)
		return OutcomeMalformed
	}

	// Compared as dates, so a reformatted echo is still an echo.
	if v == r.store.LastWritten() {
		return OutcomeEcho
	}

	if !v.IsZero() {
		if v != r.selected {
			r.selected = v
			r.visible = MonthOf(v)
			r.store.Adopt(v)
			r.show()
			return OutcomeCorrected
		}
		r.store.Adopt(v)
		return OutcomeEcho
	}

	if !r.selected.IsZero() {
		if !r.store.LastWritten().IsZero() {
			r.scheduleRepair(r.selected)
			return OutcomeRepairScheduled
		}
		return OutcomeIgnored
	}

	r.cancelRepair()
	r.selected = Empty
	r.store.Adopt(Empty)
	r.show()
	return OutcomeCleared
}

// Detach cancels all timers. Every later call is a no-op.
func (r *Reconciler) Detach() {
	if r.selecting != nil {
		r.selecting.Stop()
		r.selecting = nil
	}
	r.cancelRepair()
	r.detached = true
}

func (r *Reconciler) enterSelecting() {
	if r.selecting != nil {
		r.selecting.Stop()
	}
	var t loop.Timer
	t = r.sched.AfterFunc(r.timing.Debounce, func() {
		if r.selecting == t {
			r.selecting = nil
		}
	})
	r.selecting = t
}

func (r *Reconciler) scheduleRepair(target Date) {
	r.cancelRepair()
	p := &repair{target: target}
	p.timer = r.sched.AfterFunc(r.timing.Coalesce, func() {
		r.report(r.fireRepair(p))
	})
	r.pending = p
}

func (r *Reconciler) cancelRepair() {
	if r.pending != nil {
		r.pending.timer.Stop()
		r.pending = nil
	}
}

// fireRepair re-validates before writing: the selection may have changed
// or the field may already carry it again.
func (r *Reconciler) fireRepair(p *repair) Outcome {
	if r.pending != p || r.detached {
		return OutcomeRepairStale
	}
	r.pending = nil

	if r.selected != p.target {
		return OutcomeRepairStale
	}
	if cur, err := r.store.Read(); err == nil && cur == p.target {
		return OutcomeRepairStale
	}
	if err := r.store.Write(p.target.String()); err != nil {
		r.logger.Error("repair write failed", "error", err)
		return OutcomeRepairStale
	}
	r.logger.Debug("restored dropped value", "value", p.target.String())
	return OutcomeRepaired
}

func (r *Reconciler) show() {
	if r.display != nil {
		r.display(r.selected)
	}
}

func (r *Reconciler) report(o Outcome) Outcome {
	if r.observe != nil {
		r.observe(o)
	}
	return o
}
