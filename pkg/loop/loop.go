package loop

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ErrQueueFull is returned when a task cannot be queued.
var ErrQueueFull = errors.New("loop: task queue full")

// ErrClosed is returned when a task is queued on a closed loop.
var ErrClosed = errors.New("loop: closed")

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer; false means it already ran or was already stopped.
	Stop() bool
}

// Scheduler schedules callbacks onto an execution context.
// Callbacks scheduled by AfterFunc run on the same context as every other
// task, never concurrently with them.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// Loop runs queued tasks one at a time on a dedicated goroutine.
type Loop struct {
	tasks chan func()
	done  chan struct{}

	// Timer wake-ups bypass the bounded queue so a full queue cannot
	// lose them.
	timerMu sync.Mutex
	due     []func()
	wake    chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once

	// afterEach runs after every task, on the loop goroutine.
	afterEach func()

	logger *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithAfterEach registers fn to run after every task completes.
func WithAfterEach(fn func()) Option {
	return func(l *Loop) {
		l.afterEach = fn
	}
}

// WithLogger sets the logger used for panic reports.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// New creates a loop with room for queueSize pending tasks.
// Call Run to start processing.
func New(queueSize int, opts ...Option) *Loop {
	if queueSize <= 0 {
		queueSize = 256
	}
	l := &Loop{
		tasks:  make(chan func(), queueSize),
		done:   make(chan struct{}),
		wake:   make(chan struct{}, 1),
		logger: slog.Default().With("component", "loop"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes tasks until Close is called. It blocks. Timers that are
// due run before the next queued task.
func (l *Loop) Run() {
	for {
		select {
		case <-l.wake:
			l.runDue()
			continue
		default:
		}

		select {
		case fn := <-l.tasks:
			l.execute(fn)
		case <-l.wake:
			l.runDue()
		case <-l.done:
			return
		}
	}
}

// execute runs a task with panic recovery so one faulty hook cannot stop
// the loop.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	fn()
	if l.afterEach != nil {
		l.afterEach()
	}
}

func (l *Loop) runDue() {
	l.timerMu.Lock()
	due := l.due
	l.due = nil
	l.timerMu.Unlock()

	for _, fn := range due {
		if l.closed.Load() {
			return
		}
		l.execute(fn)
	}
}

// post queues a timer wake-up. It never fails while the loop is open.
func (l *Loop) post(fn func()) {
	if l.closed.Load() {
		return
	}
	l.timerMu.Lock()
	l.due = append(l.due, fn)
	l.timerMu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Dispatch queues fn to run on the loop. Safe for concurrent use.
func (l *Loop) Dispatch(fn func()) error {
	if l.closed.Load() {
		return ErrClosed
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrClosed
	default:
		l.logger.Warn("task queue full, discarding task")
		return ErrQueueFull
	}
}

// AfterFunc schedules fn to run on the loop after d.
//
// The wall-clock timer only re-queues fn, outside the bounded task queue.
// The stop check happens again on the loop, so a timer stopped by an
// earlier task never runs even if its wake-up was already queued.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.post(func() {
			if t.fire() {
				fn()
			}
		})
	})
	return t
}

// Now returns the current wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Close stops the loop. Pending tasks are discarded.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}

// Done returns a channel closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

type loopTimer struct {
	timer *time.Timer
	// state is 0 while pending, 1 once fired, 2 once stopped.
	state atomic.Int32
}

func (t *loopTimer) fire() bool {
	return t.state.CompareAndSwap(0, 1)
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(0, 2) {
		return false
	}
	t.timer.Stop()
	return true
}
