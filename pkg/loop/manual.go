package loop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by explicit calls to Advance.
// Callbacks run synchronously inside Advance, in due-time order, so tests
// observe exactly the interleavings they set up. Manual is not safe for
// concurrent use.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

// NewManual returns a Manual clock starting at a fixed instant.
func NewManual() *Manual {
	return NewManualAt(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))
}

// NewManualAt returns a Manual clock starting at now.
func NewManualAt(now time.Time) *Manual {
	return &Manual{now: now}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Advance moves the clock forward by d, running every timer due on the way.
// Timers scheduled by callbacks run too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.at
		m.remove(t)
		t.fn()
	}
	m.now = end
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	return len(m.timers)
}

func (m *Manual) next(end time.Time) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		a, b := m.timers[i], m.timers[j]
		if a.at.Equal(b.at) {
			return a.seq < b.seq
		}
		return a.at.Before(b.at)
	})
	if first := m.timers[0]; !first.at.After(end) {
		return first
	}
	return nil
}

func (m *Manual) remove(t *manualTimer) bool {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	m   *Manual
	at  time.Time
	seq uint64
	fn  func()
}

func (t *manualTimer) Stop() bool {
	return t.m.remove(t)
}
