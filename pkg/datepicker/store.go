package datepicker

import (
	"github.com/vango-dev/livehooks/internal/errors"
)

// Notifier receives the outbound change notification carrying the stored
// value after every write.
type Notifier func(value string)

// Store holds the externally visible value of the field and the last value
// this widget wrote to it.
type Store struct {
	current     string
	lastWritten Date
	notify      Notifier
}

// NewStore seeds a store from the anchor's initial value. A valid initial
// value counts as written, so the first echo of it is recognized.
func NewStore(initial string, notify Notifier) *Store {
	s := &Store{current: initial, notify: notify}
	if d, err := Parse(initial); err == nil {
		s.lastWritten = d
	}
	return s
}

// Read parses the externally visible value.
func (s *Store) Read() (Date, error) {
	return Parse(s.current)
}

// Raw returns the externally visible value as last seen or written.
func (s *Store) Raw() string {
	return s.current
}

// LastWritten returns the last value recorded as ours.
func (s *Store) LastWritten() Date {
	return s.lastWritten
}

// Write stores raw in normalized form, records it as written and notifies.
// Malformed input is rejected: nothing is stored and nothing is sent.
func (s *Store) Write(raw string) error {
	d, err := Parse(raw)
	if err != nil {
		return errors.New("E002").WithDetailf("%q", raw).Wrap(err)
	}
	s.current = d.String()
	s.lastWritten = d
	if s.notify != nil {
		s.notify(s.current)
	}
	return nil
}

// Observe records a value pushed in from outside. It does not change what
// counts as written.
func (s *Store) Observe(raw string) {
	s.current = raw
}

// Adopt records d as written without notifying. Used when an inbound value
// is accepted as the new baseline.
func (s *Store) Adopt(d Date) {
	s.lastWritten = d
}
