package server

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/vango-dev/livehooks/pkg/hooks"
	"github.com/vango-dev/livehooks/pkg/protocol"
)

func newTestManager(max int) *SessionManager {
	sm := NewSessionManager(hooks.NewRegistry(), DefaultSessionConfig(), nil, defaultTracer(), slog.Default())
	sm.maxSessions = max
	return sm
}

func TestSessionManager_CreateAndClose(t *testing.T) {
	sm := newTestManager(0)

	a, err := sm.Create(nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, err := sm.Create(nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("sessions share an id")
	}
	if sm.Get(a.ID) != a || sm.Count() != 2 {
		t.Fatalf("Get/Count after create: %v / %d", sm.Get(a.ID), sm.Count())
	}

	sm.Close(a.ID)
	sm.Close(a.ID)
	if sm.Get(a.ID) != nil || !a.IsClosed() {
		t.Fatal("closed session still tracked")
	}

	stats := sm.Stats()
	if stats.Active != 1 || stats.TotalCreated != 2 || stats.TotalClosed != 1 || stats.Peak != 2 {
		t.Fatalf("Stats() = %+v", stats)
	}

	seen := 0
	sm.ForEach(func(*Session) bool { seen++; return true })
	if seen != 1 {
		t.Fatalf("ForEach visited %d sessions, want 1", seen)
	}

	sm.Shutdown()
	if sm.Count() != 0 || !b.IsClosed() {
		t.Fatal("Shutdown() left sessions open")
	}
}

func TestSessionManager_MaxSessions(t *testing.T) {
	sm := newTestManager(1)
	if _, err := sm.Create(nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := sm.Create(nil); !errors.Is(err, ErrMaxSessionsReached) {
		t.Fatalf("Create() error = %v, want ErrMaxSessionsReached", err)
	}
}

func TestSession_SendWithoutConnection(t *testing.T) {
	s, err := newTestManager(0).Create(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.send(protocol.Hello(s.ID)); !errors.Is(err, ErrNoConnection) {
		t.Fatalf("send() error = %v, want ErrNoConnection", err)
	}
	s.Close()
	if err := s.send(protocol.Hello(s.ID)); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("send() after Close error = %v, want ErrSessionClosed", err)
	}
}
