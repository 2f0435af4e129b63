package server

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/livehooks/pkg/hooks"
)

// SessionManager tracks the live sessions of a server.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	registry *hooks.Registry
	config   *SessionConfig
	metrics  *Metrics
	tracer   trace.Tracer

	// maxSessions caps concurrent sessions; 0 means no limit.
	maxSessions int

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	peakSessions int

	logger *slog.Logger
}

// NewSessionManager creates an empty manager.
func NewSessionManager(registry *hooks.Registry, config *SessionConfig, metrics *Metrics, tracer trace.Tracer, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		registry: registry,
		config:   config,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
	}
}

// Create registers a session for conn. The session removes itself when it
// closes.
func (sm *SessionManager) Create(conn *websocket.Conn) (*Session, error) {
	sm.mu.Lock()
	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.mu.Unlock()
		return nil, ErrMaxSessionsReached
	}

	session := newSession(conn, sm.registry, sm.config, sm.metrics, sm.tracer, sm.logger)
	session.onClose = sm.remove
	sm.sessions[session.ID] = session
	if len(sm.sessions) > sm.peakSessions {
		sm.peakSessions = len(sm.sessions)
	}
	sm.mu.Unlock()

	sm.totalCreated.Add(1)
	sm.metrics.sessionOpened()
	sm.logger.Info("session created",
		"session_id", session.ID,
		"active_sessions", sm.Count())
	return session, nil
}

func (sm *SessionManager) remove(s *Session) {
	sm.mu.Lock()
	_, ok := sm.sessions[s.ID]
	delete(sm.sessions, s.ID)
	sm.mu.Unlock()

	if ok {
		sm.totalClosed.Add(1)
		sm.metrics.sessionClosed()
	}
}

// Get returns the session with id, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Close closes the session with id if it exists.
func (sm *SessionManager) Close(id string) {
	if s := sm.Get(id); s != nil {
		s.Close()
	}
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ForEach calls fn for every session until it returns false.
// The callback should not perform long-running operations as it holds the read lock.
func (sm *SessionManager) ForEach(fn func(*Session) bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, session := range sm.sessions {
		if !fn(session) {
			break
		}
	}
}

// Shutdown closes every session concurrently and waits for them.
func (sm *SessionManager) Shutdown() {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
		}(session)
	}
	wg.Wait()

	sm.logger.Info("session manager shutdown",
		"closed_sessions", len(sessions))
}

// ManagerStats contains aggregated session statistics.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
	Peak         int
}

// Stats returns aggregated session statistics.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	active := len(sm.sessions)
	peak := sm.peakSessions
	sm.mu.RUnlock()

	return ManagerStats{
		Active:       active,
		TotalCreated: sm.totalCreated.Load(),
		TotalClosed:  sm.totalClosed.Load(),
		Peak:         peak,
	}
}
