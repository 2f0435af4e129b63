package server

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/hooks"
	"github.com/vango-dev/livehooks/pkg/loop"
	"github.com/vango-dev/livehooks/pkg/protocol"
)

// instance is one mounted hook.
type instance struct {
	name   string
	hook   hooks.Hook
	anchor *dom.Anchor
}

// Session is one WebSocket connection and the hooks mounted through it.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool

	// loop runs every hook callback; instances is only touched there.
	loop      *loop.Loop
	registry  *hooks.Registry
	instances map[string]*instance
	// endTrace ends the current message's span once its patches are
	// flushed. Loop goroutine only.
	endTrace func(patches int)

	config  *SessionConfig
	metrics *Metrics
	tracer  trace.Tracer
	logger  *slog.Logger

	// onClose runs once after the connection is closed.
	onClose func(*Session)

	// Counters
	messageCount atomic.Uint64
	patchCount   atomic.Uint64
}

func newSession(conn *websocket.Conn, registry *hooks.Registry, config *SessionConfig, metrics *Metrics, tracer trace.Tracer, logger *slog.Logger) *Session {
	id := ulid.Make().String()
	logger = logger.With("session_id", id)

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		registry:  registry,
		instances: make(map[string]*instance),
		config:    config,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
	}
	s.loop = loop.New(config.MaxEventQueue,
		loop.WithAfterEach(s.afterTask),
		loop.WithLogger(logger.With("component", "loop")),
	)
	return s
}

// Start greets the client and starts the session goroutines.
func (s *Session) Start() {
	if err := s.send(protocol.Hello(s.ID)); err != nil {
		s.logger.Error("hello failed", "error", err)
		s.Close()
		return
	}
	go s.ReadLoop()
	go s.WriteLoop()
	go func() {
		s.loop.Run()
		// Run has returned, so this goroutine is still the only one
		// touching instances.
		s.destroyAll()
	}()
}

// ReadLoop reads client messages and queues them on the loop. It blocks
// until the connection fails or the session closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		s.messageCount.Add(1)

		msg, err := protocol.Decode(data)
		if err != nil {
			id := ""
			if msg != nil {
				id = msg.ID
			}
			s.logger.Warn("invalid message", "error", err)
			s.metrics.hookError("", errors.CodeOf(err))
			_ = s.send(protocol.ErrorFor(id, err))
			continue
		}
		s.metrics.message(string(msg.Type))

		switch err := s.loop.Dispatch(func() { s.handle(msg) }); err {
		case nil:
		case loop.ErrQueueFull:
			s.metrics.dropped()
			_ = s.send(protocol.ErrorFor(msg.ID, errors.New("E022").WithDetail(string(msg.Type))))
		default:
			return
		}
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ping(); err != nil {
				s.Close()
				return
			}
		case <-s.loop.Done():
			return
		}
	}
}

// handle applies one client message. It runs on the loop.
func (s *Session) handle(msg *protocol.ClientMessage) {
	name := ""
	if inst := s.instances[msg.ID]; inst != nil {
		name = inst.name
	}
	end := s.traceMessage(msg)

	var err error
	switch msg.Type {
	case protocol.TypeMount:
		name, err = s.mount(msg.ID, msg.HTML)
	case protocol.TypeUpdate:
		name, err = s.update(msg.ID, msg.HTML)
	case protocol.TypeEvent:
		err = s.event(msg)
	case protocol.TypeDestroy:
		s.destroy(msg.ID)
	}

	if err != nil {
		s.logger.Warn("hook error",
			"hook", name,
			"hook_id", msg.ID,
			"type", msg.Type,
			"error", err)
		s.metrics.hookError(name, errors.CodeOf(err))
		_ = s.send(protocol.ErrorFor(msg.ID, err))
	}
	s.endTrace = func(patches int) { end(name, err, patches) }
}

// afterTask runs after every loop task, messages and timers alike, and is
// the only place patches are flushed.
func (s *Session) afterTask() {
	n := s.flush()
	if s.endTrace != nil {
		end := s.endTrace
		s.endTrace = nil
		end(n)
	}
}

func (s *Session) mount(id, markup string) (string, error) {
	if _, ok := s.instances[id]; ok {
		return "", errors.New("E007").WithDetail(id)
	}
	anchor, name, cfg, err := parseAnchor(id, markup)
	if err != nil {
		return name, err
	}

	env := hooks.Env{
		ID:        id,
		Scheduler: s.loop,
		Logger:    s.logger.With("hook", name, "hook_id", id),
		Observe:   s.metrics.outcome,
	}
	h, err := s.registry.New(name, env, cfg)
	if err != nil {
		return name, err
	}
	if err := h.Mounted(anchor); err != nil {
		h.Destroyed()
		return name, err
	}
	s.instances[id] = &instance{name: name, hook: h, anchor: anchor}
	s.logger.Debug("hook mounted", "hook", name, "hook_id", id)
	return name, nil
}

// update rebinds a mounted hook. A changed v-hook name remounts.
func (s *Session) update(id, markup string) (string, error) {
	inst := s.instances[id]
	if inst == nil {
		return "", errors.New("E006").WithDetail(id)
	}
	anchor, name, _, err := parseAnchor(id, markup)
	if err != nil {
		return inst.name, err
	}
	if name != inst.name {
		s.destroy(id)
		return s.mount(id, markup)
	}
	// Patches recorded against the old anchor were flushed after the
	// previous task.
	inst.anchor = anchor
	return name, inst.hook.Updated(anchor)
}

func (s *Session) event(msg *protocol.ClientMessage) error {
	inst := s.instances[msg.ID]
	if inst == nil {
		return errors.New("E006").WithDetail(msg.ID)
	}
	return inst.hook.HandleEvent(hooks.Event{
		Name:   msg.Event,
		Target: msg.Target,
		Data:   msg.Data,
	})
}

// destroy is idempotent: the client may report a removal twice.
func (s *Session) destroy(id string) {
	inst := s.instances[id]
	if inst == nil {
		return
	}
	inst.hook.Destroyed()
	// The element is gone; whatever it recorded has nowhere to go.
	inst.anchor.Flush()
	delete(s.instances, id)
}

func (s *Session) destroyAll() {
	for id := range s.instances {
		s.destroy(id)
	}
}

func parseAnchor(id, markup string) (*dom.Anchor, string, hooks.Config, error) {
	anchor, err := dom.Parse(markup)
	if err != nil {
		return nil, "", nil, errors.New("E020").WithDetail(id).Wrap(err)
	}
	if got := anchor.ID(); got != "" && got != id {
		return nil, "", nil, errors.New("E020").WithDetailf("anchor id %q does not match %q", got, id)
	}
	attr, ok := anchor.Attr(hooks.AttrName)
	if !ok {
		return nil, "", nil, errors.New("E003").WithDetailf("#%s has no %s attribute", id, hooks.AttrName)
	}
	name, cfg, err := hooks.ParseAttr(attr)
	if err != nil {
		return nil, "", nil, err
	}
	return anchor, name, cfg, nil
}

// flush sends the patches every anchor recorded, one message per anchor in
// id order. It runs on the loop and returns the number of patches sent.
func (s *Session) flush() int {
	var ids []string
	for id, inst := range s.instances {
		if inst.anchor.Pending() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	total := 0
	for _, id := range ids {
		patches := s.instances[id].anchor.Flush()
		total += len(patches)
		if err := s.send(protocol.Patches(id, patches)); err != nil {
			s.logger.Debug("patches not sent", "hook_id", id, "error", err)
		}
	}
	s.patchCount.Add(uint64(total))
	s.metrics.patches(total)
	return total
}

// send writes one message. Safe for concurrent use.
func (s *Session) send(msg protocol.ServerMessage) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		go s.Close()
		return &SessionError{SessionID: s.ID, Op: "write", Err: err}
	}
	return nil
}

func (s *Session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
}

// Close closes the connection and stops the loop. Mounted hooks are
// destroyed on the loop goroutine once it has stopped.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	s.loop.Close()

	s.mu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}
	s.mu.Unlock()

	s.logger.Info("session closed",
		"messages", s.messageCount.Load(),
		"patches", s.patchCount.Load(),
		"duration", time.Since(s.CreatedAt))

	if s.onClose != nil {
		s.onClose(s)
	}
}

// IsClosed reports whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session's loop stops.
func (s *Session) Done() <-chan struct{} {
	return s.loop.Done()
}

// SessionStats is a point-in-time view of a session.
type SessionStats struct {
	ID        string
	CreatedAt time.Time
	Messages  uint64
	Patches   uint64
}

// Stats returns the session's counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Messages:  s.messageCount.Load(),
		Patches:   s.patchCount.Load(),
	}
}
