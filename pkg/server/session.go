package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/protocol"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/reactive"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

var errSessionClosed = stderrors.New("session closed")

// Session is one WebSocket connection and the grids it registered.
type Session struct {
	id     string
	conn   *websocket.Conn
	group  *group
	config *Config
	logger *slog.Logger
	stats  *metrics

	writeMu sync.Mutex
	closed  atomic.Bool

	// grids is touched only by the read loop.
	grids map[string]*remoteGrid
}

func newSession(conn *websocket.Conn, g *group, cfg *Config, sm *metrics, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		conn:   conn,
		group:  g,
		config: cfg,
		stats:  sm,
		logger: logger.With("session", id, "group", g.name),
		grids:  make(map[string]*remoteGrid),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// run greets the client and applies its messages until the connection
// ends. Every grid is unregistered before run returns.
func (s *Session) run(ctx context.Context, tracer trace.Tracer) {
	_, span := tracer.Start(ctx, "server.session",
		trace.WithAttributes(
			attribute.String("gridsync.session", s.id),
			attribute.String("gridsync.group", s.group.name),
		))
	defer span.End()
	defer reactive.ReleaseGoroutine()
	defer s.teardown()

	if err := s.send(protocol.Hello(s.id, s.group.name)); err != nil {
		return
	}
	s.conn.SetReadLimit(protocol.MaxMessageSize)

	var received int
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) && !s.isClosed() {
				s.logger.Warn("read error", "error", err)
			}
			span.SetAttributes(attribute.Int("gridsync.messages", received))
			return
		}
		received++

		msg, err := protocol.Decode(data)
		if err != nil {
			s.reject(err)
			continue
		}
		s.stats.messages.WithLabelValues("in", string(msg.Type)).Inc()

		if err := s.apply(msg); err != nil {
			s.reject(err)
		}
	}
}

// apply runs one message against the group's coordinator.
func (s *Session) apply(msg *protocol.Message) error {
	s.group.mu.Lock()
	defer s.group.mu.Unlock()

	if msg.Type == protocol.TypeRegister {
		return s.register(msg.Grid, *msg.Count)
	}

	g, ok := s.grids[msg.Grid]
	if !ok {
		return errors.New("E063").WithDetail(fmt.Sprintf("%q", msg.Grid))
	}

	switch msg.Type {
	case protocol.TypeUnregister:
		g.unregister()
		delete(s.grids, msg.Grid)
		s.logger.Debug("grid unregistered", "grid", msg.Grid)
	case protocol.TypeScrollStart:
		g.scrolling.Set(true)
	case protocol.TypeScrollEnd:
		g.scrolling.Set(false)
	case protocol.TypePosition:
		g.position.Set(scrollsync.Position{Index: *msg.Index, Offset: *msg.Offset})
	case protocol.TypeCount:
		g.count.Set(*msg.Count)
	}
	return nil
}

func (s *Session) register(id string, count int) error {
	if _, dup := s.grids[id]; dup {
		return errors.New("E065").WithDetail(fmt.Sprintf("%q", id))
	}
	if len(s.grids) >= s.config.MaxGridsPerConn {
		return errors.New("E066").WithDetail(fmt.Sprintf("limit is %d", s.config.MaxGridsPerConn))
	}

	g := newRemoteGrid(s, id, count)
	s.grids[id] = g
	g.unregister = s.group.coord.Register(g)
	s.logger.Debug("grid registered", "grid", id, "count", count)
	return nil
}

// reject reports a bad message to the client without closing the session.
func (s *Session) reject(err error) {
	code := errors.CodeOf(err)
	s.stats.protocolErrors.WithLabelValues(code).Inc()
	s.logger.Debug("message rejected", "code", code, "error", err)
	_ = s.send(protocol.Error(err, false))
}

// send writes m to the client. A failed write closes the session.
func (s *Session) send(m *protocol.Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return errSessionClosed
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(m); err != nil {
		s.stats.writeFailures.Inc()
		s.logger.Warn("write failed, closing session", "type", m.Type, "error", err)
		s.closeLocked()
		return err
	}
	s.stats.messages.WithLabelValues("out", string(m.Type)).Inc()
	return nil
}

func (s *Session) isClosed() bool {
	return s.closed.Load()
}

// Close sends a close frame with reason and closes the connection. The
// read loop then tears the session down.
func (s *Session) Close(code int, reason string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return
	}
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(s.config.WriteTimeout))
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.closed.Swap(true) {
		return
	}
	_ = s.conn.Close()
}

// teardown unregisters every grid. Later ScrollTo calls on them are no-ops.
func (s *Session) teardown() {
	s.writeMu.Lock()
	s.closeLocked()
	s.writeMu.Unlock()

	s.group.mu.Lock()
	for id, g := range s.grids {
		g.unregister()
		delete(s.grids, id)
	}
	s.group.mu.Unlock()
}
