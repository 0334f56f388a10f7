package ws

import (
	"sync"
	"sync/atomic"
	"time"
)

// Conn is the slice of *websocket.Conn the registry needs. Tests substitute
// in-process fakes; production always passes a gorilla connection.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Session is one live transport connection, authenticated to at most one
// user. Writes are serialized through the session's own mutex so concurrent
// fan-outs never interleave frames on the wire.
type Session struct {
	conn     Conn
	userID   string
	writeMu  sync.Mutex
	lastSeen atomic.Int64 // unix nano
	closed   sync.Once
}

// NewSession wraps an open connection. The session is not visible to the
// registry until Register or Attach is called.
func NewSession(conn Conn) *Session {
	s := &Session{conn: conn}
	s.Touch()
	return s
}

// UserID returns the authenticated identity, or "" for anonymous sessions.
func (s *Session) UserID() string {
	return s.userID
}

// WriteJSON sends one JSON message on the session.
func (s *Session) WriteJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// Ping sends a control ping with the given deadline.
func (s *Session) Ping(messageType int, deadline time.Time) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteControl(messageType, nil, deadline)
}

// Touch records liveness; the socket handler calls it from the pong handler.
func (s *Session) Touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen returns the time of the last observed pong.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Close shuts the underlying connection at most once.
func (s *Session) Close() {
	s.closed.Do(func() {
		_ = s.conn.Close()
	})
}
