package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Registry is the process-wide map from user ID to live sessions. It is
// constructed once and handed to the transport layer and the dispatcher;
// nothing else holds shared connection state. All sessions, authenticated
// or not, are tracked for broadcast; only authenticated ones are reachable
// by identity lookup.
type Registry struct {
	log *zap.Logger

	mu     sync.RWMutex
	conns  map[*Session]struct{}
	byUser map[string]map[*Session]struct{}
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		log:    log,
		conns:  make(map[*Session]struct{}),
		byUser: make(map[string]map[*Session]struct{}),
	}
}

// Register adds an authenticated session under userID, creating the identity
// entry if absent. Safe for concurrent connects, including multiple devices
// of the same user.
func (r *Registry) Register(userID string, s *Session) {
	s.userID = userID

	r.mu.Lock()
	r.conns[s] = struct{}{}
	set, ok := r.byUser[userID]
	if !ok {
		set = make(map[*Session]struct{})
		r.byUser[userID] = set
	}
	set[s] = struct{}{}
	total := len(set)
	r.mu.Unlock()

	r.log.Info("session registered", zap.String("user_id", userID), zap.Int("sessions", total))
}

// Attach adds a session with no identity. It receives broadcasts but is
// never discoverable via SessionsFor.
func (r *Registry) Attach(s *Session) {
	r.mu.Lock()
	r.conns[s] = struct{}{}
	r.mu.Unlock()

	r.log.Info("anonymous session attached")
}

// Unregister removes the session from the registry and closes it. The
// identity entry is deleted once its set is empty. Idempotent: a second
// call for the same session is a no-op.
func (r *Registry) Unregister(s *Session) {
	r.mu.Lock()
	_, present := r.conns[s]
	delete(r.conns, s)
	if s.userID != "" {
		if set, ok := r.byUser[s.userID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(r.byUser, s.userID)
			}
		}
	}
	r.mu.Unlock()

	s.Close()
	if present {
		r.log.Info("session unregistered", zap.String("user_id", s.userID))
	}
}

// SessionsFor returns a snapshot of the user's live sessions. The returned
// slice is owned by the caller; an unknown user yields an empty slice.
func (r *Registry) SessionsFor(userID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.byUser[userID]
	out := make([]*Session, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// Snapshot returns every live session, authenticated or not.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.conns))
	for s := range r.conns {
		out = append(out, s)
	}
	return out
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Heartbeat pings every session on the given interval and unregisters the
// ones that have not answered within two intervals. Runs until the stop
// channel closes.
func (r *Registry) Heartbeat(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		for _, s := range r.Snapshot() {
			if time.Since(s.LastSeen()) > 2*interval {
				r.Unregister(s)
				continue
			}
			_ = s.Ping(websocket.PingMessage, time.Now().Add(time.Second))
		}
	}
}
