package ws

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeConn struct {
	mu     sync.Mutex
	wrote  []interface{}
	closed int
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wrote = append(c.wrote, v)
	return nil
}

func (c *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestRegistry_RegisterAndSessionsFor(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	s1 := NewSession(&fakeConn{})
	s2 := NewSession(&fakeConn{})
	reg.Register("u1", s1)
	reg.Register("u1", s2)

	sessions := reg.SessionsFor("u1")
	if len(sessions) != 2 {
		t.Fatalf("SessionsFor returned %d sessions, want 2", len(sessions))
	}
}

func TestRegistry_SessionsFor_UnknownUserIsEmpty(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	sessions := reg.SessionsFor("nobody")
	if len(sessions) != 0 {
		t.Errorf("SessionsFor returned %d sessions for unknown user, want 0", len(sessions))
	}
}

func TestRegistry_Unregister_RemovesEmptyEntry(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	s := NewSession(&fakeConn{})
	reg.Register("u1", s)
	reg.Unregister(s)

	if got := reg.SessionsFor("u1"); len(got) != 0 {
		t.Errorf("SessionsFor returned %d sessions after unregister, want 0", len(got))
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d after unregister, want 0", reg.Len())
	}
}

func TestRegistry_Unregister_Idempotent(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	conn := &fakeConn{}
	s := NewSession(conn)
	reg.Register("u1", s)

	reg.Unregister(s)
	reg.Unregister(s)

	if conn.closeCount() != 1 {
		t.Errorf("conn closed %d times, want 1", conn.closeCount())
	}
}

func TestRegistry_Unregister_OtherSessionSurvives(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	s1 := NewSession(&fakeConn{})
	s2 := NewSession(&fakeConn{})
	reg.Register("u1", s1)
	reg.Register("u1", s2)

	reg.Unregister(s1)

	sessions := reg.SessionsFor("u1")
	if len(sessions) != 1 {
		t.Fatalf("SessionsFor returned %d sessions, want 1", len(sessions))
	}
	if sessions[0] != s2 {
		t.Error("surviving session is not the one left registered")
	}
}

func TestRegistry_Attach_AnonymousNotDiscoverable(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	s := NewSession(&fakeConn{})
	reg.Attach(s)

	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
	if got := reg.SessionsFor(""); len(got) != 0 {
		t.Errorf("anonymous session discoverable via SessionsFor, got %d", len(got))
	}
	if got := reg.Snapshot(); len(got) != 1 {
		t.Errorf("Snapshot returned %d sessions, want 1", len(got))
	}
}

func TestRegistry_SessionsFor_ReturnsSnapshot(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	s := NewSession(&fakeConn{})
	reg.Register("u1", s)

	snapshot := reg.SessionsFor("u1")
	reg.Unregister(s)

	// The caller's copy must be unaffected by later registry mutation.
	if len(snapshot) != 1 {
		t.Errorf("snapshot length changed to %d after unregister, want 1", len(snapshot))
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("u%d", i%5)
			s := NewSession(&fakeConn{})
			reg.Register(userID, s)
			reg.SessionsFor(userID)
			reg.Snapshot()
			reg.Unregister(s)
			reg.Unregister(s)
		}(i)
	}
	wg.Wait()

	if reg.Len() != 0 {
		t.Errorf("Len = %d after all sessions unregistered, want 0", reg.Len())
	}
}
