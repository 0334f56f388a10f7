// Package dispatch fans domain events out to live websocket sessions.
// Delivery is best-effort and at-most-once per session per call: a session
// that fails mid-send is dropped, never retried, and never queued. The
// durable record of an event is whatever the producer wrote before calling
// the dispatcher.
package dispatch

import (
	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/ws"
)

// Category labels the payload on the wire so clients can route it.
type Category string

const (
	CategoryAccount  Category = "account"
	CategoryActivity Category = "activity"
	CategoryEnquiry  Category = "enquiry"
	CategoryProperty Category = "property"
)

// Event is the frame pushed to sessions. It is transient; nothing here is
// persisted.
type Event struct {
	Category Category    `json:"category"`
	Payload  interface{} `json:"payload"`
}

type Dispatcher struct {
	reg *ws.Registry
	log *zap.Logger
}

func NewDispatcher(reg *ws.Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, log: log}
}

// SendTargeted pushes the payload to every live session of each target
// user. Users with no sessions are skipped silently; a failed session does
// not abort delivery to the rest of the fan-out.
func (d *Dispatcher) SendTargeted(category Category, payload interface{}, userIDs ...string) {
	event := Event{Category: category, Payload: payload}

	for _, userID := range userIDs {
		for _, s := range d.reg.SessionsFor(userID) {
			d.push(s, event)
		}
	}
}

// SendBroadcast pushes the payload to every connected session regardless of
// identity, anonymous sessions included.
func (d *Dispatcher) SendBroadcast(category Category, payload interface{}) {
	event := Event{Category: category, Payload: payload}

	for _, s := range d.reg.Snapshot() {
		d.push(s, event)
	}
}

func (d *Dispatcher) push(s *ws.Session, event Event) {
	if err := s.WriteJSON(event); err != nil {
		d.log.Warn("dropping session after failed push",
			zap.String("user_id", s.UserID()),
			zap.String("category", string(event.Category)),
			zap.Error(err))
		go d.reg.Unregister(s)
	}
}
