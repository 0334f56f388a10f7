package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationKind is a closed set of notification categories. Routing on
// the socket side switches on it, so new kinds must be added here first.
type NotificationKind string

const (
	NotificationAccount  NotificationKind = "account"
	NotificationActivity NotificationKind = "activity"
	NotificationEnquiry  NotificationKind = "enquiry"
	NotificationProperty NotificationKind = "property"
)

func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationAccount, NotificationActivity, NotificationEnquiry, NotificationProperty:
		return true
	}
	return false
}

// Notification is one entry in a user's notification log. The log lives on
// the owning user record; IDs are unique within that log only.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	// ExpiresAt nil means the notification never auto-expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewNotification builds an unread notification. ttlSeconds nil disables
// expiry; a zero TTL expires the notification at the next log access.
func NewNotification(kind NotificationKind, message string, now time.Time, ttlSeconds *int64) (Notification, error) {
	if !kind.Valid() {
		return Notification{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	n := Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
	}
	if ttlSeconds != nil {
		exp := now.Add(time.Duration(*ttlSeconds) * time.Second)
		n.ExpiresAt = &exp
	}
	return n, nil
}

// Expired reports whether the notification's TTL has passed.
func (n Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}
