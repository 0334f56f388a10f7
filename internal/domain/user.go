package domain

import "time"

// User is the owner record for the notification and activity logs. Both
// logs are embedded here so one persistence round-trip covers the domain
// write and its audit trail.
type User struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"`
	FullName      string         `json:"full_name"`
	Phone         string         `json:"phone,omitempty"`
	Notifications []Notification `json:"notifications"`
	Activities    []Activity     `json:"activities"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// PruneExpiredNotifications drops every expired entry from the notification
// log and reports how many were removed. Callers persist the record when
// the count is non-zero.
func (u *User) PruneExpiredNotifications(now time.Time) int {
	kept := u.Notifications[:0]
	removed := 0
	for _, n := range u.Notifications {
		if n.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	u.Notifications = kept
	return removed
}

// MarkNotificationsRead flips matching unread notifications to read and
// returns the entries that changed. IDs that are missing or already read
// are skipped.
func (u *User) MarkNotificationsRead(ids []string) []Notification {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var updated []Notification
	for i := range u.Notifications {
		if _, ok := want[u.Notifications[i].ID]; !ok {
			continue
		}
		if u.Notifications[i].Read {
			continue
		}
		u.Notifications[i].Read = true
		updated = append(updated, u.Notifications[i])
	}
	return updated
}

// RemoveNotifications deletes matching entries, read or unread, and returns
// how many were removed. Unknown IDs are ignored.
func (u *User) RemoveNotifications(ids []string) int {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	kept := u.Notifications[:0]
	removed := 0
	for _, n := range u.Notifications {
		if _, ok := want[n.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	u.Notifications = kept
	return removed
}
