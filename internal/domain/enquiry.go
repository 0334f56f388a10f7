package domain

import "time"

// Enquiry is a buyer's message about a property. Each side holds it until
// that side releases it; the row is hard-deleted only once both flags are
// cleared, so one participant deleting never removes the other's copy.
type Enquiry struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	Message     string    `json:"message"`
	FromVisible bool      `json:"from_visible"`
	ToVisible   bool      `json:"to_visible"`
	CreatedAt   time.Time `json:"created_at"`
}

// Release clears the calling participant's visibility flag. It reports
// false when userID is neither participant.
func (e *Enquiry) Release(userID string) bool {
	switch userID {
	case e.FromUserID:
		e.FromVisible = false
	case e.ToUserID:
		e.ToVisible = false
	default:
		return false
	}
	return true
}

// Released reports whether both participants have let go of the enquiry.
func (e *Enquiry) Released() bool {
	return !e.FromVisible && !e.ToVisible
}

// VisibleTo reports whether userID still holds this enquiry.
func (e *Enquiry) VisibleTo(userID string) bool {
	return (userID == e.FromUserID && e.FromVisible) ||
		(userID == e.ToUserID && e.ToVisible)
}
