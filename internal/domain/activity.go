package domain

import "time"

// ActivityAction identifies the domain event an activity entry records.
type ActivityAction string

const (
	ActionPropertyCreate ActivityAction = "property.create"
	ActionPropertyUpdate ActivityAction = "property.update"
	ActionPropertyDelete ActivityAction = "property.delete"
	ActionEnquiryCreate  ActivityAction = "enquiry.create"
	ActionEnquiryDelete  ActivityAction = "enquiry.delete"
	ActionUserLogin      ActivityAction = "user.login"
	ActionUserUpdate     ActivityAction = "user.update"
	ActionUserPassword   ActivityAction = "user.password"
)

func (a ActivityAction) Valid() bool {
	switch a {
	case ActionPropertyCreate, ActionPropertyUpdate, ActionPropertyDelete,
		ActionEnquiryCreate, ActionEnquiryDelete,
		ActionUserLogin, ActionUserUpdate, ActionUserPassword:
		return true
	}
	return false
}

// Activity is an append-only audit entry on a user record. The description
// is rendered once when the entry is created; later changes to the source
// entity never alter it.
type Activity struct {
	Action      ActivityAction `json:"action"`
	Description string         `json:"description"`
	PropertyID  string         `json:"property_id,omitempty"`
	EnquiryID   string         `json:"enquiry_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
