package usecase

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/repository"
)

// descriptionTemplates render activity text once, at append time, from the
// event's field values. A later change to the source entity never rewrites
// an already recorded description.
var descriptionTemplates = map[domain.ActivityAction]string{
	domain.ActionPropertyCreate: "Listed property {{.Title}} in {{.City}}",
	domain.ActionPropertyUpdate: "Updated property {{.Title}}",
	domain.ActionPropertyDelete: "Removed property {{.Title}}",
	domain.ActionEnquiryCreate:  "Enquired about {{.Title}}",
	domain.ActionEnquiryDelete:  "Deleted an enquiry about {{.Title}}",
	domain.ActionUserLogin:      "Signed in from {{.Device}}",
	domain.ActionUserUpdate:     "Updated profile details",
	domain.ActionUserPassword:   "Changed account password",
}

// Correlation carries optional references from an activity entry back to
// the entity that caused it.
type Correlation struct {
	PropertyID string
	EnquiryID  string
}

// ActivityUsecase appends immutable audit entries to user records. Like the
// notification log, entries are written in memory only; the producer
// persists the owner record with its own domain write.
type ActivityUsecase struct {
	users     repository.UserRepository
	templates map[domain.ActivityAction]*template.Template
	now       func() time.Time
}

func NewActivityUsecase(users repository.UserRepository) *ActivityUsecase {
	parsed := make(map[domain.ActivityAction]*template.Template, len(descriptionTemplates))
	for action, text := range descriptionTemplates {
		parsed[action] = template.Must(template.New(string(action)).Parse(text))
	}
	return &ActivityUsecase{
		users:     users,
		templates: parsed,
		now:       time.Now,
	}
}

// Record appends one activity entry and returns it. The description is
// rendered immediately from data.
func (uc *ActivityUsecase) Record(u *domain.User, action domain.ActivityAction, data map[string]interface{}, corr Correlation) (*domain.Activity, error) {
	tmpl, ok := uc.templates[action]
	if !ok {
		return nil, fmt.Errorf("unknown activity action %q", action)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render activity description: %w", err)
	}

	u.Activities = append(u.Activities, domain.Activity{
		Action:      action,
		Description: buf.String(),
		PropertyID:  corr.PropertyID,
		EnquiryID:   corr.EnquiryID,
		CreatedAt:   uc.now(),
	})
	return &u.Activities[len(u.Activities)-1], nil
}

// List returns the user's activity trail. Activities never expire, so no
// reconciliation happens here.
func (uc *ActivityUsecase) List(ctx context.Context, userID string) ([]domain.Activity, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Activities, nil
}
