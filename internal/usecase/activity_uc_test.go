package usecase

import (
	"context"
	"testing"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
)

func TestRecord_RendersDescriptionOnce(t *testing.T) {
	uc := NewActivityUsecase(newMemUserRepo())
	u := &domain.User{ID: "u1"}

	data := map[string]interface{}{"Title": "Seaview Flat", "City": "Brighton"}
	a, err := uc.Record(u, domain.ActionPropertyCreate, data, Correlation{PropertyID: "p1"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if a.Description != "Listed property Seaview Flat in Brighton" {
		t.Errorf("description = %q", a.Description)
	}

	// Mutating the source data later must not rewrite the entry.
	data["Title"] = "Renamed Flat"
	if u.Activities[0].Description != "Listed property Seaview Flat in Brighton" {
		t.Errorf("description changed after source mutation: %q", u.Activities[0].Description)
	}
}

func TestRecord_KeepsCorrelationIDs(t *testing.T) {
	uc := NewActivityUsecase(newMemUserRepo())
	u := &domain.User{ID: "u1"}

	a, err := uc.Record(u, domain.ActionEnquiryCreate,
		map[string]interface{}{"Title": "Loft"}, Correlation{PropertyID: "p1", EnquiryID: "e1"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if a.PropertyID != "p1" || a.EnquiryID != "e1" {
		t.Errorf("correlation = (%q, %q), want (p1, e1)", a.PropertyID, a.EnquiryID)
	}
}

func TestRecord_RejectsUnknownAction(t *testing.T) {
	uc := NewActivityUsecase(newMemUserRepo())
	u := &domain.User{ID: "u1"}

	if _, err := uc.Record(u, domain.ActivityAction("bogus.verb"), nil, Correlation{}); err == nil {
		t.Error("Record accepted an unknown action")
	}
	if len(u.Activities) != 0 {
		t.Errorf("trail has %d entries after rejected append, want 0", len(u.Activities))
	}
}

func TestRecord_AppendsInOrder(t *testing.T) {
	uc := NewActivityUsecase(newMemUserRepo())
	u := &domain.User{ID: "u1"}

	_, _ = uc.Record(u, domain.ActionUserLogin, map[string]interface{}{"Device": "laptop"}, Correlation{})
	_, _ = uc.Record(u, domain.ActionUserPassword, nil, Correlation{})

	if len(u.Activities) != 2 {
		t.Fatalf("trail has %d entries, want 2", len(u.Activities))
	}
	if u.Activities[0].Action != domain.ActionUserLogin || u.Activities[1].Action != domain.ActionUserPassword {
		t.Errorf("trail order = [%s, %s]", u.Activities[0].Action, u.Activities[1].Action)
	}
}

func TestActivityList_ReturnsPersistedTrail(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewActivityUsecase(repo)
	ctx := context.Background()

	u := seedUser(t, repo, "u1")
	_, _ = uc.Record(u, domain.ActionUserUpdate, nil, Correlation{})
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("persist owner: %v", err)
	}

	got, err := uc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d entries, want 1", len(got))
	}
	if got[0].Action != domain.ActionUserUpdate {
		t.Errorf("action = %s, want user.update", got[0].Action)
	}
}
