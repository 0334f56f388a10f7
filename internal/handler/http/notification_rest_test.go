package httphandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/middleware"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/usecase"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *u
	copied.Notifications = append([]domain.Notification(nil), u.Notifications...)
	return &copied, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, xerrors.ErrNotFound
}

func (s *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return xerrors.ErrNotFound
	}
	copied := *u
	copied.Notifications = append([]domain.Notification(nil), u.Notifications...)
	s.users[u.ID] = &copied
	return nil
}

func newNotificationFixture(t *testing.T) (*NotificationHandler, *stubUserRepo) {
	t.Helper()
	repo := &stubUserRepo{users: make(map[string]*domain.User)}
	repo.users["u1"] = &domain.User{
		ID: "u1",
		Notifications: []domain.Notification{
			{ID: "n1", Kind: domain.NotificationAccount, Message: "password changed", CreatedAt: time.Now()},
			{ID: "n2", Kind: domain.NotificationEnquiry, Message: "new enquiry", Read: true, CreatedAt: time.Now()},
		},
	}
	uc := usecase.NewNotificationUsecase(repo, zap.NewNop())
	return NewNotificationHandler(uc), repo
}

func doRequest(h http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/user/notifications", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextUserID, "u1"))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestMarkRead_AcceptsSingleIDString(t *testing.T) {
	h, repo := newNotificationFixture(t)

	rec := doRequest(h.MarkRead, http.MethodPatch, `{"id": "n1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	u, _ := repo.GetByID(context.Background(), "u1")
	if !u.Notifications[0].Read {
		t.Error("n1 not marked read")
	}
}

func TestMarkRead_AcceptsIDArray(t *testing.T) {
	h, _ := newNotificationFixture(t)

	rec := doRequest(h.MarkRead, http.MethodPatch, `{"id": ["n1", "n2"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []domain.Notification `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	// n2 was already read, so only n1 counts as updated.
	if len(envelope.Data) != 1 || envelope.Data[0].ID != "n1" {
		t.Errorf("updated = %+v, want just n1", envelope.Data)
	}
}

func TestMarkRead_NothingToUpdateIs400(t *testing.T) {
	h, _ := newNotificationFixture(t)

	rec := doRequest(h.MarkRead, http.MethodPatch, `{"id": "n2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestMarkRead_RejectsEmptyBody(t *testing.T) {
	h, _ := newNotificationFixture(t)

	for _, body := range []string{``, `{}`, `{"id": []}`} {
		rec := doRequest(h.MarkRead, http.MethodPatch, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestDelete_RemovesAndReturns204(t *testing.T) {
	h, repo := newNotificationFixture(t)

	rec := doRequest(h.Delete, http.MethodDelete, `{"id": ["n1", "n2"]}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}

	u, _ := repo.GetByID(context.Background(), "u1")
	if len(u.Notifications) != 0 {
		t.Errorf("%d notifications left, want 0", len(u.Notifications))
	}
}

func TestList_ReturnsCurrentLog(t *testing.T) {
	h, _ := newNotificationFixture(t)

	rec := doRequest(h.List, http.MethodGet, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []domain.Notification `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Errorf("listed %d notifications, want 2", len(envelope.Data))
	}
}
