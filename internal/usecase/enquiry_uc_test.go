package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/dispatch"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/ws"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type memEnquiryRepo struct {
	mu        sync.Mutex
	enquiries map[string]domain.Enquiry
}

func newMemEnquiryRepo() *memEnquiryRepo {
	return &memEnquiryRepo{enquiries: make(map[string]domain.Enquiry)}
}

func (m *memEnquiryRepo) Create(_ context.Context, e *domain.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enquiries[e.ID] = *e
	return nil
}

func (m *memEnquiryRepo) GetByID(_ context.Context, id string) (*domain.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.enquiries[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := e
	return &out, nil
}

func (m *memEnquiryRepo) ListForUser(_ context.Context, userID string) ([]*domain.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Enquiry
	for _, e := range m.enquiries {
		if e.VisibleTo(userID) {
			copied := e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memEnquiryRepo) UpdateVisibility(_ context.Context, e *domain.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enquiries[e.ID]; !ok {
		return xerrors.ErrNotFound
	}
	m.enquiries[e.ID] = *e
	return nil
}

func (m *memEnquiryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.enquiries[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(m.enquiries, id)
	return nil
}

type memPropertyRepo struct {
	mu    sync.Mutex
	props map[string]domain.Property
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{props: make(map[string]domain.Property)}
}

func (m *memPropertyRepo) Create(_ context.Context, pr *domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[pr.ID] = *pr
	return nil
}

func (m *memPropertyRepo) GetByID(_ context.Context, id string) (*domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr, ok := m.props[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := pr
	return &out, nil
}

func (m *memPropertyRepo) List(_ context.Context, _, _ int) ([]*domain.Property, error) {
	return nil, nil
}

func (m *memPropertyRepo) ListByOwner(_ context.Context, _ string) ([]*domain.Property, error) {
	return nil, nil
}

func (m *memPropertyRepo) Update(_ context.Context, pr *domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.props[pr.ID]; !ok {
		return xerrors.ErrNotFound
	}
	m.props[pr.ID] = *pr
	return nil
}

func (m *memPropertyRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.props, id)
	return nil
}

func newEnquiryFixture(t *testing.T) (*EnquiryUsecase, *memUserRepo, *memEnquiryRepo, *memPropertyRepo) {
	t.Helper()
	users := newMemUserRepo()
	enquiries := newMemEnquiryRepo()
	props := newMemPropertyRepo()
	log := zap.NewNop()
	dispatcher := dispatch.NewDispatcher(ws.NewRegistry(log), log)
	notifications := NewNotificationUsecase(users, log)
	activities := NewActivityUsecase(users)
	uc := NewEnquiryUsecase(enquiries, props, users, notifications, activities, dispatcher, log)
	return uc, users, enquiries, props
}

func TestEnquiryCreate_NotifiesOwnerAndRecordsSender(t *testing.T) {
	uc, users, _, props := newEnquiryFixture(t)
	ctx := context.Background()

	seedUser(t, users, "buyer")
	seedUser(t, users, "owner")
	_ = props.Create(ctx, &domain.Property{ID: "p1", OwnerID: "owner", Title: "Loft"})

	e, err := uc.Create(ctx, "buyer", "p1", "Is this still available?")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !e.FromVisible || !e.ToVisible {
		t.Error("new enquiry must be visible to both participants")
	}

	owner, _ := users.GetByID(ctx, "owner")
	if len(owner.Notifications) != 1 {
		t.Fatalf("owner has %d notifications, want 1", len(owner.Notifications))
	}
	n := owner.Notifications[0]
	if n.Kind != domain.NotificationEnquiry {
		t.Errorf("notification kind = %s, want enquiry", n.Kind)
	}
	if n.ExpiresAt == nil {
		t.Error("enquiry notification must carry a TTL")
	}

	buyer, _ := users.GetByID(ctx, "buyer")
	if len(buyer.Activities) != 1 || buyer.Activities[0].Action != domain.ActionEnquiryCreate {
		t.Errorf("buyer activities = %+v, want one enquiry.create", buyer.Activities)
	}
}

func TestEnquiryCreate_RejectsOwnProperty(t *testing.T) {
	uc, users, _, props := newEnquiryFixture(t)
	ctx := context.Background()

	seedUser(t, users, "owner")
	_ = props.Create(ctx, &domain.Property{ID: "p1", OwnerID: "owner", Title: "Loft"})

	if _, err := uc.Create(ctx, "owner", "p1", "hello me"); !errors.Is(err, xerrors.ErrInvalidRequest) {
		t.Errorf("Create err = %v, want ErrInvalidRequest", err)
	}
}

func TestEnquiryDelete_OneSideReleaseKeepsRow(t *testing.T) {
	uc, users, enquiries, props := newEnquiryFixture(t)
	ctx := context.Background()

	seedUser(t, users, "buyer")
	seedUser(t, users, "owner")
	_ = props.Create(ctx, &domain.Property{ID: "p1", OwnerID: "owner", Title: "Loft"})

	e, err := uc.Create(ctx, "buyer", "p1", "still there?")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := uc.Delete(ctx, "buyer", e.ID); err != nil {
		t.Fatalf("buyer Delete: %v", err)
	}

	stored, err := enquiries.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatal("row deleted after one-sided release")
	}
	if stored.FromVisible {
		t.Error("buyer flag still set after release")
	}
	if !stored.ToVisible {
		t.Error("owner flag cleared by buyer's release")
	}

	// Owner still sees it; buyer no longer does.
	ownerList, _ := uc.ListForUser(ctx, "owner")
	if len(ownerList) != 1 {
		t.Errorf("owner sees %d enquiries, want 1", len(ownerList))
	}
	buyerList, _ := uc.ListForUser(ctx, "buyer")
	if len(buyerList) != 0 {
		t.Errorf("buyer sees %d enquiries, want 0", len(buyerList))
	}
}

func TestEnquiryDelete_BothSidesReleaseHardDeletes(t *testing.T) {
	uc, users, enquiries, props := newEnquiryFixture(t)
	ctx := context.Background()

	seedUser(t, users, "buyer")
	seedUser(t, users, "owner")
	_ = props.Create(ctx, &domain.Property{ID: "p1", OwnerID: "owner", Title: "Loft"})

	e, err := uc.Create(ctx, "buyer", "p1", "still there?")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := uc.Delete(ctx, "buyer", e.ID); err != nil {
		t.Fatalf("buyer Delete: %v", err)
	}
	if err := uc.Delete(ctx, "owner", e.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}

	if _, err := enquiries.GetByID(ctx, e.ID); !errors.Is(err, xerrors.ErrNotFound) {
		t.Error("row survived after both sides released")
	}
}

func TestEnquiryDelete_ReleasedSideSeesNotFound(t *testing.T) {
	uc, users, _, props := newEnquiryFixture(t)
	ctx := context.Background()

	seedUser(t, users, "buyer")
	seedUser(t, users, "owner")
	_ = props.Create(ctx, &domain.Property{ID: "p1", OwnerID: "owner", Title: "Loft"})

	e, err := uc.Create(ctx, "buyer", "p1", "still there?")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := uc.Delete(ctx, "buyer", e.ID); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := uc.Delete(ctx, "buyer", e.ID); !errors.Is(err, xerrors.ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
}
