package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/repository"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/dispatch"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

// enquiryNotificationTTL keeps enquiry notifications around for a week
// before lazy expiry removes them.
const enquiryNotificationTTL int64 = 7 * 24 * 60 * 60

type EnquiryUsecase struct {
	enquiries     repository.EnquiryRepository
	props         repository.PropertyRepository
	users         repository.UserRepository
	notifications *NotificationUsecase
	activities    *ActivityUsecase
	dispatcher    *dispatch.Dispatcher
	log           *zap.Logger
}

func NewEnquiryUsecase(
	enquiries repository.EnquiryRepository,
	props repository.PropertyRepository,
	users repository.UserRepository,
	notifications *NotificationUsecase,
	activities *ActivityUsecase,
	dispatcher *dispatch.Dispatcher,
	log *zap.Logger,
) *EnquiryUsecase {
	return &EnquiryUsecase{
		enquiries:     enquiries,
		props:         props,
		users:         users,
		notifications: notifications,
		activities:    activities,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// Create files an enquiry from a buyer to a property owner. The sender's
// activity and the owner's notification are persisted before the live push
// goes out, so a crash in between loses only the push.
func (uc *EnquiryUsecase) Create(ctx context.Context, fromUserID, propertyID, message string) (*domain.Enquiry, error) {
	if message == "" {
		return nil, xerrors.ErrInvalidRequest
	}

	pr, err := uc.props.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if pr.OwnerID == fromUserID {
		return nil, xerrors.ErrInvalidRequest
	}

	e := &domain.Enquiry{
		ID:          uuid.New().String(),
		PropertyID:  propertyID,
		FromUserID:  fromUserID,
		ToUserID:    pr.OwnerID,
		Message:     message,
		FromVisible: true,
		ToVisible:   true,
	}
	if err := uc.enquiries.Create(ctx, e); err != nil {
		return nil, err
	}

	sender, err := uc.users.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.activities.Record(sender, domain.ActionEnquiryCreate,
		map[string]interface{}{"Title": pr.Title},
		Correlation{PropertyID: pr.ID, EnquiryID: e.ID}); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, sender); err != nil {
		return nil, err
	}

	owner, err := uc.users.GetByID(ctx, pr.OwnerID)
	if err != nil {
		return nil, err
	}
	ttl := enquiryNotificationTTL
	n, err := uc.notifications.LogNotification(owner, domain.NotificationEnquiry,
		fmt.Sprintf("%s enquired about %q", sender.FullName, pr.Title), &ttl)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, owner); err != nil {
		return nil, err
	}

	uc.dispatcher.SendTargeted(dispatch.CategoryEnquiry, n, pr.OwnerID)
	return e, nil
}

// Delete releases the caller's side of the enquiry. The row survives until
// both participants have released it, so the other side keeps its copy.
func (uc *EnquiryUsecase) Delete(ctx context.Context, userID, enquiryID string) error {
	e, err := uc.enquiries.GetByID(ctx, enquiryID)
	if err != nil {
		return err
	}
	if !e.VisibleTo(userID) {
		return xerrors.ErrNotFound
	}

	e.Release(userID)
	if e.Released() {
		if err := uc.enquiries.Delete(ctx, enquiryID); err != nil {
			return err
		}
	} else {
		if err := uc.enquiries.UpdateVisibility(ctx, e); err != nil {
			return err
		}
	}

	pr, err := uc.props.GetByID(ctx, e.PropertyID)
	title := "a property"
	if err == nil {
		title = pr.Title
	}

	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := uc.activities.Record(u, domain.ActionEnquiryDelete,
		map[string]interface{}{"Title": title},
		Correlation{EnquiryID: e.ID}); err != nil {
		return err
	}
	return uc.users.Update(ctx, u)
}

func (uc *EnquiryUsecase) ListForUser(ctx context.Context, userID string) ([]*domain.Enquiry, error) {
	return uc.enquiries.ListForUser(ctx, userID)
}
