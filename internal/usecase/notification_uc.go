package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/repository"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

// NotificationUsecase owns the notification lifecycle on user records.
// Expiry is lazy: every access path reconciles the log before acting, so
// there is no background sweep and an expired id can never resurface
// through mark-read or delete.
type NotificationUsecase struct {
	users repository.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewNotificationUsecase(users repository.UserRepository, log *zap.Logger) *NotificationUsecase {
	return &NotificationUsecase{
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// LogNotification appends a new unread notification to the in-memory owner
// record. The caller persists the record together with its own domain
// write; nothing is saved here.
func (uc *NotificationUsecase) LogNotification(u *domain.User, kind domain.NotificationKind, message string, ttlSeconds *int64) (*domain.Notification, error) {
	n, err := domain.NewNotification(kind, message, uc.now(), ttlSeconds)
	if err != nil {
		return nil, err
	}
	u.Notifications = append(u.Notifications, n)
	return &u.Notifications[len(u.Notifications)-1], nil
}

// List returns the user's notification log after reconciling expired
// entries. A shortened log is persisted before the result is returned.
func (uc *NotificationUsecase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if removed := u.PruneExpiredNotifications(uc.now()); removed > 0 {
		if err := uc.users.Update(ctx, u); err != nil {
			return nil, err
		}
		uc.log.Debug("expired notifications reconciled",
			zap.String("user_id", userID), zap.Int("removed", removed))
	}
	return u.Notifications, nil
}

// MarkRead flips the given notification ids to read and returns the entries
// that actually changed. Missing or already-read ids are excluded; when
// nothing changes the call fails with ErrNothingToUpdate instead of
// succeeding vacuously. Reconciliation still persists any pruned entries in
// that case.
func (uc *NotificationUsecase) MarkRead(ctx context.Context, userID string, ids []string) ([]domain.Notification, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pruned := u.PruneExpiredNotifications(uc.now())
	updated := u.MarkNotificationsRead(ids)

	if len(updated) == 0 {
		if pruned > 0 {
			if err := uc.users.Update(ctx, u); err != nil {
				return nil, err
			}
		}
		return nil, xerrors.ErrNothingToUpdate
	}

	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the given notification ids, read or unread. Unknown ids
// are silent no-ops; deleting twice never errors.
func (uc *NotificationUsecase) Delete(ctx context.Context, userID string, ids []string) error {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	pruned := u.PruneExpiredNotifications(uc.now())
	removed := u.RemoveNotifications(ids)

	if pruned == 0 && removed == 0 {
		return nil
	}
	return uc.users.Update(ctx, u)
}
