package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/auth"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/repository"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/dispatch"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type UserUsecase struct {
	users         repository.UserRepository
	notifications *NotificationUsecase
	activities    *ActivityUsecase
	dispatcher    *dispatch.Dispatcher
	tokens        *auth.TokenManager
	log           *zap.Logger
}

func NewUserUsecase(
	users repository.UserRepository,
	notifications *NotificationUsecase,
	activities *ActivityUsecase,
	dispatcher *dispatch.Dispatcher,
	tokens *auth.TokenManager,
	log *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		users:         users,
		notifications: notifications,
		activities:    activities,
		dispatcher:    dispatcher,
		tokens:        tokens,
		log:           log,
	}
}

func (uc *UserUsecase) Register(ctx context.Context, email, password, fullName, phone string) (*domain.User, string, error) {
	if email == "" {
		return nil, "", xerrors.ErrEmailRequired
	}
	if password == "" {
		return nil, "", xerrors.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Phone:        phone,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials, records a login activity on the owner record
// and issues a session token.
func (uc *UserUsecase) Login(ctx context.Context, email, password, device string) (*domain.User, string, error) {
	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, "", xerrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", xerrors.ErrInvalidCredentials
	}

	if device == "" {
		device = "unknown device"
	}
	if _, err := uc.activities.Record(u, domain.ActionUserLogin,
		map[string]interface{}{"Device": device}, Correlation{}); err != nil {
		return nil, "", err
	}
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ChangePassword rotates the credential, then records the activity and an
// account notification on the same owner record in one persistence
// round-trip before fanning the notification out to live sessions.
func (uc *UserUsecase) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return xerrors.ErrInvalidCredentials
	}
	if newPassword == "" {
		return xerrors.ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if _, err := uc.activities.Record(u, domain.ActionUserPassword, nil, Correlation{}); err != nil {
		return err
	}
	n, err := uc.notifications.LogNotification(u, domain.NotificationAccount,
		"Your account password was changed", nil)
	if err != nil {
		return err
	}

	if err := uc.users.Update(ctx, u); err != nil {
		return err
	}

	uc.dispatcher.SendTargeted(dispatch.CategoryAccount, n, u.ID)
	return nil
}

// UpdateProfile changes display fields and records the update.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID, fullName, phone string) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		u.FullName = fullName
	}
	if phone != "" {
		u.Phone = phone
	}

	if _, err := uc.activities.Record(u, domain.ActionUserUpdate, nil, Correlation{}); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
