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

// PropertyInput carries the caller-supplied listing fields.
type PropertyInput struct {
	Title       string
	Description string
	Address     string
	City        string
	Price       int64
	Bedrooms    int
	Bathrooms   int
	AreaSqft    int
}

// PropertyUsecase is a producer: every mutation writes the domain entity,
// appends the owner's activity (and notification where relevant), persists
// the owner record, and only then dispatches to live sessions.
type PropertyUsecase struct {
	props         repository.PropertyRepository
	users         repository.UserRepository
	notifications *NotificationUsecase
	activities    *ActivityUsecase
	dispatcher    *dispatch.Dispatcher
	log           *zap.Logger
}

func NewPropertyUsecase(
	props repository.PropertyRepository,
	users repository.UserRepository,
	notifications *NotificationUsecase,
	activities *ActivityUsecase,
	dispatcher *dispatch.Dispatcher,
	log *zap.Logger,
) *PropertyUsecase {
	return &PropertyUsecase{
		props:         props,
		users:         users,
		notifications: notifications,
		activities:    activities,
		dispatcher:    dispatcher,
		log:           log,
	}
}

func (uc *PropertyUsecase) Create(ctx context.Context, ownerID string, in PropertyInput) (*domain.Property, error) {
	if in.Title == "" || in.Address == "" {
		return nil, xerrors.ErrInvalidRequest
	}

	owner, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	pr := &domain.Property{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		Price:       in.Price,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		AreaSqft:    in.AreaSqft,
		Status:      domain.PropertyListed,
	}
	if err := uc.props.Create(ctx, pr); err != nil {
		return nil, err
	}

	if _, err := uc.activities.Record(owner, domain.ActionPropertyCreate,
		map[string]interface{}{"Title": pr.Title, "City": pr.City},
		Correlation{PropertyID: pr.ID}); err != nil {
		return nil, err
	}
	n, err := uc.notifications.LogNotification(owner, domain.NotificationProperty,
		fmt.Sprintf("Your property %q is now listed", pr.Title), nil)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, owner); err != nil {
		return nil, err
	}

	uc.dispatcher.SendTargeted(dispatch.CategoryProperty, n, ownerID)
	// New listings are public: every connected session hears about them,
	// anonymous ones included.
	uc.dispatcher.SendBroadcast(dispatch.CategoryProperty, pr)
	return pr, nil
}

func (uc *PropertyUsecase) Update(ctx context.Context, ownerID, propertyID string, in PropertyInput) (*domain.Property, error) {
	pr, err := uc.props.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if pr.OwnerID != ownerID {
		return nil, xerrors.ErrForbidden
	}

	if in.Title != "" {
		pr.Title = in.Title
	}
	if in.Description != "" {
		pr.Description = in.Description
	}
	if in.Address != "" {
		pr.Address = in.Address
	}
	if in.City != "" {
		pr.City = in.City
	}
	if in.Price > 0 {
		pr.Price = in.Price
	}
	if in.Bedrooms > 0 {
		pr.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms > 0 {
		pr.Bathrooms = in.Bathrooms
	}
	if in.AreaSqft > 0 {
		pr.AreaSqft = in.AreaSqft
	}

	if err := uc.props.Update(ctx, pr); err != nil {
		return nil, err
	}

	owner, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.activities.Record(owner, domain.ActionPropertyUpdate,
		map[string]interface{}{"Title": pr.Title},
		Correlation{PropertyID: pr.ID}); err != nil {
		return nil, err
	}
	if err := uc.users.Update(ctx, owner); err != nil {
		return nil, err
	}
	return pr, nil
}

func (uc *PropertyUsecase) Delete(ctx context.Context, ownerID, propertyID string) error {
	pr, err := uc.props.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if pr.OwnerID != ownerID {
		return xerrors.ErrForbidden
	}

	if err := uc.props.Delete(ctx, propertyID); err != nil {
		return err
	}

	owner, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if _, err := uc.activities.Record(owner, domain.ActionPropertyDelete,
		map[string]interface{}{"Title": pr.Title},
		Correlation{PropertyID: pr.ID}); err != nil {
		return err
	}
	return uc.users.Update(ctx, owner)
}

func (uc *PropertyUsecase) Get(ctx context.Context, propertyID string) (*domain.Property, error) {
	return uc.props.GetByID(ctx, propertyID)
}

func (uc *PropertyUsecase) List(ctx context.Context, limit, offset int) ([]*domain.Property, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.props.List(ctx, limit, offset)
}

func (uc *PropertyUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error) {
	return uc.props.ListByOwner(ctx, ownerID)
}
