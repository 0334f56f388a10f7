package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

// UserRepository persists owner records. The notification and activity logs
// ride on the record as jsonb, so Update writes the domain change and both
// logs in one round-trip.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type pgUserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &pgUserRepo{db: db}
}

func (p *pgUserRepo) Create(ctx context.Context, u *domain.User) error {
	notifJSON, actJSON, err := marshalLogs(u)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, notifications, activities)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = p.db.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Phone, notifJSON, actJSON,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if xerrors.ParsePGErrorCode(err) == "23505" {
			return xerrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (p *pgUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return p.getBy(ctx, "id", id)
}

func (p *pgUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return p.getBy(ctx, "email", email)
}

func (p *pgUserRepo) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, full_name, phone, notifications, activities, created_at, updated_at
		FROM users
		WHERE %s = $1
	`, column)

	var (
		u         domain.User
		notifJSON []byte
		actJSON   []byte
	)
	err := p.db.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone,
		&notifJSON, &actJSON, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}

	if err := json.Unmarshal(notifJSON, &u.Notifications); err != nil {
		return nil, fmt.Errorf("decode notification log: %w", err)
	}
	if err := json.Unmarshal(actJSON, &u.Activities); err != nil {
		return nil, fmt.Errorf("decode activity log: %w", err)
	}
	return &u, nil
}

func (p *pgUserRepo) Update(ctx context.Context, u *domain.User) error {
	notifJSON, actJSON, err := marshalLogs(u)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET email = $2,
		    password_hash = $3,
		    full_name = $4,
		    phone = $5,
		    notifications = $6,
		    activities = $7,
		    updated_at = NOW()
		WHERE id = $1
	`
	ct, err := p.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Phone, notifJSON, actJSON,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	return nil
}

func marshalLogs(u *domain.User) ([]byte, []byte, error) {
	if u.Notifications == nil {
		u.Notifications = []domain.Notification{}
	}
	if u.Activities == nil {
		u.Activities = []domain.Activity{}
	}

	notifJSON, err := json.Marshal(u.Notifications)
	if err != nil {
		return nil, nil, fmt.Errorf("encode notification log: %w", err)
	}
	actJSON, err := json.Marshal(u.Activities)
	if err != nil {
		return nil, nil, fmt.Errorf("encode activity log: %w", err)
	}
	return notifJSON, actJSON, nil
}
