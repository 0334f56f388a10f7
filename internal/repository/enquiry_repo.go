package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/domain"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry) error
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Enquiry, error)
	UpdateVisibility(ctx context.Context, e *domain.Enquiry) error
	Delete(ctx context.Context, id string) error
}

type pgEnquiryRepo struct {
	db *pgxpool.Pool
}

func NewEnquiryRepository(db *pgxpool.Pool) EnquiryRepository {
	return &pgEnquiryRepo{db: db}
}

const enquiryColumns = `
	id, property_id, from_user_id, to_user_id, message,
	from_visible, to_visible, created_at
`

func scanEnquiry(row pgx.Row) (*domain.Enquiry, error) {
	var e domain.Enquiry
	err := row.Scan(
		&e.ID, &e.PropertyID, &e.FromUserID, &e.ToUserID, &e.Message,
		&e.FromVisible, &e.ToVisible, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (p *pgEnquiryRepo) Create(ctx context.Context, e *domain.Enquiry) error {
	query := `
		INSERT INTO enquiries (
			id, property_id, from_user_id, to_user_id, message, from_visible, to_visible
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := p.db.QueryRow(ctx, query,
		e.ID, e.PropertyID, e.FromUserID, e.ToUserID, e.Message, e.FromVisible, e.ToVisible,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

func (p *pgEnquiryRepo) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	query := `SELECT ` + enquiryColumns + ` FROM enquiries WHERE id = $1`
	return scanEnquiry(p.db.QueryRow(ctx, query, id))
}

// ListForUser returns enquiries the user still holds, on either side.
func (p *pgEnquiryRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Enquiry, error) {
	query := `
		SELECT ` + enquiryColumns + `
		FROM enquiries
		WHERE (from_user_id = $1 AND from_visible)
		   OR (to_user_id = $1 AND to_visible)
		ORDER BY created_at DESC
	`
	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	defer rows.Close()

	var out []*domain.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (p *pgEnquiryRepo) UpdateVisibility(ctx context.Context, e *domain.Enquiry) error {
	query := `
		UPDATE enquiries
		SET from_visible = $2, to_visible = $3
		WHERE id = $1
	`
	ct, err := p.db.Exec(ctx, query, e.ID, e.FromVisible, e.ToVisible)
	if err != nil {
		return fmt.Errorf("update enquiry visibility: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (p *pgEnquiryRepo) Delete(ctx context.Context, id string) error {
	ct, err := p.db.Exec(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
