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

type PropertyRepository interface {
	Create(ctx context.Context, pr *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error)
	Update(ctx context.Context, pr *domain.Property) error
	Delete(ctx context.Context, id string) error
}

type pgPropertyRepo struct {
	db *pgxpool.Pool
}

func NewPropertyRepository(db *pgxpool.Pool) PropertyRepository {
	return &pgPropertyRepo{db: db}
}

const propertyColumns = `
	id, owner_id, title, description, address, city, price,
	bedrooms, bathrooms, area_sqft, status, created_at, updated_at
`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var pr domain.Property
	err := row.Scan(
		&pr.ID, &pr.OwnerID, &pr.Title, &pr.Description, &pr.Address, &pr.City,
		&pr.Price, &pr.Bedrooms, &pr.Bathrooms, &pr.AreaSqft, &pr.Status,
		&pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, err
	}
	return &pr, nil
}

func (p *pgPropertyRepo) Create(ctx context.Context, pr *domain.Property) error {
	query := `
		INSERT INTO properties (
			id, owner_id, title, description, address, city, price,
			bedrooms, bathrooms, area_sqft, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := p.db.QueryRow(ctx, query,
		pr.ID, pr.OwnerID, pr.Title, pr.Description, pr.Address, pr.City,
		pr.Price, pr.Bedrooms, pr.Bathrooms, pr.AreaSqft, pr.Status,
	).Scan(&pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (p *pgPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(p.db.QueryRow(ctx, query, id))
}

func (p *pgPropertyRepo) List(ctx context.Context, limit, offset int) ([]*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := p.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (p *pgPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := p.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list properties by owner: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

func collectProperties(rows pgx.Rows) ([]*domain.Property, error) {
	var out []*domain.Property
	for rows.Next() {
		pr, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (p *pgPropertyRepo) Update(ctx context.Context, pr *domain.Property) error {
	query := `
		UPDATE properties
		SET title = $2, description = $3, address = $4, city = $5,
		    price = $6, bedrooms = $7, bathrooms = $8, area_sqft = $9,
		    status = $10, updated_at = NOW()
		WHERE id = $1
	`
	ct, err := p.db.Exec(ctx, query,
		pr.ID, pr.Title, pr.Description, pr.Address, pr.City,
		pr.Price, pr.Bedrooms, pr.Bathrooms, pr.AreaSqft, pr.Status,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (p *pgPropertyRepo) Delete(ctx context.Context, id string) error {
	ct, err := p.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
