package area

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrAreaNotFound = errors.New("service area not found")
	ErrSlugTaken    = errors.New("slug already in use")
)

const uniqueViolation = "23505"

const areaColumns = `
	id, slug, name, headline, body, postcode_prefixes, active, created_at, updated_at
`

type Repository interface {
	Create(ctx context.Context, req CreateAreaRequest) (*Area, error)
	GetBySlug(ctx context.Context, slug string) (*Area, error)
	List(ctx context.Context, activeOnly bool) ([]Area, error)
	Update(ctx context.Context, id int, req UpdateAreaRequest) (*Area, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateAreaRequest) (*Area, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	query := `
		INSERT INTO service_areas (slug, name, headline, body, postcode_prefixes, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + areaColumns

	var a Area
	err := r.db.GetContext(ctx, &a, query,
		req.Slug, req.Name, req.Headline, req.Body, pq.Array(req.PostcodePrefixes), active)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Area, error) {
	query := `SELECT ` + areaColumns + ` FROM service_areas WHERE slug = $1`

	var a Area
	if err := r.db.GetContext(ctx, &a, query, slug); err != nil {
		return nil, ErrAreaNotFound
	}

	return &a, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Area, error) {
	query := `SELECT ` + areaColumns + ` FROM service_areas`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`

	var areas []Area
	if err := r.db.SelectContext(ctx, &areas, query); err != nil {
		return nil, err
	}

	return areas, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateAreaRequest) (*Area, error) {
	query := `
		UPDATE service_areas
		SET name = COALESCE($1, name),
		    headline = COALESCE($2, headline),
		    body = COALESCE($3, body),
		    postcode_prefixes = COALESCE($4, postcode_prefixes),
		    active = COALESCE($5, active),
		    updated_at = NOW()
		WHERE id = $6
		RETURNING ` + areaColumns

	var prefixes interface{}
	if req.PostcodePrefixes != nil {
		prefixes = pq.Array(req.PostcodePrefixes)
	}

	var a Area
	err := r.db.GetContext(ctx, &a, query,
		req.Name, req.Headline, req.Body, prefixes, req.Active, id)
	if err != nil {
		return nil, ErrAreaNotFound
	}

	return &a, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM service_areas WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAreaNotFound
	}

	return nil
}
