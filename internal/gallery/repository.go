package gallery

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrImageNotFound = errors.New("gallery image not found")

const imageColumns = `
	id, title, description, url, category, sort_order, published, created_at, updated_at
`

type Repository interface {
	Create(ctx context.Context, req CreateImageRequest) (*Image, error)
	GetByID(ctx context.Context, id int) (*Image, error)
	List(ctx context.Context, category string, publishedOnly bool) ([]Image, error)
	Update(ctx context.Context, id int, req UpdateImageRequest) (*Image, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateImageRequest) (*Image, error) {
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	query := `
		INSERT INTO gallery_images (title, description, url, category, sort_order, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + imageColumns

	var img Image
	err := r.db.GetContext(ctx, &img, query,
		req.Title, req.Description, req.URL, req.Category, req.SortOrder, published)
	if err != nil {
		return nil, err
	}

	return &img, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Image, error) {
	query := `SELECT ` + imageColumns + ` FROM gallery_images WHERE id = $1`

	var img Image
	if err := r.db.GetContext(ctx, &img, query, id); err != nil {
		return nil, err
	}

	return &img, nil
}

func (r *repository) List(ctx context.Context, category string, publishedOnly bool) ([]Image, error) {
	query := `SELECT ` + imageColumns + ` FROM gallery_images`
	args := []interface{}{}

	where := ""
	if publishedOnly {
		where = " WHERE published = TRUE"
	}
	if category != "" {
		if where == "" {
			where = " WHERE category = $1"
		} else {
			where += " AND category = $1"
		}
		args = append(args, category)
	}

	query += where + " ORDER BY sort_order, id"

	var images []Image
	if err := r.db.SelectContext(ctx, &images, query, args...); err != nil {
		return nil, err
	}

	return images, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateImageRequest) (*Image, error) {
	query := `
		UPDATE gallery_images
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    url = COALESCE($3, url),
		    category = COALESCE($4, category),
		    sort_order = COALESCE($5, sort_order),
		    published = COALESCE($6, published),
		    updated_at = NOW()
		WHERE id = $7
		RETURNING ` + imageColumns

	var img Image
	err := r.db.GetContext(ctx, &img, query,
		req.Title, req.Description, req.URL, req.Category, req.SortOrder, req.Published, id)
	if err != nil {
		return nil, ErrImageNotFound
	}

	return &img, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrImageNotFound
	}

	return nil
}
