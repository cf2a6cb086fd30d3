package admin

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrAdminNotFound = errors.New("admin not found")

const adminColumns = `id, name, email, password_hash, created_at, updated_at`

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id int) (*Admin, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(email) = LOWER($1)`

	var a Admin
	if err := r.db.GetContext(ctx, &a, query, email); err != nil {
		return nil, ErrAdminNotFound
	}

	return &a, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	var a Admin
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, ErrAdminNotFound
	}

	return &a, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admins SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
