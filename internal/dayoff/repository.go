package dayoff

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPeriodNotFound = errors.New("day-off period not found")

const periodColumns = `
	id,
	to_char(start_date, 'YYYY-MM-DD') AS start_date,
	to_char(end_date, 'YYYY-MM-DD') AS end_date,
	title,
	description,
	banner_message,
	show_banner,
	created_at,
	updated_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreatePeriodRequest) (*Period, error) {
	query := `
		INSERT INTO day_off_periods (start_date, end_date, title, description, banner_message, show_banner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + periodColumns

	var p Period
	err := r.db.GetContext(ctx, &p, query,
		req.StartDate, req.EndDate, req.Title, req.Description, req.BannerMessage, req.ShowBanner)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Period, error) {
	query := `SELECT ` + periodColumns + ` FROM day_off_periods WHERE id = $1`

	var p Period
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Period, error) {
	query := `SELECT ` + periodColumns + ` FROM day_off_periods ORDER BY start_date`

	var periods []Period
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, err
	}

	return periods, nil
}

// GetCovering returns the periods that contain the given date, both
// endpoints inclusive.
func (r *repository) GetCovering(ctx context.Context, date string) ([]Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM day_off_periods
		WHERE start_date <= $1::date AND end_date >= $1::date
		ORDER BY start_date
	`

	var periods []Period
	if err := r.db.SelectContext(ctx, &periods, query, date); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *repository) Update(ctx context.Context, id int, req CreatePeriodRequest) (*Period, error) {
	query := `
		UPDATE day_off_periods
		SET start_date = $1, end_date = $2, title = $3, description = $4,
		    banner_message = $5, show_banner = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + periodColumns

	var p Period
	err := r.db.GetContext(ctx, &p, query,
		req.StartDate, req.EndDate, req.Title, req.Description, req.BannerMessage, req.ShowBanner, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM day_off_periods WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPeriodNotFound
	}

	return nil
}
