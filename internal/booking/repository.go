package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotTaken is returned when the partial unique index on
	// (date, slot) for active bookings rejects an insert. The index is
	// what actually closes the check-then-insert race; the service-level
	// pre-check only exists to produce a friendlier message.
	ErrSlotTaken = errors.New("slot already booked")
)

const uniqueViolation = "23505"

const bookingColumns = `
	id,
	reference,
	customer_id,
	customer_name,
	customer_email,
	customer_phone,
	service,
	to_char(date, 'YYYY-MM-DD') AS date,
	slot,
	status,
	payment_status,
	amount,
	address,
	notes,
	emergency,
	created_at,
	updated_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings
			(reference, customer_id, customer_name, customer_email, customer_phone,
			 service, date, slot, status, payment_status, amount, address, notes, emergency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + bookingColumns

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.Reference, b.CustomerID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.Service, b.Date, b.Slot, b.Status, b.PaymentStatus, b.Amount,
		b.Address, b.Notes, b.Emergency)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) List(ctx context.Context, page, limit int, filter ListFilter) ([]Booking, int, error) {
	where := ""
	args := []interface{}{}

	addClause := func(clause string, arg interface{}) {
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		args = append(args, arg)
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.Date != "" {
		addClause("date = $%d::date", filter.Date)
	}
	if filter.Status != "" {
		addClause("status = $%d", filter.Status)
	}
	if filter.Customer != 0 {
		addClause("customer_id = $%d", filter.Customer)
	}

	countQuery := `SELECT COUNT(*) FROM bookings ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	listQuery := fmt.Sprintf(`
		SELECT `+bookingColumns+`
		FROM bookings %s
		ORDER BY date DESC, slot DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *repository) ActiveOnDate(ctx context.Context, date string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date = $1::date AND status = ANY($2)
		ORDER BY slot
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, date, pq.Array(ActiveStatuses)); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) FindActiveBySlot(ctx context.Context, date, slot string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date = $1::date AND slot = $2 AND status = ANY($3)
		LIMIT 1
	`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, date, slot, pq.Array(ActiveStatuses)); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $1, updated_at = NOW() WHERE id = $2`,
		paymentStatus, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
