package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrSessionUnknown  = errors.New("no payment for provider session")
)

const paymentColumns = `
	id,
	booking_id,
	customer_id,
	amount,
	method,
	status,
	to_char(payment_date, 'YYYY-MM-DD') AS payment_date,
	provider_session_id,
	link_url,
	link_email_sent_to,
	link_email_sent_at,
	notes,
	created_at,
	updated_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments
			(booking_id, customer_id, amount, method, status, payment_date,
			 provider_session_id, link_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + paymentColumns

	var created Payment
	err := r.db.GetContext(ctx, &created, query,
		p.BookingID, p.CustomerID, p.Amount, p.Method, p.Status, p.PaymentDate,
		p.ProviderSessionID, p.LinkURL, p.Notes)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p Payment
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context, page, limit int, filter ListFilter) ([]Payment, int, error) {
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

	if filter.BookingID != 0 {
		addClause("booking_id = $%d", filter.BookingID)
	}
	if filter.CustomerID != 0 {
		addClause("customer_id = $%d", filter.CustomerID)
	}
	if filter.Status != "" {
		addClause("status = $%d", filter.Status)
	}

	countQuery := `SELECT COUNT(*) FROM payments ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	listQuery := fmt.Sprintf(`
		SELECT `+paymentColumns+`
		FROM payments %s
		ORDER BY payment_date DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *repository) MarkLinkEmailed(ctx context.Context, id int, to string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET link_email_sent_to = $1, link_email_sent_at = NOW(), updated_at = NOW()
		WHERE id = $2`,
		to, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *repository) ApplyWebhookStatus(ctx context.Context, sessionID, status string) (*Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE provider_session_id = $2
		RETURNING ` + paymentColumns

	var p Payment
	if err := tx.GetContext(ctx, &p, query, status, sessionID); err != nil {
		return nil, ErrSessionUnknown
	}

	// paid and refunded mirror onto the booking so its payment_status
	// never disagrees with the payment record. Failures leave the booking
	// pending so a new link can be issued.
	if p.BookingID != nil && (status == StatusPaid || status == StatusRefunded) {
		_, err := tx.ExecContext(ctx, `
			UPDATE bookings
			SET payment_status = $1, updated_at = NOW()
			WHERE id = $2`,
			status, *p.BookingID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
