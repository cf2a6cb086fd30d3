package dashboard

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"plumbdesk/internal/booking"
)

// Stats is the admin landing page summary.
type Stats struct {
	BookingsToday    int             `json:"bookings_today"`
	BookingsThisWeek int             `json:"bookings_this_week"`
	PendingPayments  int             `json:"pending_payments"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
	RecentBookings   []booking.Booking `json:"recent_bookings"`
}

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recentBookingColumns = `
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

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{RecentBookings: []booking.Booking{}}

	err := r.db.GetContext(ctx, &stats.BookingsToday,
		`SELECT COUNT(*) FROM bookings WHERE date = CURRENT_DATE AND status <> 'cancelled'`)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.BookingsThisWeek, `
		SELECT COUNT(*) FROM bookings
		WHERE date >= date_trunc('week', CURRENT_DATE)
		  AND date < date_trunc('week', CURRENT_DATE) + INTERVAL '7 days'
		  AND status <> 'cancelled'`)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.PendingPayments,
		`SELECT COUNT(*) FROM payments WHERE status = 'pending'`)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &stats.RevenueThisMonth, `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE status = 'paid'
		  AND payment_date >= date_trunc('month', CURRENT_DATE)`)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &stats.RecentBookings, `
		SELECT `+recentBookingColumns+`
		FROM bookings
		ORDER BY created_at DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
