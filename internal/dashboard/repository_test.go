package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	defer sqlxDB.Close()

	repo := NewRepository(sqlxDB)

	count := func(n int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE date = CURRENT_DATE").
		WillReturnRows(count(3))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE date >= date_trunc").
		WillReturnRows(count(11))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM payments WHERE status = 'pending'").
		WillReturnRows(count(2))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1540.50"))

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM bookings ORDER BY created_at DESC LIMIT 5").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reference", "customer_id", "customer_name", "customer_email", "customer_phone",
			"service", "date", "slot", "status", "payment_status", "amount",
			"address", "notes", "emergency", "created_at", "updated_at",
		}).AddRow(1, "ref-1", 7, "John Doe", "john@example.com", "07700900000",
			"Boiler repair", "2025-03-10", "10:00", "pending", "pending", "120",
			nil, nil, false, now, now))

	stats, err := repo.Stats(context.Background())

	require.NoError(t, err)
	require.Equal(t, 3, stats.BookingsToday)
	require.Equal(t, 11, stats.BookingsThisWeek)
	require.Equal(t, 2, stats.PendingPayments)
	require.Equal(t, "1540.5", stats.RevenueThisMonth.String())
	require.Len(t, stats.RecentBookings, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
