package customer

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func customerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "type", "name", "email", "phone", "address",
		"vat_number", "contact_person", "notes", "created_at", "updated_at",
	})
}

func TestCreateCustomerLowercasesEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery("INSERT INTO customers (.+) RETURNING").
		WithArgs("individual", "John Smith", "john@example.com", "07700900000", "12 High St", nil, nil, nil).
		WillReturnRows(customerRows().
			AddRow(1, "individual", "John Smith", "john@example.com", "07700900000", "12 High St", nil, nil, nil, now, now))

	cust, err := repo.Create(context.Background(), CreateCustomerRequest{
		Type:    "individual",
		Name:    "John Smith",
		Email:   "John@Example.com",
		Phone:   "07700900000",
		Address: "12 High St",
	})
	require.NoError(t, err)
	require.Equal(t, 1, cust.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE email =").
		WithArgs("john@example.com").
		WillReturnRows(customerRows().
			AddRow(1, "individual", "John Smith", "john@example.com", "", "", nil, nil, nil, now, now))

	cust, err := repo.GetByEmail(context.Background(), "John@Example.com")
	require.NoError(t, err)
	require.Equal(t, "john@example.com", cust.Email)
}

func TestListWithSearch(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM customers WHERE name ILIKE $1 OR email ILIKE $1")).
		WithArgs("%smith%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE name ILIKE (.+) LIMIT").
		WithArgs("%smith%", 20, 0).
		WillReturnRows(customerRows().
			AddRow(1, "individual", "John Smith", "john@example.com", "", "", nil, nil, nil, now, now))

	customers, total, err := repo.List(context.Background(), 1, 20, "smith")
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, customers, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPagination(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM customers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

	rows := customerRows()
	for i := 21; i <= 40; i++ {
		rows.AddRow(i, "individual", "Customer", "c@example.com", "", "", nil, nil, nil, now, now)
	}

	mock.ExpectQuery("SELECT (.+) FROM customers (.+) LIMIT").
		WithArgs(20, 20).
		WillReturnRows(rows)

	customers, total, err := repo.List(context.Background(), 2, 20, "")
	require.NoError(t, err)
	require.Equal(t, 45, total)
	require.Len(t, customers, 20)
}

func TestDeleteCustomer(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers WHERE id = $1")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 4), ErrCustomerNotFound)
}
