package area

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func areaRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "name", "headline", "body", "postcode_prefixes", "active",
		"created_at", "updated_at",
	})
}

func TestCreateArea(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO service_areas (.+) RETURNING").
		WithArgs("clapham", "Clapham", "Plumbers in Clapham", "Fast local service.",
			pq.Array([]string{"SW4", "SW11"}), true).
		WillReturnRows(areaRows().
			AddRow(1, "clapham", "Clapham", "Plumbers in Clapham", "Fast local service.",
				"{SW4,SW11}", true, now, now))

	a, err := repo.Create(context.Background(), CreateAreaRequest{
		Slug:             "clapham",
		Name:             "Clapham",
		Headline:         "Plumbers in Clapham",
		Body:             "Fast local service.",
		PostcodePrefixes: []string{"SW4", "SW11"},
	})

	require.NoError(t, err)
	require.Equal(t, "clapham", a.Slug)
	require.Equal(t, pq.StringArray{"SW4", "SW11"}, a.PostcodePrefixes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateArea_DuplicateSlug(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO service_areas").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "service_areas_slug_key"})

	_, err := repo.Create(context.Background(), CreateAreaRequest{
		Slug: "clapham",
		Name: "Clapham",
	})

	require.ErrorIs(t, err, ErrSlugTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlug_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT (.+) FROM service_areas WHERE slug =").
		WithArgs("nowhere").
		WillReturnRows(areaRows())

	_, err := repo.GetBySlug(context.Background(), "nowhere")

	require.ErrorIs(t, err, ErrAreaNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAreas_ActiveOnly(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM service_areas WHERE active = TRUE ORDER BY name").
		WillReturnRows(areaRows().
			AddRow(1, "clapham", "Clapham", "", "", "{SW4}", true, now, now))

	areas, err := repo.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, areas, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
