package products

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listQuery = `(?s)^SELECT\s+id,\s*name,\s*price::text\s+FROM\s+products\s+ORDER\s+BY\s+id\s+ASC\s*$`
	getQuery  = `(?s)^SELECT\s+id,\s*name,\s*price::text\s+FROM\s+products\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price"}).
		AddRow(int64(1), "iPhone 15", "5999.00").
		AddRow(int64(2), "MacBook Pro", "12999.00")
	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Product{
		{ID: 1, Name: "iPhone 15", Price: "5999.00"},
		{ID: 2, Name: "MacBook Pro", Price: "12999.00"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestList_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price"}).
		AddRow(int64(1), "iPhone 15", "5999.00").
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.Error(t, err)
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(getQuery).WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).AddRow(int64(3), "AirPods Pro", "1899.00"))

		got, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, &models.Product{ID: 3, Name: "AirPods Pro", Price: "1899.00"}, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(getQuery).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(getQuery).WithArgs(int64(1)).WillReturnError(errors.New("boom"))

		_, err := repo.GetByID(context.Background(), 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}
